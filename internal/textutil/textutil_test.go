package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(""))
	assert.NotEqual(t, Hash("Item.damage = 1;"), Hash("Item.damage = 2;"))
}

func TestEscapeTSV(t *testing.T) {
	assert.Equal(t, `a\tb\nc\r`, EscapeTSV("a\tb\nc\r"))
}
