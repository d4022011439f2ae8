package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
)

// Theme holds the four colours of a theme file, one hex colour per line.
type Theme struct {
	Main      string
	Secondary string
	Accent    string
	Highlight string
}

// Default is used when no theme file can be read.
func Default() Theme {
	return Theme{
		Main:      "#FFFFFF",
		Secondary: "#CCCCCC",
		Accent:    "#FFAA00",
		Highlight: "#FFD700",
	}
}

// Load reads a theme file. Files that are missing or have fewer than four
// lines fall back to Default with a warning.
func Load(path string) Theme {
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Theme file not readable, using default colors")
		return Default()
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < 4 {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Error reading theme file, using default colors")
		return Default()
	}
	if len(lines) < 4 {
		log.Warn().Str("file", path).Int("lines", len(lines)).Msg("Theme file does not contain enough lines, using default colors")
		return Default()
	}

	return Theme{
		Main:      lines[0],
		Secondary: lines[1],
		Accent:    lines[2],
		Highlight: lines[3],
	}
}

// Painter colours terminal output with a theme. A disabled Painter returns
// text unchanged.
type Painter struct {
	secondary *color.Color
	accent    *color.Color
	highlight *color.Color
}

// NewPainter enables colour only when w is a terminal.
func NewPainter(t Theme, w io.Writer) *Painter {
	enabled := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		enabled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return newPainter(t, enabled)
}

func newPainter(t Theme, enabled bool) *Painter {
	if !enabled {
		return &Painter{}
	}
	return &Painter{
		secondary: rgb(t.Secondary),
		accent:    rgb(t.Accent),
		highlight: rgb(t.Highlight),
	}
}

// rgb returns a forced-on colour for hex, or nil when hex does not parse.
func rgb(hex string) *color.Color {
	r, g, b, err := parseHex(hex)
	if err != nil {
		log.Warn().Str("color", hex).Msg("Invalid theme color, leaving text uncoloured")
		return nil
	}
	c := color.RGB(int(r), int(g), int(b))
	c.EnableColor()
	return c
}

// Accent colours s with the accent colour.
func (p *Painter) Accent(s string) string { return paint(p.accent, s) }

// Highlight colours s with the highlight colour.
func (p *Painter) Highlight(s string) string { return paint(p.highlight, s) }

// Secondary colours s with the secondary colour.
func (p *Painter) Secondary(s string) string { return paint(p.secondary, s) }

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// parseHex parses #RRGGBB or #RGB.
func parseHex(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
