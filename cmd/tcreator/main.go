package main

import "tcreator/internal/cli"

func main() {
	cli.Execute()
}
