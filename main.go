package main

import "github.com/slidewise/deckgen/cmd"

func main() {
	cmd.Execute()
}
