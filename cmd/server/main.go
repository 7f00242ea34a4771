package main

import "github.com/corpsite/cmd/server/commands"

func main() {
	commands.Execute()
}
