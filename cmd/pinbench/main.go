package main

import "github.com/utkarsh5026/pinbench/cmd/pinbench/commands"

func main() {
	commands.Execute()
}
