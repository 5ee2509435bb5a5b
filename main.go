package main

import "github.com/agentic-research/cclua/cmd"

func main() {
	cmd.Execute()
}
