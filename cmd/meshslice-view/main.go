package main

import "github.com/philipparndt/meshslice/cmd"

func main() {
	cmd.Execute()
}
