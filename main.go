package main

import "github.com/rinthtools/rinth/cmd"

func main() {
	cmd.Execute()
}
