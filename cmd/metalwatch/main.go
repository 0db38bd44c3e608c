package main

import "github.com/martinnjensen/MetalWatch/internal/cli"

func main() {
	cli.Execute()
}
