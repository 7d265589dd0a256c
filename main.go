// Package main is the entry point for the filepipe CLI.
package main

import "filepipe.dev/pkg/filepipe/cmd"

func main() {
	cmd.Execute()
}
