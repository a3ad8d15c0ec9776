// Package main is the entry point for the gotester CLI.
package main

import "github.com/polyllc/gotester/cmd"

func main() {
	cmd.Execute()
}
