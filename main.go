// Package main is the entry point for the Kover CLI.
package main

import "kover.dev/pkg/kover/cmd"

func main() {
	cmd.Execute()
}
