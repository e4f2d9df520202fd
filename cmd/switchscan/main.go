// Package main is the entry point for the switchscan CLI.
package main

import "switchscan/internal/cli"

func main() {
	cli.Execute()
}
