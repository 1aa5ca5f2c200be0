// Package main provides the rlcalc CLI, which estimates the length of
// material wound on a roll.
package main

import "github.com/mesh-intelligence/rlcalc/internal/cli"

func main() {
	cli.Execute()
}
