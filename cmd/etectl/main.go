// Package main is the entry point for the etectl operator CLI.
package main

import (
	"ete-kpi/internal/cmd"
)

func main() {
	cmd.Execute()
}
