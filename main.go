// Package main is the entry point for the qmetrics CLI.
package main

import "qmetrics.dev/pkg/qmetrics/cmd"

func main() {
	cmd.Execute()
}
