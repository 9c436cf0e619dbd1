// Package main is the entry point for the botcmetrics CLI tool, which tracks
// Blood on the Clocktower game results and computes player ratings and
// storyteller analytics.
package main

import "github.com/pable/botc-metrics/cmd"

func main() {
	cmd.Execute()
}
