// main is the entry point for the heatmap CLI.
package main

import (
	"github.com/huangsam/heatmap/cmd"
	"github.com/huangsam/heatmap/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error running command", err)
	}
}
