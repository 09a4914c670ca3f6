package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/planforge/mrp/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		configFile = flag.String("config", "", "Path to config file (optional)")
		format     = flag.String("format", "text", "Output format: text, xlsx")
		outputPath = flag.String("output", "", "Output path for xlsx workbook")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir: *scenarioDir,
		ConfigFile:  *configFile,
		Format:      *format,
		OutputPath:  *outputPath,
		Help:        *help,
	}

	cmd := commands.NewRunCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
