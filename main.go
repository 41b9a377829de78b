package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zainbasra/orangehrm-automation-framework/presentation/terminal"
)

func main() {
	var opts terminal.Options
	flag.StringVar(&opts.ConfigPath, "config", "", "path to a YAML configuration profile")
	flag.StringVar(&opts.Filter, "run", "", "run only scenarios whose name or suite matches this regexp")
	flag.BoolVar(&opts.List, "list", false, "list scenarios and exit")
	flag.Parse()

	termInterface, err := terminal.NewTerminalInterface(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := termInterface.Run(ctx); err != nil {
		if !errors.Is(err, terminal.ErrScenariosFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
