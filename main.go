package main

import (
	"flag"
	"fmt"
	"os"

	"checksmith/internal/cli"
	"checksmith/internal/config"
	"checksmith/internal/prompter"
	"checksmith/internal/service"
	"checksmith/internal/storage"
	"checksmith/internal/ui"
)

var version = "0.1.0"

func main() {
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showVersion {
		fmt.Printf("checksmith version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	store := storage.New(cfg)
	prompt := prompter.NewLinePrompter(os.Stdin, os.Stdout)
	svc := service.New(cfg, store, prompt)
	handler := cli.New(svc, os.Stdout, os.Stderr)

	if showHelp {
		handler.Execute([]string{"help"})
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		// No subcommand: open the interactive template browser.
		registry, err := svc.LoadRegistry()
		if err != nil {
			fail(err)
		}
		if err := ui.Run(registry); err != nil {
			fail(err)
		}
		return
	}

	code, err := handler.Execute(args)
	if err != nil {
		fail(err)
	}
	os.Exit(code)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
