package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cinebook-cli/booking"
	"cinebook-cli/config"
	"cinebook-cli/logging"
	"cinebook-cli/service"
	"cinebook-cli/source"
	"cinebook-cli/store"
	"cinebook-cli/tui"
)

const appName = "cinebook-cli"

var (
	version = "dev"
	commit  = "none"
)

func printUsage(out *os.File) {
	fmt.Fprintf(out, "Usage: %s [--version]\n", appName)
}

func printVersion() {
	fmt.Printf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	fmt.Println()
}

func handleArgs(args []string) bool {
	if len(args) == 0 {
		return true
	}

	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			printUsage(os.Stdout)
			return false
		case "-v", "--version", "version":
			printVersion()
			return false
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	return false
}

func main() {
	if !handleArgs(os.Args[1:]) {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	st := store.New()
	client := service.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.BackendURL)
	src := source.NewFallback(source.NewRemote(client), source.NewLocal(st), logger)
	finalizer := &booking.Finalizer{Store: st, Submit: client, Logger: logger}

	logger.Info("starting", zap.String("version", version), zap.String("backend", cfg.BackendURL))

	app := tui.New(tui.Deps{Source: src, Store: st, Finalizer: finalizer, Logger: logger})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
