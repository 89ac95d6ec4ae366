package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/wordly/internal/cli"
	"github.com/mrlokans/wordly/internal/config"
	"github.com/mrlokans/wordly/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	commandName := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch commandName {
	case "lookup":
		cmd = cli.NewLookupCommand()
	case "favorites", "favourites":
		cmd = cli.NewFavoritesCommand()
	case "history":
		cmd = cli.NewHistoryCommand()
	case "version":
		fmt.Printf("wordly %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve       Start the HTTP server (default)\n")
	fmt.Fprintf(os.Stderr, "  lookup      Look up a word in the dictionary\n")
	fmt.Fprintf(os.Stderr, "  favorites   List or edit favorite words\n")
	fmt.Fprintf(os.Stderr, "  history     List or edit search history\n")
	fmt.Fprintf(os.Stderr, "  version     Print version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for command options.\n", os.Args[0])
}
