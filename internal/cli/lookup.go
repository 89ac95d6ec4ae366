package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/wordly/internal/config"
	"github.com/mrlokans/wordly/internal/dictionary"
	"github.com/mrlokans/wordly/internal/services"
)

// ErrLookupFailed is returned when a lookup ends in a transport or input failure.
var ErrLookupFailed = errors.New(services.GenericErrorMessage)

type LookupCommand struct {
	Word         string
	DatabasePath string
	BaseURL      string
	Timeout      time.Duration
	JSON         bool

	Out io.Writer
}

func NewLookupCommand() *LookupCommand {
	return &LookupCommand{}
}

func (cmd *LookupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)

	fs.StringVar(&cmd.Word, "word", "", "Word to look up (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the word library database")
	fs.StringVar(&cmd.BaseURL, "base-url", dictionary.DefaultBaseURL, "Dictionary API entries endpoint")
	fs.DurationVar(&cmd.Timeout, "timeout", dictionary.DefaultTimeout, "Request timeout")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the raw entries as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lookup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Look up a word in the dictionary and record it in history.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s lookup -word serendipity\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s lookup -word hello -json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Word == "" && fs.NArg() > 0 {
		cmd.Word = fs.Arg(0)
	}

	return nil
}

func (cmd *LookupCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	db, repo, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	client := dictionary.NewFreeDictionaryClient(
		dictionary.WithBaseURL(cmd.BaseURL),
		dictionary.WithTimeout(cmd.Timeout),
	)
	svc := services.NewLookupService(client, repo)

	result, err := svc.Search(context.Background(), cmd.Word)
	if err != nil {
		return err
	}
	if result.Prompt {
		fmt.Fprintln(out, result.Message())
		return nil
	}
	if result.LibraryErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", result.LibraryErr)
	}

	switch result.Outcome.Kind {
	case dictionary.OutcomeFound:
		if cmd.JSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Outcome.Entries)
		}
		for i, entry := range result.Outcome.Entries {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printEntry(out, entry, result.Favorites[entry.Word])
		}
		return nil
	case dictionary.OutcomeNotFound:
		fmt.Fprintln(out, result.Message())
		return nil
	default:
		return fmt.Errorf("%w (%s)", ErrLookupFailed, result.Outcome.Message)
	}
}
