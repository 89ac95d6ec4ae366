package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/wordly/internal/config"
	"github.com/mrlokans/wordly/internal/entities"
)

type HistoryCommand struct {
	DatabasePath string
	Remove       string
	Clear        bool

	Out io.Writer
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the word library database")
	fs.StringVar(&cmd.Remove, "remove", "", "Remove a word from history")
	fs.BoolVar(&cmd.Clear, "clear", false, "Remove all history entries")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List searched words, most recent first, or edit the history.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Clear && cmd.Remove != "" {
		fs.Usage()
		return fmt.Errorf("-clear and -remove cannot be combined")
	}

	return nil
}

func (cmd *HistoryCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	db, repo, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch {
	case cmd.Clear:
		if err := repo.Clear(entities.CollectionHistory); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared")
	case cmd.Remove != "":
		if err := repo.Remove(entities.CollectionHistory, cmd.Remove); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %q from history\n", cmd.Remove)
	default:
		words, err := repo.List(entities.CollectionHistory)
		if err != nil {
			return err
		}
		printWords(out, "history", words)
	}

	return nil
}
