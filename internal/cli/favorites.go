package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/wordly/internal/config"
	"github.com/mrlokans/wordly/internal/entities"
)

type FavoritesCommand struct {
	DatabasePath string
	Add          string
	Remove       string
	Toggle       string

	Out io.Writer
}

func NewFavoritesCommand() *FavoritesCommand {
	return &FavoritesCommand{}
}

func (cmd *FavoritesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("favorites", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the word library database")
	fs.StringVar(&cmd.Add, "add", "", "Add a word to favorites")
	fs.StringVar(&cmd.Remove, "remove", "", "Remove a word from favorites")
	fs.StringVar(&cmd.Toggle, "toggle", "", "Toggle a word's favorite state")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s favorites [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List or edit favorite words. Without options the list is printed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := 0
	for _, v := range []string{cmd.Add, cmd.Remove, cmd.Toggle} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		fs.Usage()
		return fmt.Errorf("only one of -add, -remove or -toggle may be given")
	}

	return nil
}

func (cmd *FavoritesCommand) Run() error {
	out := outputOrStdout(cmd.Out)

	db, repo, err := openLibrary(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch {
	case cmd.Add != "":
		if err := repo.Add(entities.CollectionFavorites, cmd.Add); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %q to favorites\n", cmd.Add)
	case cmd.Remove != "":
		if err := repo.Remove(entities.CollectionFavorites, cmd.Remove); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %q from favorites\n", cmd.Remove)
	case cmd.Toggle != "":
		on, err := repo.Toggle(entities.CollectionFavorites, cmd.Toggle)
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintf(out, "Added %q to favorites\n", cmd.Toggle)
		} else {
			fmt.Fprintf(out, "Removed %q from favorites\n", cmd.Toggle)
		}
	default:
		words, err := repo.List(entities.CollectionFavorites)
		if err != nil {
			return err
		}
		printWords(out, "favorites", words)
	}

	return nil
}
