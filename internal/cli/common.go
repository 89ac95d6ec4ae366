package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/wordly/internal/database"
	"github.com/mrlokans/wordly/internal/database/library"
	"github.com/mrlokans/wordly/internal/entities"
	"gorm.io/gorm/logger"
)

// openLibrary opens the word library database at dbPath.
// The caller must Close the returned database.
func openLibrary(dbPath string) (*database.Database, *library.Repository, error) {
	db, err := database.NewDatabase(dbPath, database.WithLogLevel(logger.Silent))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, library.NewRepository(db.DB), nil
}

func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// printWords writes a numbered list of words, or a placeholder when empty.
func printWords(w io.Writer, title string, words []string) {
	if len(words) == 0 {
		fmt.Fprintf(w, "No %s yet.\n", title)
		return
	}
	fmt.Fprintf(w, "=== %s (%d) ===\n", title, len(words))
	for i, word := range words {
		fmt.Fprintf(w, "%d. %s\n", i+1, word)
	}
}

// printEntry renders a dictionary entry as plain text.
func printEntry(w io.Writer, entry entities.WordEntry, favorite bool) {
	header := entry.Word
	for _, p := range entry.Phonetics {
		if p.Text != "" {
			header += " " + p.Text
			break
		}
	}
	if favorite {
		header += " ★"
	}
	fmt.Fprintln(w, header)

	for _, meaning := range entry.Meanings {
		fmt.Fprintf(w, "  %s\n", meaning.PartOfSpeech)
		for i, def := range meaning.Definitions {
			fmt.Fprintf(w, "    %d. %s\n", i+1, def.Definition)
			if def.Example != "" {
				fmt.Fprintf(w, "       %q\n", def.Example)
			}
		}
	}

	for _, audio := range entry.PlayableAudio() {
		fmt.Fprintf(w, "  audio: %s\n", audio)
	}
}
