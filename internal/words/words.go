// internal/words/words.go
//
// Word list loading for the round engine.
//
// Responsibilities:
//   - Load root words and dictionary words from a configured file, or fall back
//     to the lists embedded in the assets package.
//   - Normalize entries (trim, lowercase for the dictionary language) and keep
//     only all-letter words. The caser is the one the round engine uses.
//
// Environment (read by the config package, passed in as paths):
//   ROOT_WORDS_FILE=/path/to/roots.txt
//   DICTIONARY_FILE=/path/to/dictionary.txt
//
// An empty root list is not an error here; the sources report it as
// round.ErrNoRootWord when a round is started.

package words

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/apps/go-server/assets"
)

// LoadRoots reads root words from path, or the embedded list when path is empty.
// Words are lowercased with lang's casing rules.
func LoadRoots(path string, lang language.Tag) ([]string, error) {
	if path == "" {
		list, err := assets.RootsList()
		if err != nil {
			return nil, fmt.Errorf("embedded roots: %w", err)
		}
		return filterWords(list, lang), nil
	}
	return readWordFile(path, lang)
}

// LoadDictionary reads dictionary words from path, or the embedded list when path is empty.
// Words are lowercased with lang's casing rules.
func LoadDictionary(path string, lang language.Tag) ([]string, error) {
	if path == "" {
		list, err := assets.DictionaryList()
		if err != nil {
			return nil, fmt.Errorf("embedded dictionary: %w", err)
		}
		return filterWords(list, lang), nil
	}
	return readWordFile(path, lang)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string, lang language.Tag) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()
	list, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return filterWords(list, lang), nil
}

// filterWords lowercases entries and drops those not made only of letters.
func filterWords(list []string, lang language.Tag) []string {
	lower := cases.Lower(lang)
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = lower.String(strings.TrimSpace(w))
		if isWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// isWord reports whether s is non-empty and all letters.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
