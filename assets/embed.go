// Package assets embeds the default word lists shipped with the server.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed roots.txt dictionary.txt
var FS embed.FS

// ReadLines returns the non-blank, non-comment lines of r, trimmed.
// Case is left alone; callers lowercase for their language.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

func readFile(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// RootsList returns the embedded root words.
func RootsList() ([]string, error) {
	return readFile("roots.txt")
}

// DictionaryList returns the embedded English dictionary.
func DictionaryList() ([]string, error) {
	return readFile("dictionary.txt")
}
