package words

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// SetDictionary is an in-memory dictionary keyed by language.
// Safe for concurrent use.
type SetDictionary struct {
	mu    sync.RWMutex
	langs map[language.Tag]map[string]struct{}
}

// NewSetDictionary returns an empty dictionary.
func NewSetDictionary() *SetDictionary {
	return &SetDictionary{langs: make(map[language.Tag]map[string]struct{})}
}

// Add registers words for lang.
func (d *SetDictionary) Add(lang language.Tag, words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	set, ok := d.langs[lang]
	if !ok {
		set = make(map[string]struct{}, len(words))
		d.langs[lang] = set
	}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			set[w] = struct{}{}
		}
	}
}

// IsReal reports whether word was added for lang.
func (d *SetDictionary) IsReal(word string, lang language.Tag) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.langs[lang][word]
	return ok
}

// Len returns how many words are known for lang.
func (d *SetDictionary) Len(lang language.Tag) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.langs[lang])
}
