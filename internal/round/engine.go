// internal/round/engine.go
//
// Round engine for a single Word Scramble round.
// Responsibilities:
//   - Start rounds from an injected root word source (Reset).
//   - Classify candidate words through a fixed gate order (Submit):
//     equality → originality → constructibility → realness → length.
//   - Own the round state (root word, used words, score).
//
// Notes:
//   - The engine is not safe for concurrent use; callers serialize access.
//   - Short words (≤ 3 letters) that pass every gate still occupy the used set,
//     earn nothing and zero the running score.
package round

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	pointsPerWord = 2
	shortWordMax  = 3 // words of this many letters or fewer are too short
)

// Option configures an Engine.
type Option func(*Engine)

// WithLanguage sets the language passed to the dictionary and used for lowercasing.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) { e.lang = tag }
}

// WithObserver registers fn to receive a snapshot after every state change.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// Engine holds the state of one player's round.
type Engine struct {
	lang      language.Tag
	lower     cases.Caser
	observers []func(State)

	started bool
	root    string
	used    []string            // insertion order
	usedSet map[string]struct{} // membership
	score   int
}

// New constructs an idle engine. Submit fails until Reset succeeds.
func New(opts ...Option) *Engine {
	e := &Engine{lang: language.English}
	for _, o := range opts {
		o(e)
	}
	e.lower = cases.Lower(e.lang)
	return e
}

// Language reports the dictionary language.
func (e *Engine) Language() language.Tag { return e.lang }

// Reset starts a new round with a word from src.
// On failure the previous state is kept and the error wraps ErrNoRootWord.
func (e *Engine) Reset(src RootWordSource) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrNoRootWord)
	}
	w, err := src.Next()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoRootWord, err)
	}
	w = e.normalize(w)
	if w == "" {
		return fmt.Errorf("%w: source returned an empty word", ErrNoRootWord)
	}

	e.started = true
	e.root = w
	e.used = []string{}
	e.usedSet = make(map[string]struct{})
	e.score = 0
	e.notify()
	return nil
}

// Submit evaluates word against the current round.
// Rejections are ordinary outcomes; the only error is ErrNotStarted.
// A word that is empty after trimming is rejected as ReasonNotARealWord
// without consulting dict.
func (e *Engine) Submit(word string, dict Dictionary) (Outcome, error) {
	if !e.started {
		return Outcome{}, ErrNotStarted
	}
	word = e.normalize(word)

	if word == e.root {
		return e.reject(word, ReasonSameAsRoot), nil
	}
	if _, ok := e.usedSet[word]; ok {
		return e.reject(word, ReasonAlreadyUsed), nil
	}
	if !constructible(word, e.root) {
		return e.reject(word, ReasonNotConstructible), nil
	}
	if word == "" || dict == nil || !dict.IsReal(word, e.lang) {
		return e.reject(word, ReasonNotARealWord), nil
	}

	e.insert(word)
	if utf8.RuneCountInString(word) <= shortWordMax {
		prev := e.score
		e.score = 0
		e.notify()
		return Outcome{Reason: ReasonTooShort, Word: word, ScoreDelta: -prev, Score: 0}, nil
	}

	e.score += pointsPerWord
	e.notify()
	return Outcome{Accepted: true, Word: word, ScoreDelta: pointsPerWord, Score: e.score}, nil
}

// Started reports whether Reset has succeeded at least once.
func (e *Engine) Started() bool { return e.started }

// RootWord returns the current root word ("" while idle).
func (e *Engine) RootWord() string { return e.root }

// Score returns the running score.
func (e *Engine) Score() int { return e.score }

// UsedWords returns a copy of the used words in insertion order.
func (e *Engine) UsedWords() []string {
	out := make([]string, len(e.used))
	copy(out, e.used)
	return out
}

// Snapshot returns a copy of the round state.
func (e *Engine) Snapshot() State {
	return State{RootWord: e.root, UsedWords: e.UsedWords(), Score: e.score}
}

func (e *Engine) reject(word string, r Reason) Outcome {
	return Outcome{Reason: r, Word: word, Score: e.score}
}

func (e *Engine) insert(word string) {
	e.used = append(e.used, word)
	e.usedSet[word] = struct{}{}
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	s := e.Snapshot()
	for _, fn := range e.observers {
		fn(s)
	}
}

func (e *Engine) normalize(s string) string {
	return e.lower.String(strings.TrimSpace(s))
}

// constructible reports whether word can be spelled from the letters of root,
// using each letter at most as often as it appears in root.
func constructible(word, root string) bool {
	counts := make(map[rune]int, len(root))
	for _, r := range root {
		counts[r]++
	}
	for _, r := range word {
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}
