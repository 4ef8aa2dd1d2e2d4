// internal/round/types.go
//
// Core type definitions for the Word Scramble round engine.
// Defines:
//   - Reason:  why a submission was rejected.
//   - Outcome: result of a single Submit call.
//   - State:   read-only snapshot of a round.
//   - RootWordSource / Dictionary: capabilities injected by the caller.

package round

import (
	"errors"

	"golang.org/x/text/language"
)

var (
	// ErrNoRootWord is returned by Reset when the source cannot supply a word.
	ErrNoRootWord = errors.New("no root word available")
	// ErrNotStarted is returned by Submit before the first Reset.
	ErrNotStarted = errors.New("round not started")
)

// Reason identifies why a submission was rejected.
type Reason string

const (
	ReasonSameAsRoot       Reason = "same_as_root"
	ReasonAlreadyUsed      Reason = "already_used"
	ReasonNotConstructible Reason = "not_constructible"
	ReasonNotARealWord     Reason = "not_a_real_word"
	ReasonTooShort         Reason = "too_short"
)

// Message returns the title and body a UI shows for the rejection.
func (r Reason) Message(root string) (title, message string) {
	switch r {
	case ReasonSameAsRoot:
		return "Same as the root word", "Nice try. Find a word inside '" + root + "'."
	case ReasonAlreadyUsed:
		return "Word used already", "Be more original"
	case ReasonNotConstructible:
		return "Word not possible", "You can't spell that word from '" + root + "'!"
	case ReasonNotARealWord:
		return "Word not recognized", "You can't just make them up, you know!"
	case ReasonTooShort:
		return "Three letter words are not allowed", "Try again, think outside the box."
	}
	return "", ""
}

// Outcome is the result of one Submit call.
// Reason is empty when Accepted is true.
type Outcome struct {
	Accepted   bool   `json:"accepted"`
	Reason     Reason `json:"reason,omitempty"`
	Word       string `json:"word"`       // normalized candidate
	ScoreDelta int    `json:"scoreDelta"` // change applied to the running score
	Score      int    `json:"score"`      // score after the call
}

// State is a copy of the round; mutating it has no effect on the engine.
type State struct {
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"` // insertion order
	Score     int      `json:"score"`
}

// RootWordSource supplies the root word for a new round.
// Implementations return a non-empty lowercase word, or an error wrapping ErrNoRootWord.
type RootWordSource interface {
	Next() (string, error)
}

// Dictionary answers whether word is a real word in lang.
type Dictionary interface {
	IsReal(word string, lang language.Tag) bool
}
