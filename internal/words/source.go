package words

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/round"
)

// ListSource picks a uniformly random root word from a fixed list.
type ListSource struct {
	words []string
}

// NewListSource copies list into a new source.
func NewListSource(list []string) *ListSource {
	return &ListSource{words: append([]string(nil), list...)}
}

// Len returns the number of candidate roots.
func (s *ListSource) Len() int { return len(s.words) }

// Next returns a random root word. There is no fallback word for an empty list.
func (s *ListSource) Next() (string, error) {
	if len(s.words) == 0 {
		return "", fmt.Errorf("%w: root list is empty", round.ErrNoRootWord)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.words))))
	if err != nil {
		return "", fmt.Errorf("%w: %w", round.ErrNoRootWord, err)
	}
	return s.words[n.Int64()], nil
}

// DailySource picks the same root word for everyone on a given UTC day.
type DailySource struct {
	words []string
	salt  string
	now   func() time.Time
}

// NewDailySource builds a date-keyed source. now defaults to time.Now.
func NewDailySource(list []string, salt string, now func() time.Time) *DailySource {
	if now == nil {
		now = time.Now
	}
	return &DailySource{words: append([]string(nil), list...), salt: salt, now: now}
}

// Next returns the root word for the current day.
func (s *DailySource) Next() (string, error) {
	if len(s.words) == 0 {
		return "", fmt.Errorf("%w: root list is empty", round.ErrNoRootWord)
	}
	return s.words[DayIndex(s.now(), s.salt, len(s.words))], nil
}

// DateKey formats t as YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayIndex maps a day to an index in [0, n) via HMAC-SHA256(salt, date).
func DayIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
