package round

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/text/language"
)

type fixedSource struct {
	word string
	err  error
}

func (s fixedSource) Next() (string, error) { return s.word, s.err }

type setDict struct {
	lang  language.Tag
	words map[string]bool
	calls int
}

func newDict(words ...string) *setDict {
	d := &setDict{lang: language.English, words: map[string]bool{}}
	for _, w := range words {
		d.words[w] = true
	}
	return d
}

func (d *setDict) IsReal(word string, lang language.Tag) bool {
	d.calls++
	return lang == d.lang && d.words[word]
}

func started(t *testing.T, root string, opts ...Option) *Engine {
	t.Helper()
	e := New(opts...)
	if err := e.Reset(fixedSource{word: root}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return e
}

func TestSubmitBeforeReset(t *testing.T) {
	e := New()
	if _, err := e.Submit("silk", newDict("silk")); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if e.Started() {
		t.Fatal("expected idle engine")
	}
}

func TestResetStartsCleanRound(t *testing.T) {
	e := started(t, "silkworm")
	if _, err := e.Submit("silk", newDict("silk")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Reset(fixedSource{word: "Blackout "}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if e.RootWord() != "blackout" {
		t.Fatalf("expected normalized root, got %q", e.RootWord())
	}
	if e.Score() != 0 || len(e.UsedWords()) != 0 {
		t.Fatalf("expected clean state, got score=%d used=%v", e.Score(), e.UsedWords())
	}
}

func TestResetFailures(t *testing.T) {
	tests := []struct {
		name string
		src  RootWordSource
	}{
		{name: "nil source", src: nil},
		{name: "source error", src: fixedSource{err: errors.New("list empty")}},
		{name: "empty word", src: fixedSource{word: "   "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New()
			if err := e.Reset(tc.src); !errors.Is(err, ErrNoRootWord) {
				t.Fatalf("expected ErrNoRootWord, got %v", err)
			}
			if e.Started() {
				t.Fatal("failed reset must not start the round")
			}
		})
	}
}

func TestResetFailureKeepsRound(t *testing.T) {
	e := started(t, "silkworm")
	if _, err := e.Submit("silk", newDict("silk")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Reset(fixedSource{err: errors.New("gone")}); err == nil {
		t.Fatal("expected error")
	}
	if e.RootWord() != "silkworm" || e.Score() != 2 {
		t.Fatalf("state changed on failed reset: %+v", e.Snapshot())
	}
}

func TestSubmitAccepted(t *testing.T) {
	e := started(t, "silkworm")
	out, err := e.Submit("silk", newDict("silk"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := Outcome{Accepted: true, Word: "silk", ScoreDelta: 2, Score: 2}
	if out != want {
		t.Fatalf("expected %+v, got %+v", want, out)
	}
	if got := e.UsedWords(); !reflect.DeepEqual(got, []string{"silk"}) {
		t.Fatalf("unexpected used words %v", got)
	}
}

func TestSubmitTooShortStillUsed(t *testing.T) {
	e := started(t, "silkworm")
	dict := newDict("silk", "wok")
	if _, err := e.Submit("silk", dict); err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := e.Submit("wok", dict)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Accepted || out.Reason != ReasonTooShort {
		t.Fatalf("expected too_short, got %+v", out)
	}
	if out.Score != 0 || out.ScoreDelta != -2 || e.Score() != 0 {
		t.Fatalf("expected score reset to 0, got %+v (engine %d)", out, e.Score())
	}
	if got := e.UsedWords(); !reflect.DeepEqual(got, []string{"silk", "wok"}) {
		t.Fatalf("too short word must be recorded, got %v", got)
	}

	again, _ := e.Submit("wok", dict)
	if again.Reason != ReasonAlreadyUsed {
		t.Fatalf("expected already_used on resubmit, got %+v", again)
	}
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name string
		word string
		want Reason
	}{
		{name: "root word", word: "silkworm", want: ReasonSameAsRoot},
		{name: "root word any case", word: "  SilkWorm\n", want: ReasonSameAsRoot},
		{name: "letter used twice", word: "worms", want: ReasonNotConstructible},
		{name: "missing letter", word: "silky", want: ReasonNotConstructible},
		{name: "not in dictionary", word: "milk", want: ReasonNotARealWord},
		{name: "empty", word: "   ", want: ReasonNotARealWord},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := started(t, "silkworm")
			dict := newDict("silk", "worm", "silky")
			if _, err := e.Submit("worm", dict); err != nil {
				t.Fatalf("submit: %v", err)
			}
			before := e.Snapshot()

			out, err := e.Submit(tc.word, dict)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if out.Accepted || out.Reason != tc.want {
				t.Fatalf("expected %s, got %+v", tc.want, out)
			}
			if out.Score != before.Score {
				t.Fatalf("score reported %d, want %d", out.Score, before.Score)
			}
			if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Fatalf("state changed: before %+v after %+v", before, after)
			}

			repeat, _ := e.Submit(tc.word, dict)
			if repeat.Reason != tc.want {
				t.Fatalf("expected stable reason %s, got %s", tc.want, repeat.Reason)
			}
		})
	}
}

func TestSubmitAlreadyUsed(t *testing.T) {
	e := started(t, "silkworm")
	dict := newDict("silk")
	first, _ := e.Submit("silk", dict)
	second, _ := e.Submit(" SILK ", dict)
	if !first.Accepted {
		t.Fatalf("expected first submit accepted, got %+v", first)
	}
	if second.Reason != ReasonAlreadyUsed || e.Score() != 2 {
		t.Fatalf("expected already_used with score 2, got %+v score=%d", second, e.Score())
	}
}

func TestDictionaryConsultedLast(t *testing.T) {
	e := started(t, "silkworm")
	dict := newDict("silk")
	for _, w := range []string{"silkworm", "worms", ""} {
		if _, err := e.Submit(w, dict); err != nil {
			t.Fatalf("submit %q: %v", w, err)
		}
	}
	if dict.calls != 0 {
		t.Fatalf("dictionary consulted %d times for words failing earlier gates", dict.calls)
	}
}

type acceptAll struct{ calls int }

func (d *acceptAll) IsReal(string, language.Tag) bool {
	d.calls++
	return true
}

func TestEmptyWordNeverReachesDictionary(t *testing.T) {
	e := started(t, "silkworm")
	dict := &acceptAll{}
	for _, w := range []string{"", "   ", "\t\n"} {
		out, err := e.Submit(w, dict)
		if err != nil {
			t.Fatalf("submit %q: %v", w, err)
		}
		if out.Accepted || out.Reason != ReasonNotARealWord || out.Word != "" {
			t.Fatalf("expected not_a_real_word for %q, got %+v", w, out)
		}
	}
	if dict.calls != 0 {
		t.Fatalf("dictionary consulted %d times for empty words", dict.calls)
	}
	if len(e.UsedWords()) != 0 || e.Score() != 0 {
		t.Fatalf("empty words must not change state: %+v", e.Snapshot())
	}
}

func TestLanguagePassedToDictionary(t *testing.T) {
	e := started(t, "silkworm", WithLanguage(language.German))
	out, _ := e.Submit("silk", newDict("silk"))
	if out.Reason != ReasonNotARealWord {
		t.Fatalf("english dictionary must not answer for german, got %+v", out)
	}
	if e.Language() != language.German {
		t.Fatalf("unexpected language %v", e.Language())
	}
}

func TestUsedWordsOnlyHoldsRecordedWords(t *testing.T) {
	e := started(t, "silkworm")
	dict := newDict("silk", "worm", "wok", "owl")
	for _, w := range []string{"silk", "silkworm", "worms", "milk", "wok", "silk", "owl", "worm"} {
		if _, err := e.Submit(w, dict); err != nil {
			t.Fatalf("submit %q: %v", w, err)
		}
	}
	want := []string{"silk", "wok", "owl", "worm"}
	if got := e.UsedWords(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if e.Score() != 2 {
		t.Fatalf("expected score 2 after reset by short word, got %d", e.Score())
	}
}

func TestObserverSeesMutationsOnly(t *testing.T) {
	var seen []State
	e := New(WithObserver(func(s State) { seen = append(seen, s) }))
	if err := e.Reset(fixedSource{word: "silkworm"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	dict := newDict("silk", "wok")
	for _, w := range []string{"silk", "silk", "worms", "wok"} {
		_, _ = e.Submit(w, dict)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications (reset, accept, too short), got %d", len(seen))
	}
	if seen[1].Score != 2 || seen[2].Score != 0 {
		t.Fatalf("unexpected scores %+v", seen)
	}
	seen[2].UsedWords[0] = "mutated"
	if e.UsedWords()[0] != "silk" {
		t.Fatal("snapshot must not alias engine state")
	}
}

func TestConstructible(t *testing.T) {
	tests := []struct {
		word, root string
		want       bool
	}{
		{"wok", "silkworm", true},
		{"silk", "silkworm", true},
		{"worms", "silkworm", false},
		{"", "silkworm", true},
		{"ll", "hello", true},
		{"lll", "hello", false},
		{"straße", "straßen", true},
	}
	for _, tc := range tests {
		if got := constructible(tc.word, tc.root); got != tc.want {
			t.Fatalf("constructible(%q, %q) = %v, want %v", tc.word, tc.root, got, tc.want)
		}
	}
}

func TestReasonMessagesDistinct(t *testing.T) {
	seen := map[string]Reason{}
	for _, r := range []Reason{ReasonSameAsRoot, ReasonAlreadyUsed, ReasonNotConstructible, ReasonNotARealWord, ReasonTooShort} {
		title, msg := r.Message("silkworm")
		if title == "" || msg == "" {
			t.Fatalf("missing message for %s", r)
		}
		if other, ok := seen[title]; ok {
			t.Fatalf("%s and %s share title %q", r, other, title)
		}
		seen[title] = r
	}
}
