package quiz

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
)

// Label names one of the four answer positions.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// NoAnswer is the zero Label, used for unanswered questions.
const NoAnswer Label = ""

// OptionCount is the fixed number of choices in a multiple-choice question.
const OptionCount = 4

// Labels lists the answer positions in display order.
var Labels = [OptionCount]Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel accepts "b", " B ", "B)" or "B) some option text" and returns
// the canonical label. Anything else is a ValidationError naming the input.
func ParseLabel(s string) (Label, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) > 1 && (t[1] == ')' || t[1] == '.') {
		t = t[:1]
	}
	l := Label(t)
	if l.Index() < 0 {
		return NoAnswer, invalid("label", "unknown answer label %q", s)
	}
	return l, nil
}

// Index returns the zero-based position of l, or -1 if l is not a label.
func (l Label) Index() int {
	for i, x := range Labels {
		if x == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of A-D.
func (l Label) Valid() bool { return l.Index() >= 0 }

// OptionSet is a fixed set of four distinct answer options together with
// the position of the correct one.
type OptionSet struct {
	options [OptionCount]string
	correct int
}

// NewOptionSet validates options and the correct label and builds a set.
// Options must be exactly four, non-empty and distinct (compared
// case-insensitively after trimming).
func NewOptionSet(options []string, correct Label) (OptionSet, error) {
	if len(options) != OptionCount {
		return OptionSet{}, invalid("options", "want exactly %d options, got %d", OptionCount, len(options))
	}
	idx := correct.Index()
	if idx < 0 {
		return OptionSet{}, invalid("correct_answer", "unknown answer label %q", string(correct))
	}

	var s OptionSet
	seen := make(map[string]int, OptionCount)
	for i, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			return OptionSet{}, invalid("options", "option %s is empty", Labels[i])
		}
		key := strings.ToLower(o)
		if j, dup := seen[key]; dup {
			return OptionSet{}, invalid("options", "option %s duplicates option %s (%q)", Labels[i], Labels[j], o)
		}
		seen[key] = i
		s.options[i] = o
	}
	s.correct = idx
	return s, nil
}

// Normalize parses the correct label, builds the option set and returns it
// in a uniformly random order with the label tracking the correct option.
// A nil r uses the global source.
func Normalize(options []string, correct string, r *rand.Rand) (OptionSet, error) {
	l, err := ParseLabel(correct)
	if err != nil {
		return OptionSet{}, err
	}
	s, err := NewOptionSet(options, l)
	if err != nil {
		return OptionSet{}, err
	}
	return s.Shuffle(r), nil
}

// Shuffle returns a copy of s with the options permuted uniformly at random.
func (s OptionSet) Shuffle(r *rand.Rand) OptionSet {
	var perm []int
	if r != nil {
		perm = r.Perm(OptionCount)
	} else {
		perm = rand.Perm(OptionCount)
	}

	var out OptionSet
	for newPos, oldPos := range perm {
		out.options[newPos] = s.options[oldPos]
		if oldPos == s.correct {
			out.correct = newPos
		}
	}
	return out
}

// Options returns the options in presentation order.
func (s OptionSet) Options() [OptionCount]string { return s.options }

// Option returns the text at label l, or "" for an invalid label.
func (s OptionSet) Option(l Label) string {
	if i := l.Index(); i >= 0 {
		return s.options[i]
	}
	return ""
}

// Correct returns the label of the correct option.
func (s OptionSet) Correct() Label { return Labels[s.correct] }

// CorrectText returns the text of the correct option.
func (s OptionSet) CorrectText() string { return s.options[s.correct] }

// Decorated returns the options prefixed with their labels, e.g. "A) Paris".
func (s OptionSet) Decorated() [OptionCount]string {
	var out [OptionCount]string
	for i, o := range s.options {
		out[i] = string(Labels[i]) + ") " + o
	}
	return out
}

// IsZero reports whether s was never initialised.
func (s OptionSet) IsZero() bool { return s.options[0] == "" }

type optionSetJSON struct {
	Options       []string `json:"options"`
	CorrectAnswer Label    `json:"correct_answer"`
}

func (s OptionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(optionSetJSON{Options: s.options[:], CorrectAnswer: s.Correct()})
}

// UnmarshalJSON rejects payloads that would not pass NewOptionSet.
func (s *OptionSet) UnmarshalJSON(data []byte) error {
	var raw optionSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set, err := NewOptionSet(raw.Options, raw.CorrectAnswer)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
