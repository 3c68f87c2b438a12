package scorer

import (
	"slices"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
)

// Matcher finds which of a fixed keyword list occur in a text, case-insensitively.
type Matcher struct {
	keywords []string // folded, deduplicated, in configured order
	machine  *goahocorasick.Machine
}

// NewMatcher builds an Aho-Corasick automaton over keywords.
func NewMatcher(keywords []string) (*Matcher, error) {
	m := &Matcher{}
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		folded := fold(strings.TrimSpace(kw))
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		m.keywords = append(m.keywords, folded)
	}
	if len(m.keywords) == 0 {
		return m, nil
	}

	patterns := make([][]rune, len(m.keywords))
	for i, kw := range m.keywords {
		patterns[i] = []rune(kw)
	}
	slices.SortFunc(patterns, func(a, b []rune) int {
		return strings.Compare(string(a), string(b))
	})

	m.machine = new(goahocorasick.Machine)
	if err := m.machine.Build(patterns); err != nil {
		return nil, eris.Wrap(err, "scorer: build keyword matcher")
	}
	return m, nil
}

// Find returns the keywords present in text, each once, in configured order.
func (m *Matcher) Find(text string) []string {
	if m.machine == nil || text == "" {
		return nil
	}
	terms := m.machine.MultiPatternSearch([]rune(fold(text)), false)
	if len(terms) == 0 {
		return nil
	}
	hit := make(map[string]bool, len(terms))
	for _, term := range terms {
		hit[string(term.Word)] = true
	}
	var found []string
	for _, kw := range m.keywords {
		if hit[kw] {
			found = append(found, kw)
		}
	}
	return found
}

// Keywords returns the normalized keyword list.
func (m *Matcher) Keywords() []string {
	return slices.Clone(m.keywords)
}

// fold case-folds s. A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
