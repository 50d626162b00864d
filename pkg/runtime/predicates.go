package runtime

import (
	"sort"

	"sigh/interpreter-go/pkg/ast"
	"sigh/interpreter-go/pkg/semantic"
)

type PredicateKind int

const (
	PredicateFacts PredicateKind = iota
	PredicateRule
)

func (k PredicateKind) String() string {
	if k == PredicateRule {
		return "rule"
	}
	return "facts"
}

// Rule is a registered rule: typed parameters, a logic body, the static
// scope the parameters are declared in and the frame the rule was declared
// in. Body frames chain to Env.
type Rule struct {
	Decl  *ast.RuleDeclaration
	Scope *semantic.Scope
	Env   *Environment
}

// PredicateEntry holds everything known about one functor in one frame: either
// its ground fact tuples or its single rule.
type PredicateEntry struct {
	Functor string
	Kind    PredicateKind
	Facts   [][]Value
	Rule    *Rule
}

// Contains reports whether every query argument appears in some stored tuple.
// Membership is checked per argument, not positionally.
func (e *PredicateEntry) Contains(args []Value) bool {
	for _, arg := range args {
		if !e.hasValue(arg) {
			return false
		}
	}
	return true
}

func (e *PredicateEntry) hasValue(v Value) bool {
	for _, tuple := range e.Facts {
		for _, stored := range tuple {
			if Equal(stored, v) {
				return true
			}
		}
	}
	return false
}

func (e *PredicateEntry) hasTuple(tuple []Value) bool {
	for _, stored := range e.Facts {
		if len(stored) != len(tuple) {
			continue
		}
		same := true
		for idx := range stored {
			if !Equal(stored[idx], tuple[idx]) {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// PredicateStore maps functors to their entries for a single frame.
type PredicateStore struct {
	entries map[string]*PredicateEntry
}

func NewPredicateStore() *PredicateStore {
	return &PredicateStore{entries: make(map[string]*PredicateEntry)}
}

func (s *PredicateStore) Lookup(functor string) (*PredicateEntry, bool) {
	entry, ok := s.entries[functor]
	return entry, ok
}

// AddFact appends a ground tuple to functor's facts.
func (s *PredicateStore) AddFact(functor string, tuple []Value) error {
	entry, ok := s.entries[functor]
	if !ok {
		entry = &PredicateEntry{Functor: functor, Kind: PredicateFacts}
		s.entries[functor] = entry
	}
	if entry.Kind != PredicateFacts {
		return NewFault(ConflictingPredicateKind, "%s is already defined by a rule", functor)
	}
	if entry.hasTuple(tuple) {
		return NewFault(DuplicateFactError, "%s already holds this fact", functor)
	}
	entry.Facts = append(entry.Facts, tuple)
	return nil
}

// SetRule registers the rule for functor, replacing any earlier rule.
func (s *PredicateStore) SetRule(functor string, rule *Rule) error {
	entry, ok := s.entries[functor]
	if ok && entry.Kind != PredicateRule {
		return NewFault(ConflictingPredicateKind, "%s already holds facts", functor)
	}
	s.entries[functor] = &PredicateEntry{Functor: functor, Kind: PredicateRule, Rule: rule}
	return nil
}

// Functors returns the declared functors in sorted order.
func (s *PredicateStore) Functors() []string {
	out := make([]string, 0, len(s.entries))
	for functor := range s.entries {
		out = append(out, functor)
	}
	sort.Strings(out)
	return out
}

func (s *PredicateStore) Len() int {
	return len(s.entries)
}
