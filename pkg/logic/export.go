package logic

import (
	"sort"

	mangle "github.com/google/mangle/ast"
	"github.com/google/mangle/factstore"

	"sigh/interpreter-go/pkg/runtime"
)

// ExportStats counts what ExportFacts did with each stored tuple.
type ExportStats struct {
	Exported int
	Skipped  int
}

// ExportFacts mirrors the ground facts held in env's predicate store into a
// Datalog fact store. Tuples holding a value with no Datalog constant (arrays,
// structs, functions) are skipped. Rules are not exported.
func ExportFacts(env *runtime.Environment) (factstore.FactStore, ExportStats) {
	store := factstore.NewSimpleInMemoryStore()
	var stats ExportStats
	if !env.HasPredicates() {
		return store, stats
	}
	predicates := env.Predicates()
	for _, functor := range predicates.Functors() {
		entry, _ := predicates.Lookup(functor)
		if entry.Kind != runtime.PredicateFacts {
			continue
		}
		for _, tuple := range entry.Facts {
			atom, ok := toAtom(functor, tuple)
			if !ok {
				stats.Skipped++
				continue
			}
			if store.Add(atom) {
				stats.Exported++
			}
		}
	}
	return store, stats
}

func toAtom(functor string, tuple []runtime.Value) (mangle.Atom, bool) {
	terms := make([]mangle.BaseTerm, len(tuple))
	for idx, val := range tuple {
		term, ok := toConstant(val)
		if !ok {
			return mangle.Atom{}, false
		}
		terms[idx] = term
	}
	return mangle.NewAtom(functor, terms...), true
}

func toConstant(val runtime.Value) (mangle.BaseTerm, bool) {
	switch v := val.(type) {
	case runtime.IntValue:
		return mangle.Number(v.Val), true
	case runtime.FloatValue:
		return mangle.Float64(v.Val), true
	case runtime.StringValue:
		return mangle.String(v.Val), true
	case runtime.BoolValue:
		if v.Val {
			return mangle.TrueConstant, true
		}
		return mangle.FalseConstant, true
	case runtime.AtomValue:
		name, err := mangle.Name("/" + v.Name)
		if err != nil {
			return nil, false
		}
		return name, true
	default:
		return nil, false
	}
}

// Facts lists the exported atoms of one predicate.
func Facts(store factstore.FactStore, functor string, arity int) ([]mangle.Atom, error) {
	var out []mangle.Atom
	query := mangle.NewQuery(mangle.PredicateSym{Symbol: functor, Arity: arity})
	err := store.GetFacts(query, func(atom mangle.Atom) error {
		out = append(out, atom)
		return nil
	})
	return out, err
}

// Lines renders every fact in store as Datalog text, grouped by predicate in
// name order.
func Lines(store factstore.FactStore) ([]string, error) {
	preds := store.ListPredicates()
	sort.Slice(preds, func(a, b int) bool {
		if preds[a].Symbol != preds[b].Symbol {
			return preds[a].Symbol < preds[b].Symbol
		}
		return preds[a].Arity < preds[b].Arity
	})
	var lines []string
	for _, pred := range preds {
		atoms, err := Facts(store, pred.Symbol, pred.Arity)
		if err != nil {
			return nil, err
		}
		group := make([]string, len(atoms))
		for idx, atom := range atoms {
			group[idx] = atom.String() + "."
		}
		sort.Strings(group)
		lines = append(lines, group...)
	}
	return lines, nil
}
