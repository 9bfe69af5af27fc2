package prover

import (
	"regexp"
	"strconv"
)

// ResolutionResult is one way the head literal of a source disjunction
// resolves against an opposite-polarity literal of a target
// disjunction.
type ResolutionResult struct {
	Resolvent    CNFDisjunction
	Substitution Substitution
	Similarity   float64
	SourcePivot  CNFLiteral
	TargetPivot  CNFLiteral
	CacheHits    int
	Comparisons  int
}

// resolveStep tries to resolve source's head literal (spec.md §4.5:
// the designated pivot) against every literal of target with opposite
// polarity, returning one ResolutionResult per literal that unifies.
// A target disjunction typically yields at most one resolvent in
// practice (knowledge base clauses rarely repeat a predicate with both
// polarities), but nothing prevents more.
func resolveStep(source, target CNFDisjunction, simCache *similarityCache, minSimilarity float64) ([]*ResolutionResult, error) {
	head, ok := source.Head()
	if !ok {
		return nil, nil
	}

	var results []*ResolutionResult
	for i, targetLit := range target.Literals {
		if targetLit.Negated == head.Negated {
			continue
		}
		outcome, ok, err := unifyAtoms(head.Atom, targetLit.Atom, newSubstitution(), simCache, minSimilarity)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		resolvent := buildResolvent(source, target, i, outcome.Substitution)
		results = append(results, &ResolutionResult{
			Resolvent:    resolvent,
			Substitution: outcome.Substitution,
			Similarity:   outcome.Similarity,
			SourcePivot:  head,
			TargetPivot:  targetLit,
			CacheHits:    outcome.CacheHits,
			Comparisons:  outcome.Comparisons,
		})
	}
	return results, nil
}

// buildResolvent concatenates every literal but the two pivots.
// Variables left unbound by the unification keep their original name
// on both sides *except* where the same name is left unbound on both
// the remaining source and remaining target literals: that is a
// coincidental name collision between two logically distinct
// variables, and spec.md §4.5 step 3 requires renaming one side's
// occurrences to a fresh name before the two literal sets are
// concatenated.
func buildResolvent(source, target CNFDisjunction, targetPivotIdx int, subs Substitution) CNFDisjunction {
	sourceLits := source.Rest()
	var targetLits []CNFLiteral
	for i, l := range target.Literals {
		if i == targetPivotIdx {
			continue
		}
		targetLits = append(targetLits, l)
	}

	sourceBound := boundNames(subs, sourceLabel)
	targetBound := boundNames(subs, targetLabel)
	unusedSource := unusedVarNames(sourceLits, sourceBound)
	unusedTarget := unusedVarNames(targetLits, targetBound)

	used := make(map[string]bool)
	for n := range unusedSource {
		used[n] = true
	}
	for n := range unusedTarget {
		used[n] = true
	}
	for n := range sourceBound {
		used[n] = true
	}
	for n := range targetBound {
		used[n] = true
	}

	rename := make(map[string]string)
	for n := range unusedSource {
		if !unusedTarget[n] {
			continue
		}
		rename[n] = freshVarName(n, used)
	}
	targetLits = renameVariables(targetLits, rename)

	var lits []CNFLiteral
	for _, l := range sourceLits {
		lits = append(lits, materializeLiteral(l, sourceLabel, subs))
	}
	for _, l := range targetLits {
		lits = append(lits, materializeLiteral(l, targetLabel, subs))
	}
	return NewCNFDisjunction(lits...)
}

// boundNames returns the set of variable names that have a direct
// binding under the given label in subs.
func boundNames(subs Substitution, label string) map[string]bool {
	names := make(map[string]bool)
	for lv := range subs {
		if lv.Label == label {
			names[lv.Name] = true
		}
	}
	return names
}

// unusedVarNames collects the names of every variable appearing
// (recursively, through bound functions) in literals that has no
// direct entry in bound.
func unusedVarNames(literals []CNFLiteral, bound map[string]bool) map[string]bool {
	names := make(map[string]bool)
	var walk func(t Term)
	walk = func(t Term) {
		switch tt := t.(type) {
		case Variable:
			if !bound[tt.Name] {
				names[tt.Name] = true
			}
		case BoundFunction:
			for _, sub := range tt.Terms {
				walk(sub)
			}
		}
	}
	for _, l := range literals {
		for _, t := range l.Atom.Terms {
			walk(t)
		}
	}
	return names
}

var trailingCounterSuffix = regexp.MustCompile(`_\d+$`)

// freshVarName mints a name based on name (with any existing "_N"
// counter suffix stripped) that is not already present in used,
// recording it in used as it does (spec.md §4.5 step 3: "rename...
// to fresh names base_k not present among currently used variables").
func freshVarName(name string, used map[string]bool) string {
	base := trailingCounterSuffix.ReplaceAllString(name, "")
	for k := 1; ; k++ {
		candidate := base + "_" + strconv.Itoa(k)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// renameVariables rewrites every bare Variable occurrence in literals
// whose name is a key of rename to its mapped name, recursing through
// bound functions.
func renameVariables(literals []CNFLiteral, rename map[string]string) []CNFLiteral {
	if len(rename) == 0 {
		return literals
	}
	out := make([]CNFLiteral, len(literals))
	for i, l := range literals {
		out[i] = CNFLiteral{Negated: l.Negated, Atom: renameAtom(l.Atom, rename)}
	}
	return out
}

func renameAtom(a Atom, rename map[string]string) Atom {
	terms := make([]Term, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = renameTerm(t, rename)
	}
	return Atom{Predicate: a.Predicate, Terms: terms}
}

func renameTerm(t Term, rename map[string]string) Term {
	switch tt := t.(type) {
	case Variable:
		if newName, ok := rename[tt.Name]; ok {
			return Variable{Name: newName}
		}
		return tt
	case BoundFunction:
		terms := make([]Term, len(tt.Terms))
		for i, sub := range tt.Terms {
			terms[i] = renameTerm(sub, rename)
		}
		return BoundFunction{Function: tt.Function, Terms: terms}
	default:
		return t
	}
}

// materializeLiteral resolves l's terms through subs, chasing every
// bound variable to its terminal value. A variable left unbound
// (after the collision-driven rename above, if any) keeps its plain
// name: spec.md §4.5 only requires renaming on a genuine collision,
// not a blanket per-side relabeling.
func materializeLiteral(l CNFLiteral, label string, subs Substitution) CNFLiteral {
	return CNFLiteral{Atom: materializeAtom(l.Atom, label, subs), Negated: l.Negated}
}

func materializeAtom(a Atom, label string, subs Substitution) Atom {
	terms := make([]Term, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = materializeTerm(t, label, subs)
	}
	return Atom{Predicate: a.Predicate, Terms: terms}
}

func materializeTerm(t Term, label string, subs Substitution) Term {
	t, resolvedLabel := dereference(t, label, subs)
	switch tt := t.(type) {
	case Variable:
		return tt
	case BoundFunction:
		terms := make([]Term, len(tt.Terms))
		for i, sub := range tt.Terms {
			terms[i] = materializeTerm(sub, resolvedLabel, subs)
		}
		return BoundFunction{Function: tt.Function, Terms: terms}
	default:
		return t
	}
}
