package prover

// Unification operates over two atoms drawn from different
// disjunctions, so the same variable name ("X") can appear in both
// without meaning the same variable. Rather than renaming variables
// up front, each side of the unification is labeled (sourceLabel or
// targetLabel per spec.md §4.4) and every LabeledVariable carries its
// label alongside its name, so a substitution keyed by
// (label, name) never conflates the two.

const (
	sourceLabel = "source"
	targetLabel = "target"
)

// LabeledVariable identifies a variable by name and by which side of
// a unification it came from.
type LabeledVariable struct {
	Label string
	Name  string
}

// boundTerm is a term together with the label whose side its own free
// variables belong to. A Variable bound to another Variable is
// followed through boundTerm.Label, not assumed to share the binder's
// label.
type boundTerm struct {
	Term  Term
	Label string
}

// Substitution maps labeled variables to their bound terms.
type Substitution map[LabeledVariable]boundTerm

func newSubstitution() Substitution {
	return make(Substitution)
}

func copySubstitution(s Substitution) Substitution {
	next := make(Substitution, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	return next
}

// resolve follows a chain of variable-to-variable bindings until it
// reaches an unbound variable or a non-variable term.
func (s Substitution) resolve(v LabeledVariable) (boundTerm, bool) {
	cur := v
	visited := map[LabeledVariable]bool{}
	for {
		if visited[cur] {
			return boundTerm{}, false
		}
		visited[cur] = true
		bound, ok := s[cur]
		if !ok {
			if cur == v {
				return boundTerm{}, false
			}
			return boundTerm{Term: Variable{Name: cur.Name}, Label: cur.Label}, true
		}
		if next, isVar := bound.Term.(Variable); isVar {
			cur = LabeledVariable{Label: bound.Label, Name: next.Name}
			continue
		}
		return bound, true
	}
}

// unifyOutcome is the result of a successful unification.
type unifyOutcome struct {
	Substitution Substitution
	Similarity   float64
	CacheHits    int
	Comparisons  int
}

// unifyAtoms attempts to unify a (from the source side) with b (from
// the target side) under the given starting substitution. ok is false
// for an ordinary unification failure (arity mismatch, clashing
// constants, similarity below threshold); that is a normal negative
// result per spec.md §7, not an error.
func unifyAtoms(
	a Atom, b Atom,
	subs Substitution,
	simCache *similarityCache,
	minSimilarity float64,
) (*unifyOutcome, bool, error) {
	if len(a.Terms) != len(b.Terms) {
		return nil, false, nil
	}

	out := &unifyOutcome{Substitution: copySubstitution(subs), Similarity: 1.0}

	predSim, hit := simCache.Compare(a.Predicate, b.Predicate)
	out.Comparisons++
	if hit {
		out.CacheHits++
	}
	if predSim < minSimilarity {
		return nil, false, nil
	}
	out.Similarity = predSim

	for i := range a.Terms {
		ok, err := unifyTerm(a.Terms[i], sourceLabel, b.Terms[i], targetLabel, out, simCache, minSimilarity)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
	}
	return out, true, nil
}

func unifyTerm(
	aTerm Term, aLabel string,
	bTerm Term, bLabel string,
	out *unifyOutcome,
	simCache *similarityCache,
	minSimilarity float64,
) (bool, error) {
	aTerm, aLabel = dereference(aTerm, aLabel, out.Substitution)
	bTerm, bLabel = dereference(bTerm, bLabel, out.Substitution)

	aVar, aIsVar := aTerm.(Variable)
	bVar, bIsVar := bTerm.(Variable)

	switch {
	case aIsVar && bIsVar:
		if aLabel == bLabel && aVar.Name == bVar.Name {
			return true, nil
		}
		out.Substitution[LabeledVariable{Label: aLabel, Name: aVar.Name}] = boundTerm{Term: bVar, Label: bLabel}
		return true, nil

	case aIsVar:
		if occursIn(LabeledVariable{Label: aLabel, Name: aVar.Name}, bTerm, bLabel, out.Substitution) {
			return false, nil
		}
		out.Substitution[LabeledVariable{Label: aLabel, Name: aVar.Name}] = boundTerm{Term: bTerm, Label: bLabel}
		return true, nil

	case bIsVar:
		if occursIn(LabeledVariable{Label: bLabel, Name: bVar.Name}, aTerm, aLabel, out.Substitution) {
			return false, nil
		}
		out.Substitution[LabeledVariable{Label: bLabel, Name: bVar.Name}] = boundTerm{Term: aTerm, Label: aLabel}
		return true, nil
	}

	aConst, aIsConst := aTerm.(Constant)
	bConst, bIsConst := bTerm.(Constant)
	if aIsConst && bIsConst {
		score, hit := simCache.Compare(aConst, bConst)
		out.Comparisons++
		if hit {
			out.CacheHits++
		}
		if score < minSimilarity {
			return false, nil
		}
		if score < out.Similarity {
			out.Similarity = score
		}
		return true, nil
	}

	aFn, aIsFn := aTerm.(BoundFunction)
	bFn, bIsFn := bTerm.(BoundFunction)
	if aIsFn && bIsFn {
		if aFn.Function.Symbol != bFn.Function.Symbol || len(aFn.Terms) != len(bFn.Terms) {
			return false, nil
		}
		for i := range aFn.Terms {
			ok, err := unifyTerm(aFn.Terms[i], aLabel, bFn.Terms[i], bLabel, out, simCache, minSimilarity)
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	}

	return false, nil
}

// dereference follows subs to the current binding of t (if t is a
// bound variable), returning the term it's ultimately bound to and
// the label that term's own variables belong under.
func dereference(t Term, label string, subs Substitution) (Term, string) {
	v, ok := t.(Variable)
	if !ok {
		return t, label
	}
	bound, ok := subs.resolve(LabeledVariable{Label: label, Name: v.Name})
	if !ok {
		return t, label
	}
	return bound.Term, bound.Label
}

// occursIn reports whether the variable v appears (transitively
// through subs) inside term, preventing the cyclic bindings that would
// otherwise make substitution application loop forever.
func occursIn(v LabeledVariable, term Term, label string, subs Substitution) bool {
	term, label = dereference(term, label, subs)
	switch tt := term.(type) {
	case Variable:
		return label == v.Label && tt.Name == v.Name
	case BoundFunction:
		for _, sub := range tt.Terms {
			if occursIn(v, sub, label, subs) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
