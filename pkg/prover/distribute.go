package prover

import "github.com/pkg/errors"

// distributeDisjunctions pushes Or inward over And until the clause is
// a conjunction of disjunctions of literals, the final shape CNF
// requires (spec.md §4.3 stage 4). c must already be in negation
// normal form with all quantifiers removed (post-Skolemization): only
// And, Or, Not(Atom), and Atom may appear.
func distributeDisjunctions(c Clause) (Clause, error) {
	switch cc := c.(type) {
	case And:
		args := make([]Clause, len(cc.Args))
		for i, arg := range cc.Args {
			next, err := distributeDisjunctions(arg)
			if err != nil {
				return nil, err
			}
			args[i] = next
		}
		return NewAnd(args...), nil
	case Or:
		args := make([]Clause, len(cc.Args))
		for i, arg := range cc.Args {
			next, err := distributeDisjunctions(arg)
			if err != nil {
				return nil, err
			}
			args[i] = next
		}
		if len(args) == 0 {
			return NewOr(), nil
		}
		result := args[0]
		for _, arg := range args[1:] {
			result = distributePair(result, arg)
		}
		return result, nil
	case Not:
		if _, ok := cc.Body.(Atom); !ok {
			return nil, errors.Errorf("distributeDisjunctions: expected negated atom, got %T", cc.Body)
		}
		return cc, nil
	case Atom:
		return cc, nil
	default:
		return nil, errors.Errorf("distributeDisjunctions: unknown clause type %T", c)
	}
}

// distributePair distributes Or(a, b) over any And nested in either
// side: Or(a, And(b,c)) ≡ And(Or(a,b), Or(a,c)).
func distributePair(a, b Clause) Clause {
	if aAnd, ok := a.(And); ok {
		parts := make([]Clause, len(aAnd.Args))
		for i, arg := range aAnd.Args {
			parts[i] = distributePair(arg, b)
		}
		return NewAnd(parts...)
	}
	if bAnd, ok := b.(And); ok {
		parts := make([]Clause, len(bAnd.Args))
		for i, arg := range bAnd.Args {
			parts[i] = distributePair(a, arg)
		}
		return NewAnd(parts...)
	}
	return NewOr(a, b)
}
