package prover

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// skolemizer tracks a monotonically increasing counter used to mint
// fresh Skolem function symbols. The universally-bound variables in
// scope (which become a Skolem function's arguments, per spec.md §4.3
// stage 3) are passed through skolemizeRecursive, not stored here.
type skolemizer struct {
	counter int
}

func newSkolemizer() *skolemizer {
	return &skolemizer{}
}

func (s *skolemizer) nextFunction() Function {
	s.counter++
	return Function{Symbol: fmt.Sprintf("_SK_%d", s.counter)}
}

// skolemize removes existential quantifiers from c, replacing each
// existentially-bound variable with a Skolem term: a fresh constant if
// no universally-quantified variable encloses it, or a fresh function
// of the enclosing universal variables otherwise. Universal
// quantifiers are simply dropped, since everything remaining is
// implicitly universally quantified (spec.md §4.3 stage 3) — including
// c's own free variables, which are universal from the outset and so
// seed the initial universals set before any All node is walked.
func skolemize(c Clause) (Clause, error) {
	unbound := findUnboundVarNames(c, map[string]bool{})
	free := make([]Variable, 0, len(unbound))
	for n := range unbound {
		free = append(free, Variable{Name: n})
	}
	return skolemizeRecursive(c, newSkolemizer(), free, map[string]Term{})
}

func skolemizeRecursive(c Clause, sk *skolemizer, universals []Variable, subs map[string]Term) (Clause, error) {
	switch cc := c.(type) {
	case And:
		args := make([]Clause, len(cc.Args))
		for i, arg := range cc.Args {
			next, err := skolemizeRecursive(arg, sk, universals, subs)
			if err != nil {
				return nil, err
			}
			args[i] = next
		}
		return NewAnd(args...), nil
	case Or:
		args := make([]Clause, len(cc.Args))
		for i, arg := range cc.Args {
			next, err := skolemizeRecursive(arg, sk, universals, subs)
			if err != nil {
				return nil, err
			}
			args[i] = next
		}
		return NewOr(args...), nil
	case Not:
		body, err := skolemizeRecursive(cc.Body, sk, universals, subs)
		if err != nil {
			return nil, err
		}
		return Not{Body: body}, nil
	case All:
		nextUniversals := append(append([]Variable{}, universals...), cc.Variable)
		return skolemizeRecursive(cc.Body, sk, nextUniversals, subs)
	case Exists:
		nextSubs := make(map[string]Term, len(subs)+1)
		for k, v := range subs {
			nextSubs[k] = v
		}
		if len(universals) == 0 {
			nextSubs[cc.Variable.Name] = Constant{Symbol: sk.nextFunction().Symbol}
		} else {
			sorted := append([]Variable{}, universals...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
			args := make([]Term, len(sorted))
			for i, v := range sorted {
				args[i] = v
			}
			nextSubs[cc.Variable.Name] = sk.nextFunction().Apply(args...)
		}
		return skolemizeRecursive(cc.Body, sk, universals, nextSubs)
	case Atom:
		terms := substituteSkolemTerms(cc.Terms, subs)
		return Atom{Predicate: cc.Predicate, Terms: terms}, nil
	default:
		return nil, errors.Errorf("skolemize: unknown clause type %T", c)
	}
}

func substituteSkolemTerms(terms []Term, subs map[string]Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		switch tt := t.(type) {
		case Variable:
			if replacement, ok := subs[tt.Name]; ok {
				out[i] = replacement
			} else {
				out[i] = tt
			}
		case BoundFunction:
			out[i] = BoundFunction{Function: tt.Function, Terms: substituteSkolemTerms(tt.Terms, subs)}
		default:
			out[i] = t
		}
	}
	return out
}
