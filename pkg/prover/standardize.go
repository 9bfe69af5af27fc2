package prover

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// varNameGenerator hands out name itself the first time it is asked
// for, and afterwards the next available suffixed name "name_k" that
// is not already in use, per conversion. It never reuses or
// overwrites a name it has already handed out, matching spec.md
// §4.3 stage 2.
type varNameGenerator struct {
	used map[string]bool
}

func newVarNameGenerator() *varNameGenerator {
	return &varNameGenerator{used: make(map[string]bool)}
}

func (g *varNameGenerator) next(name string) string {
	if !g.used[name] {
		g.used[name] = true
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !g.used[candidate] {
			g.used[candidate] = true
			return candidate
		}
	}
}

// findUnboundVarNames collects the names of every variable in clause
// that is not bound by an enclosing quantifier within clause itself
// (free variables are implicitly universal per spec.md §4.3 stage 3).
func findUnboundVarNames(c Clause, bound map[string]bool) map[string]bool {
	unbound := make(map[string]bool)
	var walk func(c Clause, bound map[string]bool)
	walk = func(c Clause, bound map[string]bool) {
		switch cc := c.(type) {
		case And:
			for _, arg := range cc.Args {
				for k := range walk2(arg, bound) {
					unbound[k] = true
				}
			}
		case Or:
			for _, arg := range cc.Args {
				for k := range walk2(arg, bound) {
					unbound[k] = true
				}
			}
		case Implies:
			for k := range walk2(cc.Antecedent, bound) {
				unbound[k] = true
			}
			for k := range walk2(cc.Consequent, bound) {
				unbound[k] = true
			}
		case Not:
			for k := range walk2(cc.Body, bound) {
				unbound[k] = true
			}
		case Exists:
			nextBound := copyBoundSet(bound)
			nextBound[cc.Variable.Name] = true
			for k := range walk2(cc.Body, nextBound) {
				unbound[k] = true
			}
		case All:
			nextBound := copyBoundSet(bound)
			nextBound[cc.Variable.Name] = true
			for k := range walk2(cc.Body, nextBound) {
				unbound[k] = true
			}
		case Atom:
			for _, v := range findUnboundVarNamesInTerms(cc.Terms, bound) {
				unbound[v] = true
			}
		}
	}
	walk(c, bound)
	return unbound
}

// walk2 is a small helper so the recursive cases above can reuse
// findUnboundVarNames without re-walking from scratch.
func walk2(c Clause, bound map[string]bool) map[string]bool {
	return findUnboundVarNames(c, bound)
}

func copyBoundSet(bound map[string]bool) map[string]bool {
	next := make(map[string]bool, len(bound)+1)
	for k := range bound {
		next[k] = true
	}
	return next
}

func findUnboundVarNamesInTerms(terms []Term, bound map[string]bool) []string {
	var names []string
	for _, t := range terms {
		switch tt := t.(type) {
		case Variable:
			if !bound[tt.Name] {
				names = append(names, tt.Name)
			}
		case BoundFunction:
			names = append(names, findUnboundVarNamesInTerms(tt.Terms, bound)...)
		}
	}
	return names
}

// standardizeVariables ensures every bound and free variable in c has
// a name unique to this conversion (spec.md §4.3 stage 2). Free
// variables are renamed once at the outer scope.
func standardizeVariables(c Clause) (Clause, error) {
	unbound := findUnboundVarNames(c, map[string]bool{})
	names := make([]string, 0, len(unbound))
	for n := range unbound {
		names = append(names, n)
	}
	sort.Strings(names)

	gen := newVarNameGenerator()
	remap := make(map[string]string, len(names))
	for _, n := range names {
		remap[n] = gen.next(n)
	}
	return standardizeVariablesRecursive(c, gen, remap)
}

func standardizeVariablesRecursive(c Clause, gen *varNameGenerator, remap map[string]string) (Clause, error) {
	switch cc := c.(type) {
	case And:
		args := make([]Clause, len(cc.Args))
		for i, arg := range cc.Args {
			next, err := standardizeVariablesRecursive(arg, gen, remap)
			if err != nil {
				return nil, err
			}
			args[i] = next
		}
		return NewAnd(args...), nil
	case Or:
		args := make([]Clause, len(cc.Args))
		for i, arg := range cc.Args {
			next, err := standardizeVariablesRecursive(arg, gen, remap)
			if err != nil {
				return nil, err
			}
			args[i] = next
		}
		return NewOr(args...), nil
	case Not:
		body, err := standardizeVariablesRecursive(cc.Body, gen, remap)
		if err != nil {
			return nil, err
		}
		return Not{Body: body}, nil
	case Atom:
		terms, err := standardizeTerms(cc.Terms, remap)
		if err != nil {
			return nil, err
		}
		return Atom{Predicate: cc.Predicate, Terms: terms}, nil
	case Exists:
		newName := gen.next(cc.Variable.Name)
		nextRemap := copyRemap(remap)
		nextRemap[cc.Variable.Name] = newName
		body, err := standardizeVariablesRecursive(cc.Body, gen, nextRemap)
		if err != nil {
			return nil, err
		}
		return Exists{Variable: Variable{Name: newName}, Body: body}, nil
	case All:
		newName := gen.next(cc.Variable.Name)
		nextRemap := copyRemap(remap)
		nextRemap[cc.Variable.Name] = newName
		body, err := standardizeVariablesRecursive(cc.Body, gen, nextRemap)
		if err != nil {
			return nil, err
		}
		return All{Variable: Variable{Name: newName}, Body: body}, nil
	default:
		return nil, errors.Errorf("standardizeVariables: unknown clause type %T", c)
	}
}

func copyRemap(remap map[string]string) map[string]string {
	next := make(map[string]string, len(remap)+1)
	for k, v := range remap {
		next[k] = v
	}
	return next
}

func standardizeTerms(terms []Term, remap map[string]string) ([]Term, error) {
	out := make([]Term, len(terms))
	for i, t := range terms {
		switch tt := t.(type) {
		case Variable:
			newName, ok := remap[tt.Name]
			if !ok {
				return nil, errors.Errorf("standardizeVariables: variable %s is not bound", tt.Name)
			}
			out[i] = Variable{Name: newName}
		case BoundFunction:
			subTerms, err := standardizeTerms(tt.Terms, remap)
			if err != nil {
				return nil, err
			}
			out[i] = BoundFunction{Function: tt.Function, Terms: subTerms}
		default:
			out[i] = t
		}
	}
	return out, nil
}
