package prover

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// CNFLiteral is a single literal of a CNF disjunction: an atom, either
// asserted or negated.
type CNFLiteral struct {
	Atom    Atom
	Negated bool
}

// String renders the literal as `predicate(...)` or `¬predicate(...)`.
func (l CNFLiteral) String() string {
	if l.Negated {
		return fmt.Sprintf("¬%s", l.Atom)
	}
	return l.Atom.String()
}

// key is a structural identity used for literal deduplication within
// a disjunction; it does not account for similarity, only exact
// syntactic identity.
func (l CNFLiteral) key() string {
	parts := make([]string, len(l.Atom.Terms))
	for i, t := range l.Atom.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%v|%s(%s)", l.Negated, l.Atom.Predicate.Symbol, strings.Join(parts, ","))
}

// CNFDisjunction is a deduplicated set of literals. Literals are kept
// sorted by descending argument arity: wider literals are more likely
// to fail unification quickly, so resolving against them first prunes
// the search tree sooner (spec.md §4.3 stage 5 / §4.5).
type CNFDisjunction struct {
	Literals []CNFLiteral
}

// NewCNFDisjunction builds a disjunction from lits, dropping exact
// duplicates and applying the arity-descending literal order.
func NewCNFDisjunction(lits ...CNFLiteral) CNFDisjunction {
	seen := make(map[string]bool, len(lits))
	deduped := make([]CNFLiteral, 0, len(lits))
	for _, l := range lits {
		k := l.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, l)
	}
	sort.SliceStable(deduped, func(i, j int) bool {
		return len(deduped[i].Atom.Terms) > len(deduped[j].Atom.Terms)
	})
	return CNFDisjunction{Literals: deduped}
}

// Head returns the designated pivot literal for resolution: the first
// literal after arity-descending ordering. ok is false for the empty
// disjunction (the unsatisfiable clause).
func (d CNFDisjunction) Head() (lit CNFLiteral, ok bool) {
	if len(d.Literals) == 0 {
		return CNFLiteral{}, false
	}
	return d.Literals[0], true
}

// Rest returns a copy of every literal but the head.
func (d CNFDisjunction) Rest() []CNFLiteral {
	if len(d.Literals) <= 1 {
		return nil
	}
	rest := make([]CNFLiteral, len(d.Literals)-1)
	copy(rest, d.Literals[1:])
	return rest
}

// String joins the literals with ∨.
func (d CNFDisjunction) String() string {
	parts := make([]string, len(d.Literals))
	for i, l := range d.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ∨ ")
}

// structuralKey identifies a disjunction for seen-resolvent
// memoization. It is a syntactic fingerprint, not an alpha-equivalence
// check, so it is a pruning heuristic rather than a correctness
// guarantee: two resolvents that differ only in fresh variable names
// will not collide.
func (d CNFDisjunction) structuralKey() string {
	parts := make([]string, len(d.Literals))
	for i, l := range d.Literals {
		parts[i] = l.key()
	}
	return strings.Join(parts, "&")
}

// ToCNF runs the full normalization pipeline on c and returns its
// conjunctive normal form as one CNFDisjunction per conjunct:
// negation normal form, variable standardization, Skolemization, then
// disjunction distribution (spec.md §4.3).
func ToCNF(c Clause) ([]CNFDisjunction, error) {
	nnf, err := toNNF(c)
	if err != nil {
		return nil, errors.Wrap(err, "ToCNF: negation normal form")
	}
	standardized, err := standardizeVariables(nnf)
	if err != nil {
		return nil, errors.Wrap(err, "ToCNF: variable standardization")
	}
	skolemized, err := skolemize(standardized)
	if err != nil {
		return nil, errors.Wrap(err, "ToCNF: skolemization")
	}
	distributed, err := distributeDisjunctions(skolemized)
	if err != nil {
		return nil, errors.Wrap(err, "ToCNF: disjunction distribution")
	}

	conjuncts := conjunctsOf(distributed)
	disjunctions := make([]CNFDisjunction, 0, len(conjuncts))
	for _, conjunct := range conjuncts {
		lits, err := literalsOf(conjunct)
		if err != nil {
			return nil, errors.Wrap(err, "ToCNF: literal extraction")
		}
		disjunctions = append(disjunctions, NewCNFDisjunction(lits...))
	}
	return disjunctions, nil
}

func conjunctsOf(c Clause) []Clause {
	if and, ok := c.(And); ok {
		return and.Args
	}
	return []Clause{c}
}

func literalsOf(c Clause) ([]CNFLiteral, error) {
	switch cc := c.(type) {
	case Or:
		var lits []CNFLiteral
		for _, arg := range cc.Args {
			sub, err := literalsOf(arg)
			if err != nil {
				return nil, err
			}
			lits = append(lits, sub...)
		}
		return lits, nil
	case Not:
		atom, ok := cc.Body.(Atom)
		if !ok {
			return nil, errors.Errorf("literalsOf: expected negated atom, got %T", cc.Body)
		}
		return []CNFLiteral{{Atom: atom, Negated: true}}, nil
	case Atom:
		return []CNFLiteral{{Atom: cc, Negated: false}}, nil
	default:
		return nil, errors.Errorf("literalsOf: unknown clause type %T", c)
	}
}
