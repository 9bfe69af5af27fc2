// Package prover implements a fuzzy-optional first-order resolution
// theorem prover. It decides entailment of a goal clause against a
// knowledge base of clauses, returning concrete proofs ranked by a
// continuous similarity score in [0, 1].
//
// The prover converts clauses to conjunctive normal form (negation
// normal form, variable standardization, Skolemization, distribution),
// then runs input resolution starting from the negated goal. When
// symbols carry embeddings, unification degrades gracefully to a
// similarity score instead of requiring exact name equality; with no
// embeddings present, matching is strict and every proof has
// similarity 1.0.
package prover

import (
	"fmt"
	"strings"
)

// Term is the disjoint union {Variable, Constant, BoundFunction}.
// Implementations are immutable and safe to share freely.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Variable is a named logic variable. Identity is structural: two
// variables with the same name are the same variable within a single
// disjunction.
type Variable struct {
	Name string
}

func (Variable) isTerm() {}

// String returns the variable's name.
func (v Variable) String() string { return v.Name }

// Constant is a symbol that may carry an embedding for fuzzy
// comparison. Two constants with the same symbol are always
// comparable; embeddings let distinct symbols unify with a degraded
// similarity instead of failing outright.
type Constant struct {
	Symbol    string
	Embedding []float64
}

func (Constant) isTerm() {}

// String returns the constant's symbol.
func (c Constant) String() string { return c.Symbol }

// Predicate is a symbol attached to an Atom. Like Constant, it may
// carry an embedding and shares the same comparison interface.
type Predicate struct {
	Symbol    string
	Embedding []float64
}

// String returns the predicate's symbol.
func (p Predicate) String() string { return p.Symbol }

// Apply builds an Atom out of this predicate and the given terms.
func (p Predicate) Apply(terms ...Term) Atom {
	return Atom{Predicate: p, Terms: terms}
}

// Function is a function symbol. Applying it to a fixed-length tuple
// of terms yields a BoundFunction, which behaves like a term (it can
// appear wherever a Constant or Variable can).
type Function struct {
	Symbol string
}

// String returns the function's symbol.
func (f Function) String() string { return f.Symbol }

// Apply builds a BoundFunction out of this function symbol and the
// given terms.
func (f Function) Apply(terms ...Term) BoundFunction {
	return BoundFunction{Function: f, Terms: terms}
}

// BoundFunction is a function symbol applied to a fixed-length
// sequence of terms. Its arguments may themselves be BoundFunctions,
// so terms recurse arbitrarily deep.
type BoundFunction struct {
	Function Function
	Terms    []Term
}

func (BoundFunction) isTerm() {}

// String renders the bound function as `symbol(arg1,arg2,...)`.
func (bf BoundFunction) String() string {
	parts := make([]string, len(bf.Terms))
	for i, t := range bf.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", bf.Function.Symbol, strings.Join(parts, ","))
}

// Atom is a predicate applied to an ordered tuple of terms; arity is
// implicit in the length of Terms.
type Atom struct {
	Predicate Predicate
	Terms     []Term
}

// String renders the atom as `predicate(arg1,arg2,...)`.
func (a Atom) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", a.Predicate.Symbol, strings.Join(parts, ","))
}

// findVariables recursively collects every distinct Variable that
// appears in terms, in first-seen order.
func findVariables(terms []Term) []Variable {
	seen := make(map[string]bool)
	var vars []Variable
	var walk func(t Term)
	walk = func(t Term) {
		switch tt := t.(type) {
		case Variable:
			if !seen[tt.Name] {
				seen[tt.Name] = true
				vars = append(vars, tt)
			}
		case BoundFunction:
			for _, sub := range tt.Terms {
				walk(sub)
			}
		}
	}
	for _, t := range terms {
		walk(t)
	}
	return vars
}
