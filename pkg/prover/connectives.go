package prover

import (
	"fmt"
	"strings"
)

// Clause is the closed sum type of clause connectives: Atom, Not,
// And, Or, Implies, Exists, All. Only these seven forms are valid
// clauses; quantifiers each bind exactly one variable over a single
// sub-clause body.
type Clause interface {
	fmt.Stringer
	isClause()
}

func (Atom) isClause() {}

// And is a flattening conjunction: constructing And(And(a,b), c) is
// indistinguishable from And(a,b,c).
type And struct {
	Args []Clause
}

// NewAnd builds a conjunction, flattening any nested And arguments.
func NewAnd(args ...Clause) And {
	var flat []Clause
	for _, a := range args {
		if inner, ok := a.(And); ok {
			flat = append(flat, inner.Args...)
		} else {
			flat = append(flat, a)
		}
	}
	return And{Args: flat}
}

func (And) isClause() {}

func (a And) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = parenthesizeIn(arg, Or{}, Implies{})
	}
	return strings.Join(parts, " ∧ ")
}

// Or is a flattening disjunction: constructing Or(Or(a,b), c) is
// indistinguishable from Or(a,b,c).
type Or struct {
	Args []Clause
}

// NewOr builds a disjunction, flattening any nested Or arguments.
func NewOr(args ...Clause) Or {
	var flat []Clause
	for _, a := range args {
		if inner, ok := a.(Or); ok {
			flat = append(flat, inner.Args...)
		} else {
			flat = append(flat, a)
		}
	}
	return Or{Args: flat}
}

func (Or) isClause() {}

func (o Or) String() string {
	parts := make([]string, len(o.Args))
	for i, arg := range o.Args {
		parts[i] = parenthesizeIn(arg, And{}, Implies{})
	}
	return strings.Join(parts, " ∨ ")
}

// Not negates a sub-clause.
type Not struct {
	Body Clause
}

func (Not) isClause() {}

func (n Not) String() string {
	switch n.Body.(type) {
	case And, Or, Implies:
		return fmt.Sprintf("¬(%s)", n.Body)
	}
	return fmt.Sprintf("¬%s", n.Body)
}

// Implies is a material implication, antecedent -> consequent.
type Implies struct {
	Antecedent Clause
	Consequent Clause
}

func (Implies) isClause() {}

func (i Implies) String() string {
	return fmt.Sprintf("%s → %s",
		parenthesizeIn(i.Antecedent, And{}, Or{}, Implies{}),
		parenthesizeIn(i.Consequent, And{}, Or{}, Implies{}))
}

// Exists is existential quantification binding one variable.
type Exists struct {
	Variable Variable
	Body     Clause
}

func (Exists) isClause() {}

func (e Exists) String() string {
	return fmt.Sprintf("∃%s(%s)", e.Variable, e.Body)
}

// All is universal quantification binding one variable.
type All struct {
	Variable Variable
	Body     Clause
}

func (All) isClause() {}

func (a All) String() string {
	return fmt.Sprintf("∀%s(%s)", a.Variable, a.Body)
}

// parenthesizeIn renders c, wrapping it in parens if its type matches
// any of the given siblings. This drives the minimal parenthesization
// described in spec.md §4.1 (precedence {¬, ∧, ∨, →, ∃/∀}): each
// connective's String method lists exactly the neighboring connective
// types that would otherwise read ambiguously.
func parenthesizeIn(c Clause, siblings ...Clause) string {
	for _, s := range siblings {
		if sameClauseType(c, s) {
			return fmt.Sprintf("(%s)", c)
		}
	}
	return c.String()
}

func sameClauseType(a, b Clause) bool {
	switch a.(type) {
	case And:
		_, ok := b.(And)
		return ok
	case Or:
		_, ok := b.(Or)
		return ok
	case Implies:
		_, ok := b.(Implies)
		return ok
	case Not:
		_, ok := b.(Not)
		return ok
	default:
		return false
	}
}
