package prover

import "github.com/pkg/errors"

// toNNF pushes negation down to the atoms, following the standard
// first-order rewrite rules (see spec.md §4.3 stage 1):
//
//	¬(A ∧ B) ≡ ¬A ∨ ¬B        ¬(A ∨ B) ≡ ¬A ∧ ¬B
//	¬¬A ≡ A                   A → B ≡ ¬A ∨ B
//	¬∀x.P ≡ ∃x.¬P             ¬∃x.P ≡ ∀x.¬P
//
// The result contains only {Atom, Not(Atom), And, Or, All, Exists}.
func toNNF(c Clause) (Clause, error) {
	switch cc := c.(type) {
	case Atom:
		return cc, nil
	case Not:
		return notToNNF(cc)
	case And:
		return andToNNF(cc)
	case Or:
		return orToNNF(cc)
	case Implies:
		return impliesToNNF(cc)
	case All:
		body, err := toNNF(cc.Body)
		if err != nil {
			return nil, err
		}
		return All{Variable: cc.Variable, Body: body}, nil
	case Exists:
		body, err := toNNF(cc.Body)
		if err != nil {
			return nil, err
		}
		return Exists{Variable: cc.Variable, Body: body}, nil
	default:
		return nil, errors.Errorf("toNNF: unknown clause type %T", c)
	}
}

func notToNNF(n Not) (Clause, error) {
	switch body := n.Body.(type) {
	case And:
		negated := make([]Clause, len(body.Args))
		for i, arg := range body.Args {
			negated[i] = Not{Body: arg}
		}
		return orToNNF(NewOr(negated...))
	case Or:
		negated := make([]Clause, len(body.Args))
		for i, arg := range body.Args {
			negated[i] = Not{Body: arg}
		}
		return andToNNF(NewAnd(negated...))
	case Not:
		return toNNF(body.Body)
	case Implies:
		nnfImplies, err := impliesToNNF(body)
		if err != nil {
			return nil, err
		}
		return notToNNF(Not{Body: nnfImplies})
	case Exists:
		inner, err := notToNNF(Not{Body: body.Body})
		if err != nil {
			return nil, err
		}
		return All{Variable: body.Variable, Body: inner}, nil
	case All:
		inner, err := notToNNF(Not{Body: body.Body})
		if err != nil {
			return nil, err
		}
		return Exists{Variable: body.Variable, Body: inner}, nil
	case Atom:
		return n, nil
	default:
		return nil, errors.Errorf("notToNNF: unknown clause type %T", n.Body)
	}
}

func impliesToNNF(i Implies) (Clause, error) {
	return orToNNF(NewOr(Not{Body: i.Antecedent}, i.Consequent))
}

func andToNNF(a And) (Clause, error) {
	args := make([]Clause, len(a.Args))
	for i, arg := range a.Args {
		nnf, err := toNNF(arg)
		if err != nil {
			return nil, err
		}
		args[i] = nnf
	}
	return NewAnd(args...), nil
}

func orToNNF(o Or) (Clause, error) {
	args := make([]Clause, len(o.Args))
	for i, arg := range o.Args {
		nnf, err := toNNF(arg)
		if err != nil {
			return nil, err
		}
		args[i] = nnf
	}
	return NewOr(args...), nil
}
