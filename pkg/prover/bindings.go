package prover

// resolveGoalSubstitution walks the finished proof's steps forward,
// following each of the goal's free variables through whatever it
// was unified with, so a caller asking "prove ancestor(tom, X)" can
// read back what X turned out to be (spec.md §6).
func resolveGoalSubstitution(goal Atom, steps []*ProofStep) map[string]Term {
	if len(steps) == 0 {
		return nil
	}
	result := make(map[string]Term)
	for _, v := range findVariables(goal.Terms) {
		if term, ok := chaseGoalVariable(v.Name, steps); ok {
			result[v.Name] = term
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// chaseGoalVariable follows name's binding step by step: whenever a
// step's substitution maps the variable to another variable, the
// chase continues under that variable's name; once it lands on a
// bound function, every still-unbound sub-variable is chased forward
// through the remaining steps in turn; once it lands on a constant,
// that is the answer.
func chaseGoalVariable(name string, steps []*ProofStep) (Term, bool) {
	return chaseFrom(name, steps, 0)
}

// chaseFrom follows name's binding forward through steps[fromIndex:],
// always reading the source side of each step's substitution. The
// pivot resolved at every step is always drawn from the evolving
// resolvent, which becomes the source side of the next unification in
// turn, so a goal variable's chain never needs to consult the target
// side of a step's substitution.
func chaseFrom(name string, steps []*ProofStep, fromIndex int) (Term, bool) {
	current := name
	var lastBound Term
	foundAt := -1
	for i := fromIndex; i < len(steps); i++ {
		bound, ok := steps[i].Substitution[LabeledVariable{Label: sourceLabel, Name: current}]
		if !ok {
			continue
		}
		lastBound = bound.Term
		foundAt = i
		if v, isVar := bound.Term.(Variable); isVar {
			current = v.Name
			continue
		}
	}
	if foundAt == -1 {
		return nil, false
	}
	if fn, isFn := lastBound.(BoundFunction); isFn {
		resolved := make([]Term, len(fn.Terms))
		for i, sub := range fn.Terms {
			resolved[i] = resolveSubTerm(sub, steps, foundAt+1)
		}
		return BoundFunction{Function: fn.Function, Terms: resolved}, true
	}
	return lastBound, true
}

// resolveSubTerm chases a bound function's sub-term forward if it is
// still a bare variable, leaving it as-is if the chase never finds a
// further binding for it.
func resolveSubTerm(term Term, steps []*ProofStep, fromIndex int) Term {
	v, isVar := term.(Variable)
	if !isVar {
		return term
	}
	if resolved, ok := chaseFrom(v.Name, steps, fromIndex); ok {
		return resolved
	}
	return term
}
