package prover

import (
	"fmt"
	"sort"
	"strings"
)

// ProofStep is one resolution in a proof chain: Source (the
// in-progress disjunction) resolved against Target (a clause drawn
// from the knowledge base or the negated goal's siblings) produced
// Resolvent. Parent links back toward the negated goal, so a finished
// proof is read by following Parent pointers from its last step.
type ProofStep struct {
	Source            CNFDisjunction
	Target            CNFDisjunction
	SourcePivot       CNFLiteral
	TargetPivot       CNFLiteral
	Substitution      Substitution
	Resolvent         CNFDisjunction
	Similarity        float64
	RunningSimilarity float64
	Depth             int
	Parent            *ProofStep
}

// String renders the step per spec.md §6's printed-proof contract:
// Similarity, Source, Target, the Unify line, the source- and
// target-side substitutions, and the Resolvent.
func (s *ProofStep) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Similarity: %g\n", s.Similarity)
	fmt.Fprintf(&b, "  Source: %s\n", formatDisjunction(s.Source))
	fmt.Fprintf(&b, "  Target: %s\n", formatDisjunction(s.Target))
	fmt.Fprintf(&b, "  Unify: %s = %s\n", s.SourcePivot.Atom, s.TargetPivot.Atom)
	fmt.Fprintf(&b, "  Subsitutions: %s, %s\n",
		formatLabeledSubstitution(s.Substitution, sourceLabel),
		formatLabeledSubstitution(s.Substitution, targetLabel))
	fmt.Fprintf(&b, "  Resolvent: %s\n", formatDisjunction(s.Resolvent))
	return b.String()
}

// formatLabeledSubstitution renders the bindings of one side (source
// or target) of a two-sided Substitution as `{V -> T, ...}`, sorted by
// variable name.
func formatLabeledSubstitution(subs Substitution, label string) string {
	names := make([]string, 0, len(subs))
	for lv := range subs {
		if lv.Label == label {
			names = append(names, lv.Name)
		}
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		bound := subs[LabeledVariable{Label: label, Name: name}]
		parts[i] = fmt.Sprintf("%s -> %s", name, bound.Term)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
