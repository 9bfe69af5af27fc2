package prover

import (
	"fmt"
	"sort"
	"strings"
)

// Proof is a completed resolution refutation of a goal: a chain of
// ProofSteps from the negated goal down to the empty disjunction,
// ordered root-to-leaf. Similarity is the minimum similarity score
// accumulated across every resolution in the chain (spec.md §4.5).
type Proof struct {
	Goal            Atom
	GoalDisjunction CNFDisjunction
	Similarity      float64
	Steps           []*ProofStep
	Depth           int
	Substitution    map[string]Term
	Stats           ProofStats
}

// String renders the proof in the contract laid out in spec.md §6:
// a Goal line, the resolved substitutions for the goal's free
// variables, the final similarity and depth, then each step in order
// separated by "---".
func (p *Proof) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", formatDisjunction(p.GoalDisjunction))
	fmt.Fprintf(&b, "Subsitutions: %s\n", formatTermMap(p.Substitution))
	fmt.Fprintf(&b, "Similarity: %g\n", p.Similarity)
	fmt.Fprintf(&b, "Depth: %d\n", p.Depth)
	b.WriteString("Steps:\n")
	for i, step := range p.Steps {
		if i > 0 {
			b.WriteString("---\n")
		}
		b.WriteString(step.String())
	}
	return b.String()
}

// formatDisjunction renders d as `[L1 ∨ L2 ∨ ...]` with its literals
// sorted lexicographically, the printed-form contract from spec.md §6.
// This is deliberately a different order than CNFDisjunction.String's
// arity-descending order, which exists for resolution pivoting
// (spec.md §4.3 stage 5), not for display.
func formatDisjunction(d CNFDisjunction) string {
	lits := make([]string, len(d.Literals))
	for i, l := range d.Literals {
		lits[i] = l.String()
	}
	sort.Strings(lits)
	return "[" + strings.Join(lits, " ∨ ") + "]"
}

// formatTermMap renders a variable-to-term binding map as
// `{V -> T, ...}`, sorted by variable name for stable output.
func formatTermMap(m map[string]Term) string {
	if len(m) == 0 {
		return "{}"
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s -> %s", name, m[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
