package prover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// End-to-end scenarios grounded on
// original_source/tests/prover/test_ResolutionProver.py's grandpa_of
// fixture (spec.md §8 scenarios 1, 2, 6) and
// original_source/tests/test_fuzzy_reasoner.py's embedding-backed
// knowledge (spec.md §8 scenario 3).

func ancestryKnowledge(t *testing.T) (*Prover, Predicate, Variable, Constant) {
	t.Helper()
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}
	z := Variable{Name: "Z"}
	parentOf := Predicate{Symbol: "parent_of"}
	fatherOf := Predicate{Symbol: "father_of"}
	grandpaOf := Predicate{Symbol: "grandpa_of"}
	homer := Constant{Symbol: "homer"}
	bart := Constant{Symbol: "bart"}
	abe := Constant{Symbol: "abe"}
	marge := Constant{Symbol: "marge"}

	rule := All{Variable: x, Body: All{Variable: y, Body: All{Variable: z,
		Body: Implies{
			Antecedent: NewAnd(fatherOf.Apply(x, z), parentOf.Apply(z, y)),
			Consequent: grandpaOf.Apply(x, y),
		},
	}}}

	p := NewProver()
	require.NoError(t, p.ExtendKnowledge(
		parentOf.Apply(homer, bart),
		fatherOf.Apply(abe, homer),
		rule,
	))
	_ = marge
	return p, grandpaOf, x, bart
}

func TestProveSimpleAncestry(t *testing.T) {
	p, grandpaOf, x, bart := ancestryKnowledge(t)

	proof, ok, err := p.Prove(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, proof.Similarity)
	require.Equal(t, 3, proof.Depth)
	require.Equal(t, Constant{Symbol: "abe"}, proof.Substitution["X"])
}

func TestProveUnprovableGoal(t *testing.T) {
	p, grandpaOf, _, bart := ancestryKnowledge(t)
	marge := Constant{Symbol: "marge"}

	_, ok, err := p.Prove(grandpaOf.Apply(marge, bart))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestProveAllOrdersBySimilarityThenDepth(t *testing.T) {
	// father_of_embed and dad_of_embed carry near-synonymous embeddings
	// (cosine ≈0.98), so the rule chain can be satisfied through any
	// combination of the two predicate names at each hop, producing
	// several proofs of decreasing similarity (spec.md §8 scenario 3).
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}
	z := Variable{Name: "Z"}
	// dadOfEmbed is a unit vector at cosine similarity exactly 0.98 from
	// fatherOfEmbed (spec.md §8 scenario 3's "≈0.98").
	fatherOfEmbed := Predicate{Symbol: "father_of_embed", Embedding: []float64{1, 0}}
	dadOfEmbed := Predicate{Symbol: "dad_of_embed", Embedding: []float64{0.98, 0.198997487421}}
	grandpaOf := Predicate{Symbol: "grandpa_of"}
	abe := Constant{Symbol: "abe"}
	homer := Constant{Symbol: "homer"}
	bart := Constant{Symbol: "bart"}

	rule := All{Variable: x, Body: All{Variable: y, Body: All{Variable: z,
		Body: Implies{
			Antecedent: NewAnd(fatherOfEmbed.Apply(x, z), fatherOfEmbed.Apply(z, y)),
			Consequent: grandpaOf.Apply(x, y),
		},
	}}}

	p := NewProver(
		WithSimilarityFunc(CosineSimilarity),
		WithMinSimilarityThreshold(0.9),
	)
	require.NoError(t, p.ExtendKnowledge(
		fatherOfEmbed.Apply(abe, homer),
		dadOfEmbed.Apply(abe, homer),
		fatherOfEmbed.Apply(homer, bart),
		dadOfEmbed.Apply(homer, bart),
		rule,
	))

	proofs, err := p.ProveAll(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.Len(t, proofs, 4)

	require.Equal(t, 1.0, proofs[0].Similarity)
	for _, proof := range proofs[1:] {
		require.Less(t, proof.Similarity, 0.99)
		require.InDelta(t, 0.98, proof.Similarity, 1e-6)
	}
	for i := 1; i < len(proofs); i++ {
		require.LessOrEqual(t, proofs[i].Similarity, proofs[i-1].Similarity, "proofs must be non-increasing in similarity")
		if proofs[i].Similarity == proofs[i-1].Similarity {
			require.LessOrEqual(t, proofs[i-1].Depth, proofs[i].Depth, "equally similar proofs must be non-decreasing in depth")
		}
	}
	for _, proof := range proofs {
		require.Equal(t, abe, proof.Substitution["X"])
	}
}

func TestProveAllMaxProofsBounding(t *testing.T) {
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}
	z := Variable{Name: "Z"}
	fatherOfEmbed := Predicate{Symbol: "father_of_embed", Embedding: []float64{1, 0}}
	dadOfEmbed := Predicate{Symbol: "dad_of_embed", Embedding: []float64{0.98, 0.198997487421}}
	grandpaOf := Predicate{Symbol: "grandpa_of"}
	abe := Constant{Symbol: "abe"}
	homer := Constant{Symbol: "homer"}
	bart := Constant{Symbol: "bart"}

	rule := All{Variable: x, Body: All{Variable: y, Body: All{Variable: z,
		Body: Implies{
			Antecedent: NewAnd(fatherOfEmbed.Apply(x, z), fatherOfEmbed.Apply(z, y)),
			Consequent: grandpaOf.Apply(x, y),
		},
	}}}

	p := NewProver(
		WithSimilarityFunc(CosineSimilarity),
		WithMinSimilarityThreshold(0.9),
		WithMaxProofs(2),
	)
	require.NoError(t, p.ExtendKnowledge(
		fatherOfEmbed.Apply(abe, homer),
		dadOfEmbed.Apply(abe, homer),
		fatherOfEmbed.Apply(homer, bart),
		dadOfEmbed.Apply(homer, bart),
		rule,
	))

	proofs, err := p.ProveAll(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.Len(t, proofs, 2)
	require.Equal(t, 1.0, proofs[0].Similarity)
	require.GreaterOrEqual(t, proofs[0].Similarity, proofs[1].Similarity)
}

// TestProveAllRespectsResolventWidthPruning exercises spec.md §8
// scenario 4's shape: a deep chain of two-literal-antecedent rules
// (q_i(X) ∧ p_i(X) → p_{i+1}(X)) that only closes to the empty
// disjunction after passing through several width-2 resolvents. A
// generous max_resolvent_width still finds the depth ≥ 10 proof; a
// max_resolvent_width of 1 prunes every width-2 resolvent and the
// proof is never found.
func TestProveAllRespectsResolventWidthPruning(t *testing.T) {
	const chainLength = 5
	x := Variable{Name: "X"}
	agent := Constant{Symbol: "agent"}

	ps := make([]Predicate, chainLength+1)
	qs := make([]Predicate, chainLength)
	for i := range ps {
		ps[i] = Predicate{Symbol: "p" + string(rune('0'+i))}
	}
	for i := range qs {
		qs[i] = Predicate{Symbol: "q" + string(rune('0'+i))}
	}

	buildKnowledge := func() []Clause {
		knowledge := []Clause{ps[0].Apply(agent)}
		for i := 0; i < chainLength; i++ {
			knowledge = append(knowledge, qs[i].Apply(agent))
			knowledge = append(knowledge, All{Variable: x, Body: Implies{
				Antecedent: NewAnd(qs[i].Apply(x), ps[i].Apply(x)),
				Consequent: ps[i+1].Apply(x),
			}})
		}
		return knowledge
	}

	wide := NewProver(WithMaxProofDepth(20), WithMaxResolventWidth(10))
	require.NoError(t, wide.ExtendKnowledge(buildKnowledge()...))
	proof, ok, err := wide.Prove(ps[chainLength].Apply(agent))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, proof.Similarity)
	require.GreaterOrEqual(t, proof.Depth, 10)

	narrow := NewProver(WithMaxProofDepth(20), WithMaxResolventWidth(1))
	require.NoError(t, narrow.ExtendKnowledge(buildKnowledge()...))
	_, ok, err = narrow.Prove(ps[chainLength].Apply(agent))
	require.NoError(t, err)
	require.False(t, ok, "a width-1 cap must prune every path through a width-2 resolvent")
}

func TestProveAllTerminatesOnMaxResolutionAttempts(t *testing.T) {
	p := Predicate{Symbol: "p"}
	q := Predicate{Symbol: "q"}
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}

	// An infinitely-recursive rule (p depends on itself through q) that
	// would otherwise let the search run unbounded; max_resolution_attempts
	// is the cooperative cutoff spec.md §5 describes.
	rule := All{Variable: x, Body: All{Variable: y, Body: Implies{
		Antecedent: q.Apply(x, y),
		Consequent: p.Apply(x),
	}}}
	rule2 := All{Variable: x, Body: All{Variable: y, Body: Implies{
		Antecedent: p.Apply(y),
		Consequent: q.Apply(x, y),
	}}}

	prover := NewProver(WithMaxProofDepth(1000), WithMaxResolutionAttempts(50))
	require.NoError(t, prover.ExtendKnowledge(rule, rule2))

	_, _, err := prover.ProveAllWithStats(p.Apply(Constant{Symbol: "a"}))
	require.NoError(t, err)
}

func TestExtendKnowledgePreservesPriorProofs(t *testing.T) {
	p, grandpaOf, x, bart := ancestryKnowledge(t)

	before, ok, err := p.Prove(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.True(t, ok)

	mother := Predicate{Symbol: "mother_of"}
	grandmaOf := Predicate{Symbol: "grandma_of"}
	mona := Constant{Symbol: "mona"}
	homer := Constant{Symbol: "homer"}
	y := Variable{Name: "Y"}
	z := Variable{Name: "Z"}

	grandmaRule := All{Variable: x, Body: All{Variable: y, Body: All{Variable: z,
		Body: Implies{
			Antecedent: NewAnd(mother.Apply(x, z), Predicate{Symbol: "parent_of"}.Apply(z, y)),
			Consequent: grandmaOf.Apply(x, y),
		},
	}}}
	require.NoError(t, p.ExtendKnowledge(mother.Apply(mona, homer), grandmaRule))

	after, ok, err := p.Prove(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, before.Substitution["X"], after.Substitution["X"])

	grandmaProof, ok, err := p.Prove(grandmaOf.Apply(x, bart))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, mona, grandmaProof.Substitution["X"])
}

func TestProofStringMatchesContract(t *testing.T) {
	p, grandpaOf, x, bart := ancestryKnowledge(t)
	proof, ok, err := p.Prove(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.True(t, ok)

	s := proof.String()
	require.Contains(t, s, "Goal: [¬grandpa_of(X,bart)]")
	require.Contains(t, s, "Subsitutions: {X -> abe}")
	require.Contains(t, s, "Similarity: 1")
	require.Contains(t, s, "Depth: 3")
	require.Contains(t, s, "Steps:")
	require.Contains(t, s, "---")
}

func TestResetClearsKnowledgeAndCache(t *testing.T) {
	p, grandpaOf, x, bart := ancestryKnowledge(t)
	_, ok, err := p.Prove(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.True(t, ok)

	p.Reset()
	_, ok, err = p.Prove(grandpaOf.Apply(x, bart))
	require.NoError(t, err)
	require.False(t, ok, "resetting clears the knowledge base")
}
