package prover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noCache() *similarityCache {
	return newSimilarityCache(MaxSimilarity(CosineSimilarity, SymbolCompare), false)
}

func TestUnifyAtoms(t *testing.T) {
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}
	f := Function{Symbol: "f"}

	t.Run("differing arity fails", func(t *testing.T) {
		a := atomOf("p", x)
		b := atomOf("p", x, y)
		_, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("a variable binds to a constant", func(t *testing.T) {
		a := atomOf("p", x)
		b := atomOf("p", Constant{Symbol: "tom"})
		out, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 1.0, out.Similarity)
		bound, ok := out.Substitution[LabeledVariable{Label: sourceLabel, Name: "X"}]
		require.True(t, ok)
		require.Equal(t, Constant{Symbol: "tom"}, bound.Term)
	})

	t.Run("two distinct constants fail to unify", func(t *testing.T) {
		a := atomOf("p", Constant{Symbol: "tom"})
		b := atomOf("p", Constant{Symbol: "jerry"})
		_, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("two variables from opposite sides bind to each other", func(t *testing.T) {
		a := atomOf("p", x)
		b := atomOf("p", y)
		out, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, out.Substitution, 1)
	})

	t.Run("matching bound functions unify argument-wise", func(t *testing.T) {
		a := atomOf("p", f.Apply(x))
		b := atomOf("p", f.Apply(Constant{Symbol: "tom"}))
		out, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.True(t, ok)
		bound, ok := out.Substitution[LabeledVariable{Label: sourceLabel, Name: "X"}]
		require.True(t, ok)
		require.Equal(t, Constant{Symbol: "tom"}, bound.Term)
	})

	t.Run("differing function symbols fail", func(t *testing.T) {
		g := Function{Symbol: "g"}
		a := atomOf("p", f.Apply(x))
		b := atomOf("p", g.Apply(Constant{Symbol: "tom"}))
		_, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("occurs-check traps a variable inside its own binding", func(t *testing.T) {
		// p(f(X), X) vs p(Y, f(Y)): unifying the first args binds Y to
		// f(X); unifying the second then tries to bind X to f(Y), which
		// chases back through Y to f(X) and would make X occur inside
		// its own value.
		a := atomOf("p", f.Apply(x), x)
		b := atomOf("p", y, f.Apply(y))
		_, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("direct self-reference is also trapped", func(t *testing.T) {
		a := atomOf("p", x)
		b := atomOf("p", f.Apply(x))
		_, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("predicate similarity below threshold fails", func(t *testing.T) {
		a := Atom{Predicate: Predicate{Symbol: "father_of", Embedding: []float64{1, 0}}, Terms: []Term{x}}
		b := Atom{Predicate: Predicate{Symbol: "unrelated", Embedding: []float64{0, 1}}, Terms: []Term{y}}
		_, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("predicate similarity at or above threshold degrades gracefully", func(t *testing.T) {
		a := Atom{Predicate: Predicate{Symbol: "father_of", Embedding: []float64{1, 0.01}}, Terms: []Term{x}}
		b := Atom{Predicate: Predicate{Symbol: "dad_of", Embedding: []float64{1, 0}}, Terms: []Term{y}}
		out, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
		require.NoError(t, err)
		require.True(t, ok)
		require.Less(t, out.Similarity, 1.0)
		require.Greater(t, out.Similarity, 0.5)
	})
}

func TestUnifyCorrectness(t *testing.T) {
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}
	f := Function{Symbol: "f"}

	// Property from spec.md §8: if unify(A, B) returns (σ_s, σ_t, s),
	// applying σ_s to A and σ_t to B yields structurally equal atoms.
	a := atomOf("p", x, f.Apply(x))
	b := atomOf("p", Constant{Symbol: "tom"}, y)
	out, ok, err := unifyAtoms(a, b, newSubstitution(), noCache(), 0.5)
	require.NoError(t, err)
	require.True(t, ok)

	appliedA := materializeAtom(a, sourceLabel, out.Substitution)
	appliedB := materializeAtom(b, targetLabel, out.Substitution)
	require.Equal(t, appliedA, appliedB)
}
