package prover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardizeVariables(t *testing.T) {
	x := Variable{Name: "X"}

	t.Run("two quantifiers reusing a name get distinct variables", func(t *testing.T) {
		c := NewAnd(
			All{Variable: x, Body: atomOf("p", x)},
			All{Variable: x, Body: atomOf("q", x)},
		)
		out, err := standardizeVariables(c)
		require.NoError(t, err)
		and := out.(And)
		firstVar := and.Args[0].(All).Variable
		secondVar := and.Args[1].(All).Variable
		require.NotEqual(t, firstVar.Name, secondVar.Name)
	})

	t.Run("free variables are renamed once at the outer scope", func(t *testing.T) {
		c := NewAnd(atomOf("p", x), atomOf("q", x))
		out, err := standardizeVariables(c)
		require.NoError(t, err)
		and := out.(And)
		firstTerm := and.Args[0].(Atom).Terms[0].(Variable)
		secondTerm := and.Args[1].(Atom).Terms[0].(Variable)
		require.Equal(t, firstTerm.Name, secondTerm.Name)
	})

	t.Run("generator never reuses or overwrites an existing unique name", func(t *testing.T) {
		gen := newVarNameGenerator()
		require.Equal(t, "X", gen.next("X"))
		require.Equal(t, "X_1", gen.next("X"))
		require.Equal(t, "X_2", gen.next("X"))
	})
}

func TestFindUnboundVarNames(t *testing.T) {
	x := Variable{Name: "X"}
	y := Variable{Name: "Y"}

	t.Run("variable bound by an enclosing quantifier is not free", func(t *testing.T) {
		c := All{Variable: x, Body: atomOf("p", x, y)}
		unbound := findUnboundVarNames(c, map[string]bool{})
		require.False(t, unbound["X"])
		require.True(t, unbound["Y"])
	})
}
