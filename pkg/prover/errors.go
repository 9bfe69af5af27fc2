package prover

import "github.com/pkg/errors"

// The prover distinguishes two kinds of negative result (spec.md §7).
//
// Ordinary, expected negative results are returned as plain zero
// values with a nil error: a failed unification (unifyAtoms returning
// ok=false), an unproductive resolution step, or ProveAll finding no
// proof at all. None of these are errors; they are simply what a
// search sometimes concludes.
//
// Fatal, unexpected conditions are returned as a non-nil error built
// with github.com/pkg/errors so callers keep a stack trace: malformed
// input that breaks a normalization stage's invariants (ToCNF's
// stage-by-stage wrapping), and violations of the prover's own
// internal invariants (this file's errInvariantViolation).
var errInvariantViolation = errors.New("prover: invariant violation")

// newInvariantViolation builds an error reporting that some invariant
// the search relies on did not hold. It is raised when the goal given
// to Prove, ProveAll or ProveAllWithStats is not a single Atom.
func newInvariantViolation(message string) error {
	return errors.Wrap(errInvariantViolation, message)
}

// IsInvariantViolation reports whether err (or something it wraps) is
// an internal invariant violation raised by this package.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, errInvariantViolation)
}
