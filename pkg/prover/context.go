package prover

import "sort"

// proofContext is the mutable state threaded through one ProveAll
// search: the running statistics, the accumulated proofs, and the
// table of already-visited resolvents. Bundling these into one struct
// (rather than passing three separate maps/slices through the search)
// mirrors the consolidated per-query context used for the same
// purpose in the implementation this prover's search loop is modeled
// on.
type proofContext struct {
	stats       ProofStats
	proofs      []*Proof
	seen        map[string]bool
	attempts    int

	minSimilarity      float64
	maxProofs          int
	findHighest        bool
	maxResolutionTries int
}

func newProofContext(minSimilarity float64, maxProofs int, findHighest bool, maxResolutionTries int) *proofContext {
	return &proofContext{
		seen:               make(map[string]bool),
		minSimilarity:      minSimilarity,
		maxProofs:          maxProofs,
		findHighest:        findHighest,
		maxResolutionTries: maxResolutionTries,
	}
}

// recordAttempt increments the attempt counter and reports whether
// the search may continue (false once the budget in spec.md §4.5's
// max_resolution_attempts is exhausted).
func (ctx *proofContext) recordAttempt() bool {
	ctx.attempts++
	ctx.stats.ResolutionAttempts++
	if ctx.maxResolutionTries > 0 && ctx.attempts > ctx.maxResolutionTries {
		return false
	}
	return true
}

// markSeen reports whether d has already been visited this search and
// records it as seen either way, for the skip_seen_resolvents option.
func (ctx *proofContext) markSeen(d CNFDisjunction) bool {
	key := d.structuralKey()
	ctx.stats.ResolventChecks++
	if ctx.seen[key] {
		ctx.stats.ResolventCacheHits++
		return true
	}
	ctx.seen[key] = true
	return false
}

// currentThreshold returns the similarity floor new resolutions must
// clear. Once find_highest_similarity_proofs is enabled and maxProofs
// proofs have already been found, the floor rises to the worst
// similarity among the proofs currently kept, so the search stops
// wasting effort on branches that cannot improve the result set.
func (ctx *proofContext) currentThreshold() float64 {
	if ctx.findHighest && ctx.maxProofs > 0 && len(ctx.proofs) >= ctx.maxProofs {
		worst := ctx.proofs[len(ctx.proofs)-1].Similarity
		if worst > ctx.minSimilarity {
			return worst
		}
	}
	return ctx.minSimilarity
}

// addProof inserts p into the accumulator, kept sorted by descending
// similarity and, within a similarity tie, ascending depth (spec.md
// §4.5 and §9's tie-breaking resolution: shallower proofs are easier
// to read and are preferred when two proofs are equally similar).
// When maxProofs is set and already met, p is only kept if it beats
// the current worst kept proof.
func (ctx *proofContext) addProof(p *Proof) {
	ctx.stats.ProofsFound++
	ctx.proofs = append(ctx.proofs, p)
	sort.SliceStable(ctx.proofs, func(i, j int) bool {
		if ctx.proofs[i].Similarity != ctx.proofs[j].Similarity {
			return ctx.proofs[i].Similarity > ctx.proofs[j].Similarity
		}
		return ctx.proofs[i].Depth < ctx.proofs[j].Depth
	})
	if ctx.maxProofs > 0 && len(ctx.proofs) > ctx.maxProofs {
		ctx.proofs = ctx.proofs[:ctx.maxProofs]
		ctx.stats.ProofsDiscarded++
	}
}

// done reports whether the search can stop gathering new proofs.
// find_highest_similarity_proofs=false (spec.md §6) asks only for the
// first max_proofs acceptable proofs, not the provably best ones, so
// the search is free to halt the moment that many are in hand rather
// than keep raising the similarity floor and searching for better
// ones.
func (ctx *proofContext) done() bool {
	return !ctx.findHighest && ctx.maxProofs > 0 && len(ctx.proofs) >= ctx.maxProofs
}
