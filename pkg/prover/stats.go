package prover

// ProofStats accumulates counters over one search (spec.md §4.5 /
// §6's prove_all_with_stats). All of the fields only ever grow during
// a search; a zero-value ProofStats reports an idle search.
type ProofStats struct {
	UnificationAttempts   int
	UnificationSuccesses  int
	ResolutionAttempts    int
	ResolutionSuccesses   int
	SimilarityComparisons int
	SimilarityCacheHits   int
	ResolventChecks       int
	ResolventCacheHits    int
	MaxResolventWidthSeen int
	MaxDepthSeen          int
	ProofsDiscarded       int
	ProofsFound           int
}

func (s *ProofStats) noteDepth(depth int) {
	if depth > s.MaxDepthSeen {
		s.MaxDepthSeen = depth
	}
}

func (s *ProofStats) noteResolventWidth(width int) {
	if width > s.MaxResolventWidthSeen {
		s.MaxResolventWidthSeen = width
	}
}
