package prover

import (
	"github.com/hashicorp/go-hclog"
)

// Config holds every tunable of a Prover. Construct one only through
// NewProver and ProverOptions; the zero Config is not meaningful on
// its own.
type Config struct {
	MaxProofDepth               int
	MaxResolventWidth           int
	MaxResolutionAttempts       int
	SimilarityFunc              SimilarityFunc
	MinSimilarityThreshold      float64
	CacheSimilarity             bool
	SkipSeenResolvents          bool
	FindHighestSimilarityProofs bool
	MaxProofs                   int
	Logger                      hclog.Logger
}

func defaultConfig() Config {
	return Config{
		MaxProofDepth:               10,
		MaxResolventWidth:           0,
		MaxResolutionAttempts:       0,
		SimilarityFunc:              CosineSimilarity,
		MinSimilarityThreshold:      0.5,
		CacheSimilarity:             true,
		SkipSeenResolvents:          false,
		FindHighestSimilarityProofs: true,
		MaxProofs:                   0,
		Logger:                      hclog.NewNullLogger(),
	}
}

// ProverOption configures a Prover at construction time.
type ProverOption func(*Config)

// WithMaxProofDepth bounds how many resolution steps a single proof
// chain may take before the branch is abandoned. Default 10.
func WithMaxProofDepth(n int) ProverOption {
	return func(c *Config) { c.MaxProofDepth = n }
}

// WithMaxResolventWidth bounds how many literals a resolvent may carry
// before the branch is abandoned. 0 (the default) means unbounded.
func WithMaxResolventWidth(n int) ProverOption {
	return func(c *Config) { c.MaxResolventWidth = n }
}

// WithMaxResolutionAttempts bounds the total number of resolution
// steps attempted across an entire ProveAll search. 0 (the default)
// means unbounded.
func WithMaxResolutionAttempts(n int) ProverOption {
	return func(c *Config) { c.MaxResolutionAttempts = n }
}

// WithSimilarityFunc sets the function used to compare predicate and
// constant symbols. Default is CosineSimilarity falling back to
// SymbolCompare wherever an embedding is missing.
func WithSimilarityFunc(f SimilarityFunc) ProverOption {
	return func(c *Config) { c.SimilarityFunc = f }
}

// WithMinSimilarityThreshold sets the floor a proof's running
// similarity must stay above. Default 0.5.
func WithMinSimilarityThreshold(threshold float64) ProverOption {
	return func(c *Config) { c.MinSimilarityThreshold = threshold }
}

// WithCacheSimilarity toggles memoization of similarity comparisons.
// Default true.
func WithCacheSimilarity(enabled bool) ProverOption {
	return func(c *Config) { c.CacheSimilarity = enabled }
}

// WithSkipSeenResolvents toggles structural deduplication of
// resolvents within a search. Default false.
func WithSkipSeenResolvents(enabled bool) ProverOption {
	return func(c *Config) { c.SkipSeenResolvents = enabled }
}

// WithFindHighestSimilarityProofs toggles whether the search keeps
// tightening its similarity floor once MaxProofs proofs are already in
// hand, trading exhaustiveness for always returning the best proofs
// found. Default true.
func WithFindHighestSimilarityProofs(enabled bool) ProverOption {
	return func(c *Config) { c.FindHighestSimilarityProofs = enabled }
}

// WithMaxProofs bounds how many proofs ProveAll collects. 0 (the
// default) means unbounded.
func WithMaxProofs(n int) ProverOption {
	return func(c *Config) { c.MaxProofs = n }
}

// WithLogger attaches a logger observing normalization and search
// milestones. Default is a no-op logger.
func WithLogger(logger hclog.Logger) ProverOption {
	return func(c *Config) { c.Logger = logger }
}

// Prover holds a knowledge base of clauses and proves goals against
// it by input resolution (spec.md §4.5): the search always resolves
// the current disjunction's designated head literal against the
// knowledge base, never two arbitrary disjunctions against each other.
type Prover struct {
	config    Config
	knowledge []CNFDisjunction
	simCache  *similarityCache
	logger    hclog.Logger
}

// NewProver builds a Prover with an empty knowledge base.
func NewProver(opts ...ProverOption) *Prover {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Prover{
		config:   cfg,
		simCache: newSimilarityCache(cfg.SimilarityFunc, cfg.CacheSimilarity),
		logger:   cfg.Logger,
	}
}

// ExtendKnowledge normalizes each clause to CNF and adds the resulting
// disjunctions to the knowledge base.
func (p *Prover) ExtendKnowledge(clauses ...Clause) error {
	for _, c := range clauses {
		disjunctions, err := ToCNF(c)
		if err != nil {
			return err
		}
		p.logger.Debug("extended knowledge base", "clause", c.String(), "disjunctions", len(disjunctions))
		p.knowledge = append(p.knowledge, disjunctions...)
	}
	return nil
}

// Reset discards the knowledge base and the similarity cache,
// returning the Prover to the state NewProver would produce (with the
// same configuration).
func (p *Prover) Reset() {
	p.knowledge = nil
	p.simCache.Purge()
}

// PurgeSimilarityCache empties the similarity memoization cache
// without discarding the knowledge base.
func (p *Prover) PurgeSimilarityCache() {
	p.simCache.Purge()
}

// Prove searches for the single best proof of goal (highest running
// similarity, then shallowest), reporting false if none was found.
func (p *Prover) Prove(goal Clause) (*Proof, bool, error) {
	proofs, _, err := p.proveAllWithLimit(goal, 1)
	if err != nil {
		return nil, false, err
	}
	if len(proofs) == 0 {
		return nil, false, nil
	}
	return proofs[0], true, nil
}

// ProveAll searches for every proof of goal the configured budgets
// allow, best first.
func (p *Prover) ProveAll(goal Clause) ([]*Proof, error) {
	proofs, _, err := p.proveAllWithLimit(goal, p.config.MaxProofs)
	return proofs, err
}

// ProveAllWithStats behaves like ProveAll but also returns the
// search's accumulated ProofStats.
func (p *Prover) ProveAllWithStats(goal Clause) ([]*Proof, ProofStats, error) {
	return p.proveAllWithLimit(goal, p.config.MaxProofs)
}

func (p *Prover) proveAllWithLimit(goal Clause, maxProofs int) ([]*Proof, ProofStats, error) {
	goalAtom, err := goalAsAtom(goal)
	if err != nil {
		return nil, ProofStats{}, err
	}

	negatedGoalDisjunctions, err := ToCNF(Not{Body: goal})
	if err != nil {
		return nil, ProofStats{}, err
	}

	knowledge := make([]CNFDisjunction, 0, len(p.knowledge)+len(negatedGoalDisjunctions))
	knowledge = append(knowledge, p.knowledge...)
	knowledge = append(knowledge, negatedGoalDisjunctions...)

	ctx := newProofContext(
		p.config.MinSimilarityThreshold,
		maxProofs,
		p.config.FindHighestSimilarityProofs,
		p.config.MaxResolutionAttempts,
	)

	p.logger.Trace("search starting", "goal", goal.String(), "knowledge_size", len(knowledge))
	for _, start := range negatedGoalDisjunctions {
		if ctx.done() {
			break
		}
		if err := p.search(goalAtom, start, start, knowledge, ctx, 1, nil, 1.0); err != nil {
			return nil, ctx.stats, err
		}
	}
	p.logger.Trace("search finished", "proofs_found", len(ctx.proofs), "attempts", ctx.attempts)

	return ctx.proofs, ctx.stats, nil
}

func goalAsAtom(goal Clause) (Atom, error) {
	atom, ok := goal.(Atom)
	if !ok {
		return Atom{}, newInvariantViolation("goal must be a single atom")
	}
	return atom, nil
}

// search explores every resolution of current against knowledge,
// recording a Proof whenever a resolvent empties out (a contradiction
// with the negated goal) and recursing otherwise, bounded by the
// configured depth, width, attempt, and similarity budgets.
func (p *Prover) search(
	goal Atom,
	goalDisjunction CNFDisjunction,
	current CNFDisjunction,
	knowledge []CNFDisjunction,
	ctx *proofContext,
	depth int,
	parent *ProofStep,
	runningSimilarity float64,
) error {
	ctx.stats.noteDepth(depth)

	if len(current.Literals) == 0 {
		ctx.addProof(buildProof(goal, goalDisjunction, parent, runningSimilarity, depth-1, ctx.stats))
		return nil
	}
	if ctx.done() {
		return nil
	}
	if depth > p.config.MaxProofDepth {
		ctx.stats.ProofsDiscarded++
		return nil
	}
	if p.config.SkipSeenResolvents && ctx.markSeen(current) {
		return nil
	}

	threshold := ctx.currentThreshold()
	for _, target := range knowledge {
		if !ctx.recordAttempt() {
			return nil
		}
		results, err := resolveStep(current, target, p.simCache, threshold)
		if err != nil {
			return err
		}
		ctx.stats.UnificationAttempts += len(target.Literals)
		for _, r := range results {
			ctx.stats.UnificationSuccesses++
			ctx.stats.SimilarityComparisons += r.Comparisons
			ctx.stats.SimilarityCacheHits += r.CacheHits

			if p.config.MaxResolventWidth > 0 && len(r.Resolvent.Literals) > p.config.MaxResolventWidth {
				ctx.stats.ProofsDiscarded++
				continue
			}
			ctx.stats.noteResolventWidth(len(r.Resolvent.Literals))

			nextSimilarity := minFloat(runningSimilarity, r.Similarity)
			if nextSimilarity < threshold {
				continue
			}

			ctx.stats.ResolutionSuccesses++
			step := &ProofStep{
				Source:            current,
				Target:            target,
				SourcePivot:       r.SourcePivot,
				TargetPivot:       r.TargetPivot,
				Substitution:      r.Substitution,
				Resolvent:         r.Resolvent,
				Similarity:        r.Similarity,
				RunningSimilarity: nextSimilarity,
				Depth:             depth,
				Parent:            parent,
			}
			if err := p.search(goal, goalDisjunction, r.Resolvent, knowledge, ctx, depth+1, step, nextSimilarity); err != nil {
				return err
			}
			if ctx.done() {
				return nil
			}
		}
		if ctx.done() {
			return nil
		}
	}
	return nil
}

func buildProof(goal Atom, goalDisjunction CNFDisjunction, leaf *ProofStep, similarity float64, depth int, stats ProofStats) *Proof {
	var steps []*ProofStep
	for s := leaf; s != nil; s = s.Parent {
		steps = append(steps, s)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return &Proof{
		Goal:            goal,
		GoalDisjunction: goalDisjunction,
		Similarity:      similarity,
		Steps:           steps,
		Depth:           depth,
		Substitution:    resolveGoalSubstitution(goal, steps),
		Stats:           stats,
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
