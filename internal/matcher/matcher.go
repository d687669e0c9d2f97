package matcher

import (
	"context"

	"go.uber.org/zap"

	"faqbot/internal/domain"
	"faqbot/internal/encoder"
	"faqbot/internal/index"
)

// Config holds the decision thresholds. All three are inclusive lower
// bounds on the cosine scale [-1, 1].
type Config struct {
	AnswerThreshold  float64
	MarginThreshold  float64
	ClarifyThreshold float64
	TopK             int
}

// Matcher turns one user query into one MatchDecision. It holds no mutable
// state across calls; session carry-over lives in the session store.
type Matcher struct {
	enc domain.Encoder
	idx *index.Index
	cfg Config
	log *zap.Logger
}

// New creates a Matcher over the given encoder and index.
func New(enc domain.Encoder, idx *index.Index, cfg Config, log *zap.Logger) *Matcher {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{enc: enc, idx: idx, cfg: cfg, log: log}
}

// Match normalizes and encodes the query, ranks index candidates and applies
// the threshold policy. Encoding failures and context expiry both resolve to
// NoMatch; the caller always gets a decision.
func (m *Matcher) Match(ctx context.Context, rawText string) domain.MatchDecision {
	type result struct {
		decision domain.MatchDecision
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{decision: m.decide(rawText)}
	}()
	select {
	case <-ctx.Done():
		m.log.Warn("match timed out", zap.Error(ctx.Err()))
		return domain.NoMatch()
	case r := <-ch:
		return r.decision
	}
}

func (m *Matcher) decide(rawText string) domain.MatchDecision {
	normalized := encoder.Normalize(rawText)
	vec, err := m.enc.Encode(normalized)
	if err != nil {
		m.log.Debug("query encoding failed", zap.String("query", normalized), zap.Error(err))
		return domain.NoMatch()
	}
	candidates := m.idx.Query(vec, m.cfg.TopK)
	if len(candidates) == 0 {
		return domain.NoMatch()
	}
	top := candidates[0]
	margin := top.Score + 1 // larger than any possible margin
	if len(candidates) > 1 {
		margin = top.Score - candidates[1].Score
	}
	switch {
	case top.Score >= m.cfg.AnswerThreshold && margin >= m.cfg.MarginThreshold:
		m.log.Debug("answered", zap.String("entry", top.EntryID), zap.Float64("score", top.Score))
		return domain.Answered(top)
	case top.Score >= m.cfg.ClarifyThreshold:
		m.log.Debug("clarification needed", zap.Int("candidates", len(candidates)), zap.Float64("top_score", top.Score))
		return domain.Clarify(candidates)
	default:
		m.log.Debug("no match", zap.Float64("top_score", top.Score))
		return domain.NoMatch()
	}
}
