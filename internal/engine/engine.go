package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"faqbot/internal/domain"
	"faqbot/internal/encoder"
	"faqbot/internal/index"
	"faqbot/internal/matcher"
	"faqbot/internal/session"
	"faqbot/internal/summary"
)

// Config bundles the engine's tunables. Zero values fall back to safe
// defaults in New.
type Config struct {
	Matcher       matcher.Config
	Timeout       time.Duration
	MaxFollowUps  int
	Fallback      string
	ClarifyPrompt string
}

// Engine owns the FAQ index and decision pipeline for one business profile
// and serves chat turns against it.
type Engine struct {
	enc      domain.Encoder
	idx      *index.Index
	match    *matcher.Matcher
	sessions session.Store
	cfg      Config
	log      *zap.Logger

	mu      sync.RWMutex
	profile *domain.BusinessProfile
	blurb   string
}

// New creates an engine over the given encoder and session store.
func New(enc domain.Encoder, sessions session.Store, cfg Config, log *zap.Logger) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxFollowUps <= 0 {
		cfg.MaxFollowUps = 1
	}
	if cfg.Fallback == "" {
		cfg.Fallback = "Sorry, I don't have an answer for that."
	}
	if cfg.ClarifyPrompt == "" {
		cfg.ClarifyPrompt = "Did you mean one of these?"
	}
	if log == nil {
		log = zap.NewNop()
	}
	idx := index.New(enc)
	return &Engine{
		enc:      enc,
		idx:      idx,
		match:    matcher.New(enc, idx, cfg.Matcher, log),
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

// Train fits the encoder on the profile's questions and rebuilds the index
// atomically. On failure the previous index, encoder fit and profile are all
// retained, so the bot keeps serving the last-good FAQ set.
func (e *Engine) Train(p *domain.BusinessProfile) error {
	entries := make([]index.Entry, 0, len(p.Faqs))
	corpus := make([]string, 0, len(p.Faqs))
	for _, f := range p.Faqs {
		q := encoder.Normalize(f.Question)
		if q == "" {
			return &index.BuildError{Question: f.Question, Err: &encoder.EncodingError{Reason: "empty input after normalization"}}
		}
		corpus = append(corpus, q)
		entries = append(entries, index.Entry{Question: f.Question, Answer: f.Answer, Tags: f.Tags})
	}
	if len(entries) == 0 {
		return &index.BuildError{Question: "", Err: fmt.Errorf("profile has no FAQ entries")}
	}
	if err := e.enc.Fit(corpus); err != nil {
		return &index.BuildError{Question: "", Err: err}
	}
	if err := e.idx.Rebuild(entries); err != nil {
		return err
	}
	trained := &domain.BusinessProfile{Name: p.Name, Description: p.Description, Faqs: e.idx.Entries()}
	e.mu.Lock()
	e.profile = trained
	e.blurb = summary.Describe(p.Description, 2)
	e.mu.Unlock()
	e.log.Info("profile trained",
		zap.String("business", p.Name),
		zap.Int("faqs", e.idx.Len()),
		zap.String("encoder", e.enc.Name()),
		zap.Int("dimension", e.idx.Dimension()))
	return nil
}

// Profile returns the currently trained profile, or nil before training.
func (e *Engine) Profile() *domain.BusinessProfile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.profile
}

// Summary returns the condensed business description for display.
func (e *Engine) Summary() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.blurb
}

// Index exposes the engine's FAQ index for incremental maintenance.
func (e *Engine) Index() *index.Index { return e.idx }

// Chat serves one conversation turn. A pending clarification is resolved
// first; otherwise the query runs through the matcher under the decision
// timeout. Every outcome maps to response text, never to an error string.
func (e *Engine) Chat(ctx context.Context, conversationID, text string) (domain.Reply, error) {
	s, err := e.sessions.Get(ctx, conversationID)
	if err != nil {
		e.log.Warn("session load failed", zap.String("conversation", conversationID), zap.Error(err))
	}
	if s == nil {
		s = session.New(conversationID)
	}

	var reply domain.Reply
	if len(s.Pending) > 0 {
		reply = e.resolveTurn(s, text)
	} else {
		mctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		decision := e.match.Match(mctx, text)
		cancel()
		session.RecordTurn(s, decision)
		reply = e.render(decision)
	}

	if err := e.sessions.Put(ctx, s); err != nil {
		e.log.Warn("session save failed", zap.String("conversation", conversationID), zap.Error(err))
	}
	return reply, nil
}

// resolveTurn consumes a follow-up to a clarification prompt. An unresolved
// follow-up spends the configured budget; once spent, the clarification
// reverts to NoMatch so the conversation cannot get stuck.
func (e *Engine) resolveTurn(s *domain.Session, text string) domain.Reply {
	if picked, ok := session.ResolveClarification(s, text); ok {
		decision := domain.Answered(picked)
		session.RecordTurn(s, decision)
		return e.render(decision)
	}
	s.PendingTurns++
	if s.PendingTurns >= e.cfg.MaxFollowUps {
		session.GiveUpClarification(s)
		decision := domain.NoMatch()
		session.RecordTurn(s, decision)
		return e.render(decision)
	}
	// budget left: re-prompt with the same candidates
	pending := s.Pending
	s.TurnCount++
	s.LastActivity = time.Now()
	return domain.Reply{Text: e.clarifyText(pending), Kind: domain.DecisionClarify, Candidates: pending}
}

func (e *Engine) render(d domain.MatchDecision) domain.Reply {
	switch d.Kind {
	case domain.DecisionAnswered:
		top, _ := d.Top()
		return domain.Reply{Text: top.Answer, Kind: d.Kind, Candidates: d.Candidates}
	case domain.DecisionClarify:
		return domain.Reply{Text: e.clarifyText(d.Candidates), Kind: d.Kind, Candidates: d.Candidates}
	default:
		return domain.Reply{Text: e.cfg.Fallback, Kind: domain.DecisionNoMatch}
	}
}

func (e *Engine) clarifyText(cands []domain.Candidate) string {
	var b strings.Builder
	b.WriteString(e.cfg.ClarifyPrompt)
	for i, c := range cands {
		fmt.Fprintf(&b, "\n%d. %s", i+1, c.Question)
	}
	return b.String()
}
