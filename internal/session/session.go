package session

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"faqbot/internal/domain"
)

// Store persists conversation sessions between turns. A missing or expired
// session reads back as nil without error; the engine starts a fresh one.
type Store interface {
	Get(ctx context.Context, conversationID string) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, conversationID string) error
}

// New creates a fresh session for a conversation.
func New(conversationID string) *domain.Session {
	return &domain.Session{ConversationID: conversationID, LastActivity: time.Now()}
}

// RecordTurn appends a decision to the session. A ClarificationNeeded
// decision arms the pending-clarification state for the next turn.
func RecordTurn(s *domain.Session, d domain.MatchDecision) {
	s.TurnCount++
	s.LastDecision = d
	s.LastActivity = time.Now()
	if d.Kind == domain.DecisionClarify {
		s.Pending = d.Candidates
		s.PendingTurns = 0
	} else {
		s.Pending = nil
		s.PendingTurns = 0
	}
}

// ResolveClarification consumes a follow-up that picks one of the pending
// candidates, either by its 1-based list position or by word overlap with a
// candidate question. On success the pending state is cleared and the chosen
// candidate is returned.
func ResolveClarification(s *domain.Session, choice string) (domain.Candidate, bool) {
	if len(s.Pending) == 0 {
		return domain.Candidate{}, false
	}
	trimmed := strings.TrimSpace(choice)
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= len(s.Pending) {
		picked := s.Pending[n-1]
		s.Pending = nil
		s.PendingTurns = 0
		return picked, true
	}
	choiceTokens := tokenSet(trimmed)
	if len(choiceTokens) == 0 {
		return domain.Candidate{}, false
	}
	bestIdx := -1
	bestOverlap := 0
	for i, c := range s.Pending {
		overlap := 0
		for tok := range tokenSet(c.Question) {
			if _, ok := choiceTokens[tok]; ok {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return domain.Candidate{}, false
	}
	picked := s.Pending[bestIdx]
	s.Pending = nil
	s.PendingTurns = 0
	return picked, true
}

// GiveUpClarification clears pending state after too many unresolved
// follow-ups so a conversation cannot get stuck waiting for a choice.
func GiveUpClarification(s *domain.Session) {
	s.Pending = nil
	s.PendingTurns = 0
}

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

func tokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}
