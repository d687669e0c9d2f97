package domain

import "time"

// FaqEntry is one question/answer pair owned by the FAQ index.
// The embedding is computed when the entry is indexed and stays valid
// until the question text changes.
type FaqEntry struct {
	ID        string
	Question  string
	Answer    string
	Tags      []string
	Embedding []float64
}

// BusinessProfile holds everything a chatbot instance is trained on.
type BusinessProfile struct {
	Name        string
	Description string
	Faqs        []FaqEntry
}

// Candidate is a ranked index hit.
type Candidate struct {
	EntryID  string  `json:"entry_id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// DecisionKind discriminates the variants of a MatchDecision.
type DecisionKind string

const (
	DecisionAnswered DecisionKind = "answered"
	DecisionClarify  DecisionKind = "clarify"
	DecisionNoMatch  DecisionKind = "no_match"
)

// MatchDecision is the immutable outcome of matching one query.
// Candidates is populated for DecisionClarify (ordered best-first)
// and holds the single winning candidate for DecisionAnswered.
type MatchDecision struct {
	Kind       DecisionKind `json:"kind"`
	Candidates []Candidate  `json:"candidates,omitempty"`
}

// Answered builds an Answered decision for the winning candidate.
func Answered(c Candidate) MatchDecision {
	return MatchDecision{Kind: DecisionAnswered, Candidates: []Candidate{c}}
}

// Clarify builds a ClarificationNeeded decision over the given candidates.
func Clarify(cands []Candidate) MatchDecision {
	return MatchDecision{Kind: DecisionClarify, Candidates: cands}
}

// NoMatch builds the empty NoMatch decision.
func NoMatch() MatchDecision {
	return MatchDecision{Kind: DecisionNoMatch}
}

// Top returns the best candidate of the decision, if any.
func (d MatchDecision) Top() (Candidate, bool) {
	if len(d.Candidates) == 0 {
		return Candidate{}, false
	}
	return d.Candidates[0], true
}

// Reply is what the engine hands back to the chat surface for one turn.
type Reply struct {
	Text       string
	Kind       DecisionKind
	Candidates []Candidate
}

// Session tracks per-conversation state across turns.
type Session struct {
	ConversationID string        `json:"conversation_id"`
	LastDecision   MatchDecision `json:"last_decision"`
	Pending        []Candidate   `json:"pending,omitempty"`
	PendingTurns   int           `json:"pending_turns"`
	TurnCount      int           `json:"turn_count"`
	LastActivity   time.Time     `json:"last_activity"`
}

// Encoder converts normalized text into a fixed-dimension vector.
// Implementations must be deterministic for identical input and safe for
// concurrent use. Fit prepares implementations that derive their vector
// space from the question corpus; remote encoders may treat it as a no-op.
type Encoder interface {
	Name() string
	Fit(corpus []string) error
	Dimension() int
	Encode(text string) ([]float64, error)
}
