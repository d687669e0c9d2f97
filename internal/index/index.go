package index

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"faqbot/internal/domain"
	"faqbot/internal/encoder"
)

// BuildError reports a failed rebuild. The previous index is retained
// unchanged whenever a rebuild fails.
type BuildError struct {
	Question string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("index build: entry %q: %v", e.Question, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Entry is what Rebuild and Add consume: one FAQ pair before encoding.
type Entry struct {
	Question string
	Answer   string
	Tags     []string
}

// snapshot is an immutable generation of the index. Query walks a snapshot
// without holding the write lock, and Rebuild swaps in a fresh one, so
// readers never observe a half-built index.
type snapshot struct {
	entries   []domain.FaqEntry
	dimension int
}

// Index holds encoded FAQ entries and answers nearest-neighbor lookups by
// exact cosine scan. One Index serves one business profile.
type Index struct {
	enc domain.Encoder

	mu   sync.RWMutex
	snap *snapshot
}

// New creates an empty index bound to the given encoder.
func New(enc domain.Encoder) *Index {
	return &Index{enc: enc, snap: &snapshot{}}
}

// Rebuild normalizes and encodes every entry, then atomically replaces the
// prior contents. On any encoding failure the prior index is kept and a
// BuildError is returned.
func (x *Index) Rebuild(entries []Entry) error {
	next := &snapshot{entries: make([]domain.FaqEntry, 0, len(entries))}
	for _, in := range entries {
		q := encoder.Normalize(in.Question)
		vec, err := x.enc.Encode(q)
		if err != nil {
			return &BuildError{Question: in.Question, Err: err}
		}
		vec = unit(vec)
		if next.dimension == 0 {
			next.dimension = len(vec)
		} else if len(vec) != next.dimension {
			return &BuildError{Question: in.Question, Err: fmt.Errorf("dimension %d, want %d", len(vec), next.dimension)}
		}
		next.entries = append(next.entries, domain.FaqEntry{
			ID:        uuid.NewString(),
			Question:  in.Question,
			Answer:    in.Answer,
			Tags:      in.Tags,
			Embedding: vec,
		})
	}
	x.mu.Lock()
	x.snap = next
	x.mu.Unlock()
	return nil
}

// Add encodes and appends a single entry without a full rebuild.
func (x *Index) Add(in Entry) error {
	vec, err := x.enc.Encode(encoder.Normalize(in.Question))
	if err != nil {
		return &BuildError{Question: in.Question, Err: err}
	}
	vec = unit(vec)
	x.mu.Lock()
	defer x.mu.Unlock()
	cur := x.snap
	if cur.dimension != 0 && len(vec) != cur.dimension {
		return &BuildError{Question: in.Question, Err: fmt.Errorf("dimension %d, want %d", len(vec), cur.dimension)}
	}
	next := &snapshot{dimension: cur.dimension, entries: make([]domain.FaqEntry, len(cur.entries), len(cur.entries)+1)}
	copy(next.entries, cur.entries)
	if next.dimension == 0 {
		next.dimension = len(vec)
	}
	next.entries = append(next.entries, domain.FaqEntry{
		ID:        uuid.NewString(),
		Question:  in.Question,
		Answer:    in.Answer,
		Tags:      in.Tags,
		Embedding: vec,
	})
	x.snap = next
	return nil
}

// Remove drops the entry with the given id. Removing an unknown id is a
// no-op.
func (x *Index) Remove(id string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	cur := x.snap
	next := &snapshot{dimension: cur.dimension, entries: make([]domain.FaqEntry, 0, len(cur.entries))}
	for _, e := range cur.entries {
		if e.ID == id {
			continue
		}
		next.entries = append(next.entries, e)
	}
	x.snap = next
}

// Query returns the k nearest entries by cosine similarity, best first.
// Ties go to the earlier-inserted entry. An empty index returns an empty
// result, never an error.
func (x *Index) Query(embedding []float64, k int) []domain.Candidate {
	x.mu.RLock()
	snap := x.snap
	x.mu.RUnlock()

	if k <= 0 || len(snap.entries) == 0 {
		return nil
	}
	q := unit(embedding)
	type scored struct {
		pos   int
		score float64
	}
	all := make([]scored, len(snap.entries))
	for i, e := range snap.entries {
		all[i] = scored{pos: i, score: dot(e.Embedding, q)}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].pos < all[j].pos
	})
	if k > len(all) {
		k = len(all)
	}
	out := make([]domain.Candidate, 0, k)
	for _, s := range all[:k] {
		e := snap.entries[s.pos]
		out = append(out, domain.Candidate{EntryID: e.ID, Question: e.Question, Answer: e.Answer, Score: s.score})
	}
	return out
}

// Entries returns a copy of the current entries in insertion order.
func (x *Index) Entries() []domain.FaqEntry {
	x.mu.RLock()
	snap := x.snap
	x.mu.RUnlock()
	out := make([]domain.FaqEntry, len(snap.entries))
	copy(out, snap.entries)
	return out
}

// Len returns the number of indexed entries.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.snap.entries)
}

// Dimension returns the embedding dimensionality of the current index.
func (x *Index) Dimension() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.snap.dimension
}

// unit L2-normalizes a vector so dot products are cosine similarities.
// Zero vectors are returned unchanged.
func unit(v []float64) []float64 {
	norm := 0.0
	for _, f := range v {
		norm += f * f
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = f / norm
	}
	return out
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
