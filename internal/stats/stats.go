// Package stats implements the optional statistics sidecar (spec.md
// §5, §6): per-step elapsed time fed into three aggregations keyed by
// StepID. Absence of a configured Sink costs nothing on the hot path.
package stats

import "time"

// StepID identifies one measured step for aggregation purposes.
type StepID struct {
	File  string
	Index string
	Rule  string
}

// Metrics accumulates elapsed-time samples keyed by K.
type Metrics[K comparable] struct {
	totals map[K]time.Duration
	counts map[K]int
}

func NewMetrics[K comparable]() *Metrics[K] {
	return &Metrics[K]{totals: make(map[K]time.Duration), counts: make(map[K]int)}
}

func (m *Metrics[K]) Add(key K, d time.Duration) {
	m.totals[key] += d
	m.counts[key]++
}

func (m *Metrics[K]) Total(key K) time.Duration { return m.totals[key] }
func (m *Metrics[K]) Count(key K) int            { return m.counts[key] }

// Keys returns every key that has at least one recorded sample, in no
// particular order. Used by reporting code that wants to enumerate
// everything a Sink has accumulated.
func (m *Metrics[K]) Keys() []K {
	keys := make([]K, 0, len(m.counts))
	for k := range m.counts {
		keys = append(keys, k)
	}
	return keys
}

// Mean returns the average duration recorded for key, or zero if
// nothing was ever recorded.
func (m *Metrics[K]) Mean(key K) time.Duration {
	n := m.counts[key]
	if n == 0 {
		return 0
	}
	return m.totals[key] / time.Duration(n)
}

// Sink is the collaborator a Checker reports measurements to when
// statistics collection is enabled (spec.md §6). A File/byRule/Overall
// split mirrors the three aggregations the spec requires.
type Sink struct {
	Overall *Metrics[StepID]
	ByFile  *Metrics[string]
	ByRule  *Metrics[string]
}

func NewSink() *Sink {
	return &Sink{
		Overall: NewMetrics[StepID](),
		ByFile:  NewMetrics[string](),
		ByRule:  NewMetrics[string](),
	}
}

// Record feeds one step's elapsed time into all three aggregations.
func (s *Sink) Record(id StepID, d time.Duration) {
	s.Overall.Add(id, d)
	s.ByFile.Add(id.File, d)
	s.ByRule.Add(id.Rule, d)
}

// Subproof openings (timed when the anchor's context is built, recorded
// under the index of the subproof's closing step) and assume commands
// are attributed to synthetic rule labels: these are a source hint for
// aggregation, not part of the rule-dispatch contract (spec.md's
// supplemented statistics fields).
const (
	AnchorRuleLabel = "anchor*"
	AssumeRuleLabel = "assume*"
)
