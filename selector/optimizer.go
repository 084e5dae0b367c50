// Package selector defines the multi-objective optimizer abstraction (spec
// §4.6): the single pluggable place where a candidate motion's scoring
// properties are combined into a scalar and the best candidate is chosen.
package selector

// Candidate is the information the optimizer needs about one candidate
// motion: which PTG it belongs to (the NOP candidate carries the continued
// command's PTG index and has IsNOP set), the chosen direction/speed, and
// its scoring property bag (spec §3 CandidateMovement,
// §4.5). The core never interprets Props beyond the failure sentinel on
// Speed; combining them is entirely the optimizer's business.
type Candidate struct {
	PTGIndex int
	Alpha    float64
	Speed    float64
	Props    map[string]float64
	IsNOP    bool
}

// Viable reports whether this candidate may be selected at all: the core
// unconditionally filters out non-positive speed (spec §4.6), which is also
// the failure sentinel used for invalid/out-of-domain/non-bijective/NOP
// candidates (spec §4.5).
func (c Candidate) Viable() bool {
	return c.Speed > 0
}

// Optimizer is the MultiObjectiveOptimizer capability (spec §6). Select
// returns the index of the best candidate (or -1 if none is viable) plus a
// per-candidate evaluation vector to be stored in the log record.
type Optimizer interface {
	Name() string
	Select(candidates []Candidate) (best int, evals []map[string]float64)
}
