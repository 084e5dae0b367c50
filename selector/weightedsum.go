package selector

// WeightedSum is the "typical strategy" the spec names (§4.6): a weighted
// sum of the candidate's scoring properties, gated by hard constraints on a
// minimum collision-free distance, minimum clearance, minimum hysteresis, and
// a maximum ETA — any candidate failing a constraint is treated as unviable
// even if its raw speed is positive.
type WeightedSum struct {
	Weights        map[string]float64
	MinColfree     float64
	MinClearance   float64
	MinHysteresis  float64
	MaxETA         float64 // <=0 disables the ETA bound
}

// NewWeightedSum returns a WeightedSum optimizer. A nil/empty weights map
// falls back to a sensible default favoring collision-free distance and
// progress toward the target.
func NewWeightedSum(weights map[string]float64, minColfree, minClearance, minHysteresis, maxETA float64) *WeightedSum {
	if len(weights) == 0 {
		weights = map[string]float64{
			"colision_free_distance": 1.0,
			"dist_eucl_final":        -0.5,
			"clearance":              0.3,
			"hysteresis":             0.2,
			"ptg_priority":           0.4,
			"eta":                    -0.1,
		}
	}
	return &WeightedSum{
		Weights:       weights,
		MinColfree:    minColfree,
		MinClearance:  minClearance,
		MinHysteresis: minHysteresis,
		MaxETA:        maxETA,
	}
}

func (w *WeightedSum) Name() string { return "weighted_sum" }

func (w *WeightedSum) Select(candidates []Candidate) (int, []map[string]float64) {
	evals := make([]map[string]float64, len(candidates))
	best := -1
	bestScore := negInf
	for i, c := range candidates {
		score, ok := w.score(c)
		evals[i] = map[string]float64{"score": score, "viable": boolToFloat(ok)}
		if !ok {
			continue
		}
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best, evals
}

func (w *WeightedSum) score(c Candidate) (float64, bool) {
	if !c.Viable() {
		return 0, false
	}
	if v, ok := c.Props["colision_free_distance"]; ok && v < w.MinColfree {
		return 0, false
	}
	if v, ok := c.Props["clearance"]; ok && v < w.MinClearance {
		return 0, false
	}
	if v, ok := c.Props["hysteresis"]; ok && v < w.MinHysteresis {
		return 0, false
	}
	if w.MaxETA > 0 {
		if v, ok := c.Props["eta"]; ok && v > w.MaxETA {
			return 0, false
		}
	}
	var total float64
	for key, weight := range w.Weights {
		total += weight * c.Props[key]
	}
	return total, true
}

const negInf = -1e300

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
