package holonomic

import "math"

// gapSearch picks, among the contiguous gaps of directions whose
// TP_Obstacles clears a threshold, the gap whose center is nearest to the
// target direction (gap width is not considered). It aims straight at the
// target when the target direction lies inside that gap, and at the gap's
// center otherwise — a simplified nearness-diagram-style strategy.
type gapSearch struct {
	freeThreshold float64
}

// NewGapSearch returns a Method that steers for the target through the free
// gap of directions nearest to it (or for that gap's center when the target
// lies outside it), slowing down in proportion to the chosen direction's
// remaining obstacle clearance.
func NewGapSearch(freeThreshold float64) Method {
	if freeThreshold <= 0 {
		freeThreshold = 0.5
	}
	return &gapSearch{freeThreshold: freeThreshold}
}

func (g *gapSearch) Name() string { return "gap_search" }

func (g *gapSearch) Compute(in Input) Output {
	k := len(in.TPObstacles)
	if k == 0 {
		return Output{DesiredSpeed: 0, Log: map[string]interface{}{"reason": "no directions"}}
	}
	targetAlpha := math.Atan2(in.TargetY, in.TargetX)
	targetDist := math.Hypot(in.TargetX, in.TargetY)

	type gap struct{ start, end int }
	var gaps []gap
	inGap := false
	start := 0
	for i := 0; i <= k; i++ {
		free := i < k && in.TPObstacles[i] >= g.freeThreshold
		if free && !inGap {
			inGap = true
			start = i
		}
		if !free && inGap {
			gaps = append(gaps, gap{start, i - 1})
			inGap = false
		}
	}
	if len(gaps) == 0 {
		// No direction is clear enough; aim toward the single least-blocked
		// direction (the first one on ties, regardless of the target) and
		// crawl.
		bestK, bestScore := 0, -1.0
		for i, d := range in.TPObstacles {
			if d > bestScore {
				bestScore = d
				bestK = i
			}
		}
		return Output{
			DesiredAlpha: alphaForIndex(bestK, k),
			DesiredSpeed: clamp01(bestScore * 0.25),
			Log:          map[string]interface{}{"reason": "no free gap", "k": bestK},
		}
	}

	bestGapIdx := 0
	bestDist := math.Inf(1)
	for gi, gp := range gaps {
		center := (gp.start + gp.end) / 2
		d := math.Abs(geomAngleDiff(alphaForIndex(center, k), targetAlpha))
		if d < bestDist {
			bestDist = d
			bestGapIdx = gi
		}
	}
	chosen := gaps[bestGapIdx]
	aimIdx := (chosen.start + chosen.end) / 2
	// When the target direction lies inside the chosen gap, aim at the gap
	// direction nearest to it instead of the gap's center.
	nearestIdx, nearestDiff := aimIdx, math.Inf(1)
	for i := chosen.start; i <= chosen.end; i++ {
		if d := math.Abs(geomAngleDiff(alphaForIndex(i, k), targetAlpha)); d < nearestDiff {
			nearestIdx, nearestDiff = i, d
		}
	}
	if nearestDiff <= math.Pi/float64(k)+1e-9 {
		aimIdx = nearestIdx
	}
	alpha := alphaForIndex(aimIdx, k)
	speed := in.TPObstacles[aimIdx]
	if in.EnableApproachTargetSlowdown && targetDist < 1.0 {
		speed = math.Min(speed, math.Max(0.1, targetDist))
	}
	return Output{
		DesiredAlpha: alpha,
		DesiredSpeed: clamp01(speed),
		Log: map[string]interface{}{
			"reason":    "gap center",
			"gap_start": chosen.start,
			"gap_end":   chosen.end,
		},
	}
}

// alphaForIndex applies the module-wide uniform discretization convention
// also used by tpspace's PTGs: K directions evenly spaced over [-pi, pi).
func alphaForIndex(k, numPaths int) float64 {
	if numPaths == 0 {
		return 0
	}
	return math.Pi * (-1.0 + 2.0*(float64(k)+0.5)/float64(numPaths))
}

func geomAngleDiff(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
