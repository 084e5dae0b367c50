package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedSumPicksHighestScoringViableCandidate(t *testing.T) {
	w := NewWeightedSum(map[string]float64{"colision_free_distance": 1.0}, 0, 0, 0, 0)
	candidates := []Candidate{
		{PTGIndex: 0, Speed: 0.5, Props: map[string]float64{"colision_free_distance": 0.3}},
		{PTGIndex: 1, Speed: 0.5, Props: map[string]float64{"colision_free_distance": 0.9}},
	}
	best, evals := w.Select(candidates)
	assert.Equal(t, 1, best)
	assert.Len(t, evals, 2)
	assert.Equal(t, 1.0, evals[0]["viable"])
	assert.Equal(t, 1.0, evals[1]["viable"])
}

func TestWeightedSumRejectsNonPositiveSpeed(t *testing.T) {
	w := NewWeightedSum(nil, 0, 0, 0, 0)
	candidates := []Candidate{
		{PTGIndex: 0, Speed: 0, Props: map[string]float64{"colision_free_distance": 1.0}},
	}
	best, evals := w.Select(candidates)
	assert.Equal(t, -1, best)
	assert.Equal(t, 0.0, evals[0]["viable"])
}

func TestWeightedSumEnforcesMinClearanceConstraint(t *testing.T) {
	w := NewWeightedSum(map[string]float64{"colision_free_distance": 1.0}, 0, 0.5, 0, 0)
	candidates := []Candidate{
		{PTGIndex: 0, Speed: 0.5, Props: map[string]float64{"colision_free_distance": 1.0, "clearance": 0.1}},
		{PTGIndex: 1, Speed: 0.5, Props: map[string]float64{"colision_free_distance": 0.5, "clearance": 0.9}},
	}
	best, _ := w.Select(candidates)
	assert.Equal(t, 1, best)
}

func TestWeightedSumEnforcesMaxETAConstraint(t *testing.T) {
	w := NewWeightedSum(map[string]float64{"colision_free_distance": 1.0}, 0, 0, 0, 5.0)
	candidates := []Candidate{
		{PTGIndex: 0, Speed: 0.5, Props: map[string]float64{"colision_free_distance": 1.0, "eta": 50.0}},
	}
	best, evals := w.Select(candidates)
	assert.Equal(t, -1, best)
	assert.Equal(t, 0.0, evals[0]["viable"])
}

func TestWeightedSumAllNonViableReturnsNegativeOne(t *testing.T) {
	w := NewWeightedSum(nil, 0, 0, 0, 0)
	best, _ := w.Select(nil)
	assert.Equal(t, -1, best)
}

func TestRegistryConstructsWeightedSum(t *testing.T) {
	opt, err := New("weighted_sum", nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "weighted_sum", opt.Name())

	_, err = New("does_not_exist", nil)
	assert.Error(t, err)
}
