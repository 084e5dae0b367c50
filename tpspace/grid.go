package tpspace

import (
	"math"

	"github.com/fossabot/mrpt/geom"
)

const (
	defaultNumSteps           = 200
	defaultPathStepDurationS  = 0.05
	defaultMaxTimeInVelCmdNOP = 1.0
)

// pathFunc computes the robot-local pose reached after traveling arc-length s
// along the trajectory for direction alpha, starting at the origin facing 0.
type pathFunc func(alpha, s float64) geom.Pose2D

// cmdFunc computes the canonical full-speed velocity command for direction
// alpha.
type cmdFunc func(alpha float64) geom.Twist2D

// gridPTG is a PTG whose forward map is an arbitrary closed-form pathFunc,
// and whose inverse map (workspace -> TP-Space) is answered by a brute-force
// nearest-node search over a precomputed grid of trajectory samples — the
// same strategy go.viam.com/rdk/motionplan/tpspace's ptgGridSim uses to
// invert a PTG it cannot analytically invert.
//
// This is deliberately the only inversion strategy offered: the concrete
// geometry of a PTG family is an abstract capability per the navigation
// core's scope, so a single generic, good-enough numerical strategy serves
// every concrete family defined in this package.
type gridPTG struct {
	name          string
	numPaths      uint
	refDistance   float64
	numSteps      int
	stepDist      float64
	pathStepDurS  float64
	maxNOPSeconds float64
	supportsNOP   bool
	scorePriority float64
	pathFn        pathFunc
	cmdFn         cmdFunc

	nodes       [][]geom.Pose2D // [k][step]
	curVel      geom.Twist2D
	initialized bool
}

func newGridPTG(name string, numPaths uint, refDistance float64, supportsNOP bool, scorePriority float64, pathFn pathFunc, cmdFn cmdFunc) *gridPTG {
	return &gridPTG{
		name:          name,
		numPaths:      numPaths,
		refDistance:   refDistance,
		numSteps:      defaultNumSteps,
		stepDist:      refDistance / float64(defaultNumSteps),
		pathStepDurS:  defaultPathStepDurationS,
		maxNOPSeconds: defaultMaxTimeInVelCmdNOP,
		supportsNOP:   supportsNOP,
		scorePriority: scorePriority,
		pathFn:        pathFn,
		cmdFn:         cmdFn,
	}
}

func (p *gridPTG) Name() string             { return p.name }
func (p *gridPTG) AlphaValuesCount() uint   { return p.numPaths }
func (p *gridPTG) RefDistance() float64     { return p.refDistance }
func (p *gridPTG) SupportsVelCmdNOP() bool  { return p.supportsNOP }
func (p *gridPTG) GetScorePriority() float64 { return p.scorePriority }

// index2alpha discretizes [-pi, pi) into numPaths equally spaced directions,
// matching rdk's motionplan/tpspace.index2alpha formula.
func index2alpha(k, numPaths uint) float64 {
	if numPaths == 0 || k >= numPaths {
		return math.NaN()
	}
	return math.Pi * (-1.0 + 2.0*(float64(k)+0.5)/float64(numPaths))
}

func (p *gridPTG) Index2Alpha(k uint) float64 {
	return index2alpha(k, p.numPaths)
}

func (p *gridPTG) Alpha2Index(alpha float64) uint {
	alpha = geom.WrapToPi(alpha)
	k := int(math.Round(0.5 * (float64(p.numPaths)*(1.0+alpha/math.Pi) - 1.0)))
	if k < 0 {
		k = 0
	}
	if k >= int(p.numPaths) {
		k = int(p.numPaths) - 1
	}
	return uint(k)
}

func (p *gridPTG) Initialize() error {
	if p.initialized {
		return nil
	}
	p.nodes = make([][]geom.Pose2D, p.numPaths)
	for k := uint(0); k < p.numPaths; k++ {
		alpha := p.Index2Alpha(k)
		traj := make([]geom.Pose2D, p.numSteps+1)
		for s := 0; s <= p.numSteps; s++ {
			traj[s] = p.pathFn(alpha, float64(s)*p.stepDist)
		}
		p.nodes[k] = traj
	}
	p.initialized = true
	return nil
}

func (p *gridPTG) GetPathStepForDist(k uint, dist float64) (int, bool) {
	step := int(math.Round(dist / p.stepDist))
	if step < 0 {
		step = 0
	}
	inRange := step <= p.numSteps
	if step > p.numSteps {
		step = p.numSteps
	}
	return step, inRange
}

func (p *gridPTG) GetPathPose(k uint, step int) geom.Pose2D {
	step = clampStep(step, p.numSteps)
	if int(k) >= len(p.nodes) {
		return geom.Pose2D{}
	}
	return p.nodes[k][step]
}

func (p *gridPTG) GetPathDist(k uint, step int) float64 {
	step = clampStep(step, p.numSteps)
	return float64(step) * p.stepDist
}

func (p *gridPTG) GetPathStepDuration() float64 { return p.pathStepDurS }

// IsBijectiveAt reports whether the trajectory point at (k, step) has a
// unique preimage by checking that no other sampled node of the same
// trajectory lands within half a grid cell of it — a curve that loops back on itself
// (heading change beyond +-pi within RefDistance) loses bijectivity.
func (p *gridPTG) IsBijectiveAt(k uint, step int) bool {
	step = clampStep(step, p.numSteps)
	if int(k) >= len(p.nodes) {
		return false
	}
	target := p.nodes[k][step]
	tol := p.stepDist * 0.5
	traj := p.nodes[k]
	for s := 0; s <= p.numSteps; s++ {
		if s == step {
			continue
		}
		if geom.Dist2D(traj[s], target) < tol {
			return false
		}
	}
	return true
}

func (p *gridPTG) MaxTimeInVelCmdNOP(k uint) float64 { return p.maxNOPSeconds }

func (p *gridPTG) DirectionToMotionCommand(k uint) VelCmd {
	return VelCmd{Twist: p.cmdFn(p.Index2Alpha(k))}
}

func (p *gridPTG) UpdateCurrentRobotVel(vel geom.Twist2D) { p.curVel = vel }

func (p *gridPTG) EvalPathRelativePriority(targetK uint, targetDNorm float64) float64 {
	alpha := math.Abs(p.Index2Alpha(targetK))
	return math.Exp(-alpha/math.Pi) * math.Min(1, targetDNorm+0.2)
}

func (p *gridPTG) InitTPObstacles(out []float64) {
	for i := range out {
		out[i] = 1.0
	}
}

func (p *gridPTG) InitClearanceDiagram(out Clearance) {}

func (p *gridPTG) UpdateClearancePost(c Clearance, tpObstacles []float64) {
	for k, byD := range c {
		if int(k) >= len(tpObstacles) {
			continue
		}
		maxD := tpObstacles[k]
		for bucket := range byD {
			if float64(bucket)/100.0 > maxD {
				delete(byD, bucket)
			}
		}
	}
}

// InverseMapWS2TP performs the brute-force nearest-node search over the
// precomputed grid described in the gridPTG doc comment.
func (p *gridPTG) InverseMapWS2TP(x, y float64) (uint, float64, bool) {
	target := geom.Pose2D{X: x, Y: y}
	bestDist := math.Inf(1)
	var bestK uint
	var bestStep int
	for k := uint(0); k < p.numPaths; k++ {
		traj := p.nodes[k]
		for s := 0; s <= p.numSteps; s++ {
			d := geom.Dist2D(traj[s], target)
			if d < bestDist {
				bestDist = d
				bestK = k
				bestStep = s
			}
		}
	}
	// A match is considered within-domain only if the closest trajectory
	// sample actually lands near the requested point; otherwise the target
	// is outside this PTG's reachable region.
	const domainTol = 0.25
	inDomain := bestDist <= domainTol*p.refDistance
	dNorm := float64(bestStep) * p.stepDist / p.refDistance
	if dNorm > 1 {
		dNorm = 1
	}
	return bestK, dNorm, inDomain
}

func clampStep(step, numSteps int) int {
	if step < 0 {
		return 0
	}
	if step > numSteps {
		return numSteps
	}
	return step
}
