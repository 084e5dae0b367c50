package navlog

import (
	"github.com/fossabot/mrpt/geom"
)

// PTGInfo is the per-PTG slice of a Record: the TP-Space view that was
// computed for this PTG on this iteration, plus the holonomic and scoring
// output for its winning (or best-attempted) candidate.
type PTGInfo struct {
	PTGIndex      int
	TPObstacles   []float64
	Clearance     map[int]float64
	TPTargetK     int
	TPTargetD     float64
	ValidTP       bool
	HolonomicLog  map[string]interface{}
	DesiredAlpha  float64
	DesiredSpeed  float64
	Eval          map[string]float64 // candidate scoring properties (§4.5)
}

// NOPContext records why a NOP continuation was or was not used, for
// diagnosing scenario 4 of §8 in a captured log.
type NOPContext struct {
	Allowed      bool
	Reason       string
	MoveK        int
	CurK         int
	ColfreeDist  float64
}

// Record is one entry in the reactive navigation log: a complete snapshot of
// a single step() iteration, mirroring MRPT's CLogFileRecord contract (§6).
type Record struct {
	IterationIndex      int
	RequestID           string // the originating NavRequest.ID, for correlating log entries to the request that produced them
	TimestampSecs       float64
	CurrentPose         geom.Pose2D
	CurrentVelGlobal    geom.Twist2D
	CurrentVelLocal     geom.Twist2D
	WorkspaceTarget     geom.Pose2D
	RelativeTarget      geom.Pose2D
	CmdVel              *geom.Twist2D // nil if NOP or no command issued
	WasNOP              bool
	ChosenPTG           int // -1 if none selected
	PerPTG              []PTGInfo
	NOP                 NOPContext
	Values              map[string]float64
	Timestamps          map[string]float64
	AdditionalDebugMsgs []string
}

// NewRecord returns a zeroed Record ready to be filled in across a step()
// iteration's pipeline stages.
func NewRecord(iteration int, tSecs float64) *Record {
	return &Record{
		IterationIndex: iteration,
		TimestampSecs:  tSecs,
		ChosenPTG:      -1,
		Values:         map[string]float64{},
		Timestamps:     map[string]float64{},
	}
}
