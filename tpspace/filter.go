package tpspace

import (
	"github.com/golang/geo/r3"

	"github.com/fossabot/mrpt/geom"
)

// minObstacleSeparation is a 0.02 m greedy decimation distance.
// FilterObstaclesByDistance does not read it; callers pass their own
// minSeparation.
const minObstacleSeparation = 0.02

// FilterObstaclesByDistance decimates a workspace obstacle point cloud,
// dropping any point that lies within minSeparation of a point
// already kept. It is the Go-native, single-scan counterpart of MRPT's
// mrpt::maps::CPointCloudFilterByDistance (spec §6
// enable_obstacle_filtering): the original filter also rejects points that
// fail to persist across scans, a temporal check this reactive core has no
// scan history to perform, so this is a deliberate simplification to the
// spatial half of that filter.
func FilterObstaclesByDistance(obstacles []geom.Pose2D, minSeparation float64) []geom.Pose2D {
	if minSeparation <= 0 {
		return obstacles
	}
	kept := make([]geom.Pose2D, 0, len(obstacles))
	keptVecs := make([]r3.Vector, 0, len(obstacles))
	for _, o := range obstacles {
		v := o.Vector()
		tooClose := false
		for _, kv := range keptVecs {
			if v.Sub(kv).Norm() < minSeparation {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		kept = append(kept, o)
		keptVecs = append(keptVecs, v)
	}
	return kept
}
