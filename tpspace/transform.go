package tpspace

import "github.com/fossabot/mrpt/geom"

// ComputeTPObstacles converts a set of workspace obstacle points (already
// shifted into the PTG's own origin frame, per spec §4.3 P6.2) into the
// view's TP_Obstacles buffer: for every obstacle point that lands within a
// PTG direction's reachable domain, that direction's free distance is
// clamped down to the obstacle's normalized distance.
func ComputeTPObstacles(ptg PTG, obstacles []geom.Pose2D, view *View) {
	for _, o := range obstacles {
		k, d, inDomain := ptg.InverseMapWS2TP(o.X, o.Y)
		if !inDomain {
			continue
		}
		if int(k) >= len(view.TPObstacles) {
			continue
		}
		if d < view.TPObstacles[k] {
			view.TPObstacles[k] = d
		}
	}
}
