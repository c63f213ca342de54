package mix

import "math"

// maxPanSkew bounds how far the quadrant factor pushes one channel
// above the other. Per-channel gain varies between 1.0 and
// (1-maxPanSkew)/(1+maxPanSkew), and is 1/(1+maxPanSkew) directly in
// front of or behind the listener: with 0.3 that is 1.0 to 0.54, and
// 0.77 front and back.
const maxPanSkew = 0.3

// pan derives the left/right gain split from a position relative to
// the listener, normalized so that distance 1 is the audible edge.
// Base attenuation is (1-d)/(1+maxPanSkew) on both channels; a
// quadrant-dependent factor then skews left against right, peaking on
// the x axis and collapsing to unity on the y axis. A source exactly
// at the listener is the exception: it gets full gain (1, 1) on both
// channels.
func pan(relX, relY float32) (left, right float64) {
	if relX == 0 && relY == 0 {
		return 1, 1
	}

	x := float64(relX)
	y := float64(relY)
	distance := math.Sqrt(x*x + y*y)
	if distance >= 1 {
		return 0, 0
	}

	base := (1 - distance) / (1 + maxPanSkew)
	left, right = base, base

	if x != 0 { // not 90 or 270 degrees
		rads := math.Atan(y / x)
		halfPi := math.Pi / 2
		var mod float64
		if y >= 0 {
			if x > 0 { // quadrant 1
				mod = maxPanSkew - rads/halfPi*maxPanSkew
				left *= 1 - mod
				right *= 1 + mod
			} else { // quadrant 2
				mod = maxPanSkew + rads/halfPi*maxPanSkew
				left *= 1 + mod
				right *= 1 - mod
			}
		} else {
			if x < 0 { // quadrant 3
				mod = maxPanSkew - rads/halfPi*maxPanSkew
				left *= 1 + mod
				right *= 1 - mod
			} else { // quadrant 4
				mod = maxPanSkew + rads/halfPi*maxPanSkew
				left *= 1 - mod
				right *= 1 + mod
			}
		}
	}

	return left, right
}
