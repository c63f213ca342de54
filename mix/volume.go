package mix

// volumeData describes the piecewise linear gain ramp of one voice
// over one callback block: the block is split into steps+1 equal
// sub-spans (the last absorbs the remainder) and sub-span k multiplies
// left samples by left*(leftFade + k*leftStep), likewise for right.
type volumeData struct {
	left, right         float64 // base gain, the previously applied value
	leftFade, rightFade float64 // fade factor at block start
	leftStep, rightStep float64 // fade increment per sub-span
	steps               int
}

// No sub-span may change the gain by more than about 2%, capped so a
// block is never cut into more than 51 spans.
const (
	fadeDeltaStep = 0.02
	maxFadeSteps  = 50
)

// volumeData computes the ramp for this callback and advances the
// voice's fade, pause and volume bookkeeping. Called with the mixer
// mutex held.
func (m *Mixer) volumeData(v *voice) volumeData {
	panL, panR := pan(v.x, v.y)
	targetL := v.newVolume * panL
	targetR := v.newVolume * panR

	volumeChanging := targetL != v.lvol || targetR != v.rvol
	if !v.fading() && !volumeChanging && !v.pauseChanging() {
		return volumeData{
			left: v.lvol, right: v.rvol,
			leftFade: 1, rightFade: 1,
		}
	}

	startFade := 1.0
	endFade := 1.0
	adjustFadeTime := false

	if v.fadingIn() {
		startFade = v.fadeTime / v.fadeTotal
		endFade = (v.fadeTime + m.callbackSecs) / v.fadeTotal
		adjustFadeTime = true
	} else if v.fadingOut() { // fadeTotal is negative
		startFade = v.fadeTime / -v.fadeTotal
		endFade = (v.fadeTime - m.callbackSecs) / -v.fadeTotal
		adjustFadeTime = true
	}

	lvol := v.lvol
	rvol := v.rvol
	leftStart, rightStart := startFade, startFade
	leftEnd, rightEnd := endFade, endFade

	if volumeChanging {
		// Scale the ramp end so this block lands exactly on the new
		// gain; the next block then starts where this one ended.
		if lvol <= 0 {
			lvol = 0.01
		}
		if rvol <= 0 {
			rvol = 0.01
		}
		leftEnd = endFade * targetL / lvol
		rightEnd = endFade * targetR / rvol
		v.lvol = targetL
		v.rvol = targetR
	}

	if v.pausing() {
		leftEnd, rightEnd = 0, 0
		adjustFadeTime = false
		v.state = statePaused
	} else if v.unpausing() {
		leftStart, rightStart = 0, 0
		adjustFadeTime = false
		v.state = statePlaying
	}

	vd := volumeData{
		left: lvol, right: rvol,
		leftFade: leftStart, rightFade: rightStart,
	}

	leftDelta := leftEnd - leftStart
	rightDelta := rightEnd - rightStart
	maxDelta := leftDelta
	if maxDelta < 0 {
		maxDelta = -maxDelta
	}
	if d := rightDelta; d > maxDelta || -d > maxDelta {
		if d < 0 {
			d = -d
		}
		maxDelta = d
	}
	vd.steps = int(maxDelta / fadeDeltaStep)
	if vd.steps > maxFadeSteps {
		vd.steps = maxFadeSteps
	}
	vd.leftStep = leftDelta / float64(vd.steps+1)
	vd.rightStep = rightDelta / float64(vd.steps+1)

	if adjustFadeTime {
		if v.fadingOut() {
			v.fadeTime -= m.callbackSecs
			if v.fadeTime <= 0 {
				v.state = stateFinished
				v.unsetFade()
			}
		} else {
			v.fadeTime += m.callbackSecs
			if v.fadeTime >= v.fadeTotal {
				v.unsetFade()
			}
		}
	}

	return vd
}

// applyVolume multiplies an interleaved stereo block by the ramp.
func applyVolume(block []float32, vd *volumeData) {
	if vd.steps == 0 && vd.leftFade == 1 && vd.rightFade == 1 &&
		vd.leftStep == 0 && vd.rightStep == 0 {
		applyGain(block, vd.left, vd.right)
		return
	}

	// Span length must stay frame-aligned after the division.
	span := (len(block) / 2) / (vd.steps + 1) * 2
	pos := 0
	for i := 0; i < vd.steps; i++ {
		lf := fadeAt(vd.leftFade, vd.leftStep, i)
		rf := fadeAt(vd.rightFade, vd.rightStep, i)
		applyGain(block[pos:pos+span], vd.left*lf, vd.right*rf)
		pos += span
	}

	// The last span takes whatever remains of the block.
	lf := fadeAt(vd.leftFade, vd.leftStep, vd.steps)
	rf := fadeAt(vd.rightFade, vd.rightStep, vd.steps)
	applyGain(block[pos:], vd.left*lf, vd.right*rf)
}

// fadeAt is the fade factor of sub-span i, floored at silence so the
// tail of a fadeout never inverts the signal.
func fadeAt(start, step float64, i int) float64 {
	f := start + float64(i)*step
	if f < 0 {
		return 0
	}
	return f
}

func applyGain(block []float32, left, right float64) {
	for i := 0; i+1 < len(block); i += 2 {
		block[i] = float32(float64(block[i]) * left)
		block[i+1] = float32(float64(block[i+1]) * right)
	}
}

// mixInto adds src into dst sample by sample.
func mixInto(dst, src []float32) {
	for i, s := range src {
		dst[i] += s
	}
}

// clampBlock bounds every sample to [-1, 1].
func clampBlock(block []float32) {
	for i, s := range block {
		if s > 1 {
			block[i] = 1
		} else if s < -1 {
			block[i] = -1
		}
	}
}
