package mix

import (
	"log/slog"

	"github.com/ik5/gamemix/pcm"
)

// copyStereo copies source samples straight into the block.
func copyStereo(dst, src []float32) (dstN, srcN int) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst, src[:n])
	return n, n
}

// copyMono writes each source sample twice, expanding mono to stereo.
// Source and target advance at different rates.
func copyMono(dst, src []float32) (dstN, srcN int) {
	n := len(dst) / 2
	if len(src) < n {
		n = len(src)
	}
	for i, s := range src[:n] {
		dst[2*i] = s
		dst[2*i+1] = s
	}
	return 2 * n, n
}

func copyBlock(dst, src []float32, mono bool) (dstN, srcN int) {
	if mono {
		return copyMono(dst, src)
	}
	return copyStereo(dst, src)
}

// copyBuffer fills dst from a whole-sound voice, rewinding and
// counting loops on source exhaustion until dst is full or the voice
// finishes. Called with the mixer mutex held.
func copyBuffer(v *voice, dst []float32) int {
	mono := v.buffer.Channels() == 1
	data := v.buffer.Data()
	total := 0

	for !v.finished() {
		dn, sn := copyBlock(dst[total:], data[v.pos:], mono)
		total += dn

		if sn < len(data)-v.pos {
			// didn't reach the end of the sound
			v.pos += sn
			break
		}
		// reached end of sound
		v.decrementLoop()
		v.pos = 0
	}

	return total
}

// copyStream fills dst from a stream voice. The primary side may end
// before dst is full; the exhaustion path then tries a non-blocking
// swap and on NotReady/NoData the voice simply stops mid-block for
// this callback. Called with the mixer mutex held.
func copyStream(v *voice, dst []float32) int {
	sb := v.stream
	mono := sb.Channels() == 1
	total := 0

	for !v.finished() {
		data := sb.Data()
		end := sb.EndPos()

		var srcLeft int
		if end <= v.pos { // end == -1, or behind the cursor
			srcLeft = len(data) - v.pos
		} else {
			srcLeft = end - v.pos
		}

		dn, sn := copyBlock(dst[total:], data[v.pos:v.pos+srcLeft], mono)
		total += dn

		switch {
		case sn < srcLeft:
			// didn't reach the stream end or the primary's edge
			v.pos += sn
			return total
		case v.pos+sn == len(data):
			// reached the primary's edge
			if end == len(data) && dn > 0 {
				// stream end at the edge; the cursor may have been
				// parked here by an earlier failed swap, in which case
				// nothing was copied and the loop was already counted
				v.decrementLoop()
			}
			if !swapStream(v, false) {
				return total
			}
		default:
			// stream end inside the primary
			v.pos = end
			v.decrementLoop()
		}
	}

	return total
}

// swapStream advances the voice onto the stream's secondary side.
// Returns false when the voice cannot continue this callback: the
// swap wasn't ready (cursor parks at the edge for a later retry) or
// the stream errored (voice finishes). Called with the mixer mutex
// held.
func swapStream(v *voice, blocking bool) bool {
	sb := v.stream
	var res pcm.Result
	if blocking {
		res = sb.SwapBuffersWait()
	} else {
		res = sb.SwapBuffers()
	}

	switch res {
	case pcm.Ready:
		if sb.EndPos() == 0 {
			// End of stream was hit immediately by the fill.
			v.decrementLoop()
		}
		v.pos = 0
		if !sb.FullyBuffered() {
			go readMore(v.stream)
		}
		return true
	case pcm.Error:
		v.state = stateFinished
		return false
	default:
		v.pos = sb.Size()
		return false
	}
}

func readMore(sb *pcm.StreamBuffer) {
	if !sb.ReadMore() {
		slog.Debug("stream buffer read failed")
	}
}
