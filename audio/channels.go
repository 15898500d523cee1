// SPDX-License-Identifier: EPL-2.0

package audio

// mixChannels maps interleaved frames from srcCh to dstCh channels and
// returns the number of frames written. Downmixing averages the source
// channels, upmixing from mono repeats the single channel.
func mixChannels(dst []float32, dstCh int, src []float32, srcCh int) int {
	frames := min(len(src)/srcCh, len(dst)/dstCh)

	switch {
	case srcCh == dstCh:
		copy(dst, src[:frames*srcCh])
	case dstCh == 1:
		downmix(dst, src, srcCh, frames)
	case srcCh == 1:
		for f := range frames {
			v := src[f]
			base := f * dstCh
			for c := range dstCh {
				dst[base+c] = v
			}
		}
	default:
		// Keep the leading channels, silence the rest
		for f := range frames {
			for c := range dstCh {
				var v float32
				if c < srcCh {
					v = src[f*srcCh+c]
				}
				dst[f*dstCh+c] = v
			}
		}
	}

	return frames
}

func downmix(dst, src []float32, channels, frames int) {
	invChannels := float32(1.0) / float32(channels)

	// Unrolled loop for common cases
	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1 // f * 2
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	default: // Generic path
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += src[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}
}
