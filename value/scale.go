package value

// Scale implements the MIDI 2.0 "Min-Center-Max" bit-scaling algorithm
// (M2-115-U) used to convert a value measured in srcBits to one measured in
// dstBits. Zero and the maximum value always map exactly; when both widths
// have a defined centre (srcBits/dstBits > 0) the centre (1<<(srcBits-1))
// maps exactly to the destination centre (1<<(dstBits-1)). Values below the
// centre scale by a plain left shift; values above it additionally repeat
// their low-order source bits into the newly created low-order destination
// bits so that the maximum source value still maps to the maximum
// destination value.
//
// Down-scaling (dstBits <= srcBits) is truncation: the extra low-order
// source bits are simply dropped via a right shift.
func Scale(v uint64, srcBits, dstBits int) uint64 {
	if dstBits <= srcBits {
		return v >> (srcBits - dstBits)
	}
	return scaleUp(v, srcBits, dstBits)
}

func scaleUp(srcVal uint64, srcBits, dstBits int) uint64 {
	scaleBits := dstBits - srcBits
	shifted := srcVal << uint(scaleBits)

	if srcBits == 0 {
		return shifted
	}
	srcCenter := uint64(1) << uint(srcBits-1)
	if srcVal <= srcCenter {
		return shifted
	}

	repeatBits := srcBits - 1
	repeatMask := uint64(1)<<uint(repeatBits) - 1
	repeatValue := srcVal & repeatMask

	if scaleBits > repeatBits {
		repeatValue <<= uint(scaleBits - repeatBits)
	} else {
		repeatValue >>= uint(repeatBits - scaleBits)
	}

	for repeatValue != 0 {
		shifted |= repeatValue
		if repeatBits == 0 {
			break
		}
		repeatValue >>= uint(repeatBits)
	}
	return shifted
}

// ScaleU7ToU16 upsamples a 7-bit MIDI 1.0 value to MIDI 2.0's 16-bit width.
func ScaleU7ToU16(v U7) U16 {
	return U16(Scale(uint64(v), 7, 16))
}

// ScaleU16ToU7 downsamples a MIDI 2.0 16-bit value to MIDI 1.0's 7-bit width.
func ScaleU16ToU7(v U16) U7 {
	return U7(Scale(uint64(v), 16, 7))
}

// ScaleU7ToU32 upsamples a 7-bit value to MIDI 2.0's full 32-bit width.
func ScaleU7ToU32(v U7) U32 {
	return U32(Scale(uint64(v), 7, 32))
}

// ScaleU32ToU7 downsamples a MIDI 2.0 32-bit value to MIDI 1.0's 7-bit width.
func ScaleU32ToU7(v U32) U7 {
	return U7(Scale(uint64(v), 32, 7))
}

// ScaleU14ToU16 upsamples a 14-bit wire quantity (pitch bend, RPN/NRPN
// data entry) to the 16-bit width event.Value carries it at.
func ScaleU14ToU16(v U14) U16 {
	return U16(Scale(uint64(v), 14, 16))
}

// ScaleU16ToU14 downsamples a 16-bit value to the 14-bit MIDI 1.0 wire width.
func ScaleU16ToU14(v U16) U14 {
	return U14(Scale(uint64(v), 16, 14))
}

// ScaleU14ToU32 upsamples a 14-bit value (pitch bend, RPN/NRPN) to 32 bits.
func ScaleU14ToU32(v U14) U32 {
	return U32(Scale(uint64(v), 14, 32))
}

// ScaleU32ToU14 downsamples a 32-bit value to the 14-bit MIDI 1.0 width.
func ScaleU32ToU14(v U32) U14 {
	return U14(Scale(uint64(v), 32, 14))
}
