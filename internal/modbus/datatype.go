package modbus

import "math"

// DataType is the closed 22-value register type tag. The ordering mirrors
// the original enum so that anything that ever needs the raw numeric value
// (none of our code does today) stays stable.
type DataType int

const (
	DTBitfield DataType = iota
	DTEnumeration
	DTBinaryPointS0
	DTBinaryPointS1
	DTBinaryPointS2
	DTBinaryPointS3
	DTBinaryPointS4
	DTBinaryPointS5
	DTBinaryPointS6
	DTBinaryPointS7
	DTBinaryPointS8
	DTBinaryPointS9
	DTBinaryPointU0
	DTBinaryPointU1
	DTBinaryPointU2
	DTBinaryPointU3
	DTBinaryPointU4
	DTBinaryPointU5
	DTBinaryPointU6
	DTBinaryPointU7
	DTBinaryPointU8
	DTBinaryPointU9
	DTString
)

// Kind is the coarse decoding category a DataType maps to.
type Kind int

const (
	KindBitfield Kind = iota
	KindEnumeration
	KindString
	KindBinaryPoint
)

// DecodeKind maps a DataType to its coarse decoding category.
func DecodeKind(dt DataType) Kind {
	switch dt {
	case DTBitfield:
		return KindBitfield
	case DTEnumeration:
		return KindEnumeration
	case DTString:
		return KindString
	default:
		return KindBinaryPoint
	}
}

// ScaleOf returns the binary-point scale (power of two divisor) and
// signedness for dt. Non-binary-point types report scale 0, unsigned.
func ScaleOf(dt DataType) (signed bool, scale int) {
	switch {
	case dt >= DTBinaryPointS0 && dt <= DTBinaryPointS9:
		return true, int(dt - DTBinaryPointS0)
	case dt >= DTBinaryPointU0 && dt <= DTBinaryPointU9:
		return false, int(dt - DTBinaryPointU0)
	default:
		return false, 0
	}
}

// SignExtend sign-extends an nbytes-wide raw value read into a 64-bit
// accumulator, by shifting left then arithmetically shifting right by
// 8*(8-nbytes). Go's signed right-shift is defined to be arithmetic, so
// this needs no mask-and-conditional-OR fallback.
func SignExtend(raw uint64, nbytes int) int64 {
	shift := uint(8 * (8 - nbytes))
	return int64(raw<<shift) >> shift
}

// DecodeBinaryPoint decodes nbytes of big-endian register data per dt's
// scale and signedness.
func DecodeBinaryPoint(dt DataType, data []byte, nbytes int) float64 {
	signed, scale := ScaleOf(dt)
	raw := BEToUint(data, nbytes)
	var signedOrUnsigned float64
	if signed {
		signedOrUnsigned = float64(SignExtend(raw, nbytes))
	} else {
		signedOrUnsigned = float64(raw)
	}
	return signedOrUnsigned / math.Pow(2, float64(scale))
}

// EncodeBinaryPoint encodes value for dt into nbytes of big-endian data,
// per the write-side rounding rules documented in the core design:
// unsigned and signed-with-scale>0 variants round via ceil(value*2^scale
// + 0.5); signed-with-scale-0 rounds via plain ceil(value). This preserves
// a documented compatibility hazard rather than "fixing" the rounding for
// negative values, since the original behavior was never specified beyond
// what's observed.
func EncodeBinaryPoint(dt DataType, value float64, nbytes int) []byte {
	signed, scale := ScaleOf(dt)
	var raw int64
	switch {
	case signed && scale == 0:
		raw = int64(math.Ceil(value))
	default:
		raw = int64(math.Ceil(value*math.Pow(2, float64(scale)) + 0.5))
	}
	out := make([]byte, nbytes)
	UintToBE(uint64(raw), out, nbytes)
	return out
}
