package wire

import (
	"fmt"
	"math"
)

// Angle is a rotation encoded as a single unsigned byte. AngleFromDegrees
// and Degrees scale by 255/360, so 255 units map to a full turn.
type Angle uint8

func (a Angle) Encode(b *Buffer) error {
	b.AddByte(byte(a))
	return nil
}

func DecodeAngle(b *Buffer) (Angle, error) {
	c, err := b.NextByte()
	if err != nil {
		return 0, fmt.Errorf("wire: decode angle: %w", err)
	}
	return Angle(c), nil
}

// AngleFromDegrees converts a degree value (any real number, normalized mod
// 360 first) into its wire Angle, rounding to the nearest unit.
func AngleFromDegrees(degrees float64) Angle {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return Angle(math.Round(d * 255.0 / 360.0))
}

// Degrees converts the wire Angle back into a degree value in [0, 360].
func (a Angle) Degrees() float64 {
	return float64(a) * 360.0 / 255.0
}
