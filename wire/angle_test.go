package wire

import "testing"

func TestAngleFromDegrees(t *testing.T) {
	cases := []struct {
		degrees float64
		want    Angle
	}{
		{0, 0},
		{360, 0},
		{180, 128},
		{90, 64},
		{-90, 191},
	}
	for _, c := range cases {
		if got := AngleFromDegrees(c.degrees); got != c.want {
			t.Fatalf("AngleFromDegrees(%v): got %d want %d", c.degrees, got, c.want)
		}
	}
}

func TestAngleEncodeDecode(t *testing.T) {
	a := Angle(200)
	b := &Buffer{}
	if err := a.Encode(b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeAngle(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != a {
		t.Fatalf("got %d want %d", got, a)
	}
}
