package scale

import "math"

// Frequency is an acoustic frequency in Hertz. Valid frequencies are
// positive and finite.
type Frequency float64

// Valid reports whether the frequency is a usable logarithm argument:
// positive and finite.
func (f Frequency) Valid() bool {
	v := float64(f)
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}

// ShiftedByOctaves returns the frequency moved by k octaves: one octave
// up doubles, one octave down halves.
func (f Frequency) ShiftedByOctaves(k int) Frequency {
	return Frequency(math.Ldexp(float64(f), k))
}

// DistanceInOctaves returns the whole number of octave-doublings from f
// up to other, i.e. floor(log2(other/f)). Negative when other is below f.
func (f Frequency) DistanceInOctaves(other Frequency) int {
	return int(math.Floor(math.Log2(float64(other / f))))
}

// Cents is a signed pitch distance in cents: 100 cents is one
// equal-temperament semitone, 1200 is an octave.
type Cents float64

// InTuneThreshold is the human pitch-discrimination limit: deviations
// smaller than this are perceived as in tune.
const InTuneThreshold Cents = 5

// CentsBetween returns the signed distance in cents from ref up to f.
// Positive means f is sharp of ref, negative means flat.
func CentsBetween(ref, f Frequency) Cents {
	return Cents(1200 * math.Log2(float64(f/ref)))
}

// Abs returns the magnitude of the distance.
func (c Cents) Abs() Cents {
	return Cents(math.Abs(float64(c)))
}

// InTune reports whether the distance is below the perceptible
// threshold. Exactly 5 cents is out of tune.
func (c Cents) InTune() bool {
	return c.Abs() < InTuneThreshold
}
