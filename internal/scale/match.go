package scale

import "errors"

// ErrInvalidFrequency is returned when a frequency outside the valid
// domain (zero, negative, NaN or infinite) is matched. Such input is
// never coerced into range; the caller should discard the sample.
var ErrInvalidFrequency = errors.New("frequency must be positive and finite")

// Match is the result of resolving a frequency against the scale: the
// closest note, the octave it was heard in, and how far off it was.
type Match struct {
	Note   Note
	Octave int
	Cents  Cents
}

// Frequency returns the absolute frequency of the matched pitch: the
// note's reference frequency shifted up by the matched octave.
func (m Match) Frequency() Frequency {
	return m.Note.Frequency().ShiftedByOctaves(m.Octave)
}

// InTune reports whether the match is within the perceptible tuning
// threshold.
func (m Match) InTune() bool {
	return m.Cents.InTune()
}

// ClosestNote resolves a frequency to the nearest note of the scale,
// the octave of the input, and the signed cents deviation from perfect
// tuning.
func ClosestNote(frequency Frequency) (Match, error) {
	if !frequency.Valid() {
		return Match{}, ErrInvalidFrequency
	}

	lowest := noteFrequencies[C]
	highest := noteFrequencies[B]

	// Shift the input into the octave of the reference table. Halving may
	// land just below C0 because the table spans less than an octave;
	// doubling stops before it would overshoot B0.
	normalized := frequency
	for normalized > highest {
		normalized = normalized.ShiftedByOctaves(-1)
	}
	for normalized < lowest {
		doubled := normalized.ShiftedByOctaves(1)
		if doubled > highest {
			break
		}
		normalized = doubled
	}

	// Nearest note by cents magnitude. Strict comparison keeps the
	// first-encountered (lower) note on an exact tie.
	closest := C
	closestCents := CentsBetween(noteFrequencies[C], normalized)
	for _, note := range Notes()[1:] {
		cents := CentsBetween(noteFrequencies[note], normalized)
		if cents.Abs() < closestCents.Abs() {
			closest = note
			closestCents = cents
		}
	}

	// The octave is how many doublings were undone by normalization.
	// Inputs below C0 would reconstruct a negative octave; the scale does
	// not model sub-C0 octaves, so those report octave 0.
	octave := normalized.DistanceInOctaves(frequency)
	if octave < 0 {
		octave = 0
	}

	return Match{Note: closest, Octave: octave, Cents: closestCents}, nil
}
