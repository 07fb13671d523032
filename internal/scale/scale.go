// Package scale models the twelve-tone equal-temperament scale and
// resolves raw frequencies to their closest note.
package scale

import "fmt"

// Note identifies one of the twelve chromatic notes, ordered by pitch
// within an octave (C is lowest, B is highest, B wraps to C above).
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B

	noteCount = 12
)

// noteNames holds the display spellings for each note, sharp spelling
// first, flat spelling second for the accidentals.
var noteNames = [noteCount][]string{
	{"C"},
	{"C#", "Db"},
	{"D"},
	{"D#", "Eb"},
	{"E"},
	{"F"},
	{"F#", "Gb"},
	{"G"},
	{"G#", "Ab"},
	{"A"},
	{"A#", "Bb"},
	{"B"},
}

// noteFrequencies holds each note's reference frequency at octave 0,
// from the standard equal-temperament table (A4 = 440 Hz).
var noteFrequencies = [noteCount]Frequency{
	16.352, // C0
	17.324, // C#0
	18.354, // D0
	19.445, // D#0
	20.602, // E0
	21.827, // F0
	23.125, // F#0
	24.500, // G0
	25.957, // G#0
	27.500, // A0
	29.135, // A#0
	30.868, // B0
}

func init() {
	// The matcher's normalization loop relies on the table being strictly
	// increasing and spanning less than one octave.
	for i := 1; i < noteCount; i++ {
		if noteFrequencies[i] <= noteFrequencies[i-1] {
			panic(fmt.Sprintf("scale: reference table not strictly increasing at %s", Note(i)))
		}
	}
	if noteFrequencies[B] >= noteFrequencies[C]*2 {
		panic("scale: reference table spans a full octave or more")
	}
}

// Notes returns all twelve notes in pitch order, C first.
func Notes() []Note {
	return []Note{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}
}

// Names returns the note's display spellings. Naturals have one; the
// accidentals have a sharp and a flat spelling.
func (n Note) Names() []string {
	return noteNames[n]
}

// Name returns the note's primary (sharp) spelling.
func (n Note) Name() string {
	return noteNames[n][0]
}

func (n Note) String() string {
	return n.Name()
}

// Frequency returns the note's reference frequency at octave 0.
func (n Note) Frequency() Frequency {
	return noteFrequencies[n]
}
