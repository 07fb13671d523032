package scale

import "testing"

func TestNotesAreInPitchOrder(t *testing.T) {
	notes := Notes()
	if len(notes) != 12 {
		t.Fatalf("expected 12 notes, got %d", len(notes))
	}
	if notes[0] != C {
		t.Errorf("first note is %s, want C", notes[0])
	}
	if notes[len(notes)-1] != B {
		t.Errorf("last note is %s, want B", notes[len(notes)-1])
	}
	for i := 1; i < len(notes); i++ {
		if notes[i].Frequency() <= notes[i-1].Frequency() {
			t.Errorf("%s (%.3f Hz) not above %s (%.3f Hz)",
				notes[i], notes[i].Frequency(), notes[i-1], notes[i-1].Frequency())
		}
	}
}

func TestTableSpansLessThanAnOctave(t *testing.T) {
	if ratio := B.Frequency() / C.Frequency(); ratio >= 2 {
		t.Errorf("B0/C0 ratio = %.4f, want < 2", ratio)
	}
}

func TestNoteNames(t *testing.T) {
	tests := []struct {
		note  Note
		names []string
	}{
		{C, []string{"C"}},
		{CSharp, []string{"C#", "Db"}},
		{A, []string{"A"}},
		{ASharp, []string{"A#", "Bb"}},
	}
	for _, tt := range tests {
		got := tt.note.Names()
		if len(got) != len(tt.names) {
			t.Errorf("%s: got %v, want %v", tt.note, got, tt.names)
			continue
		}
		for i := range got {
			if got[i] != tt.names[i] {
				t.Errorf("%s: got %v, want %v", tt.note, got, tt.names)
				break
			}
		}
		if tt.note.Name() != tt.names[0] {
			t.Errorf("%s: Name() = %s, want sharp spelling %s",
				tt.note, tt.note.Name(), tt.names[0])
		}
	}
}

func TestInTuneThresholdIsStrict(t *testing.T) {
	tests := []struct {
		cents Cents
		want  bool
	}{
		{0, true},
		{4.99, true},
		{-4.99, true},
		{5.0, false},
		{-5.0, false},
		{24, false},
	}
	for _, tt := range tests {
		if got := tt.cents.InTune(); got != tt.want {
			t.Errorf("Cents(%v).InTune() = %v, want %v", tt.cents, got, tt.want)
		}
	}
}

func TestFrequencyOctaveShifts(t *testing.T) {
	if got := Frequency(27.5).ShiftedByOctaves(4); got != 440 {
		t.Errorf("27.5 Hz shifted 4 octaves = %v, want 440", got)
	}
	if got := Frequency(440).ShiftedByOctaves(-4); got != 27.5 {
		t.Errorf("440 Hz shifted -4 octaves = %v, want 27.5", got)
	}
	if got := Frequency(27.5).DistanceInOctaves(440); got != 4 {
		t.Errorf("octave distance 27.5 -> 440 = %d, want 4", got)
	}
	if got := Frequency(440).DistanceInOctaves(27.5); got != -4 {
		t.Errorf("octave distance 440 -> 27.5 = %d, want -4", got)
	}
	// A partial octave rounds down.
	if got := Frequency(100).DistanceInOctaves(300); got != 1 {
		t.Errorf("octave distance 100 -> 300 = %d, want 1", got)
	}
}
