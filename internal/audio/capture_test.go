package audio

import (
	"math"
	"testing"
)

func TestDownmixMono(t *testing.T) {
	in := []float32{0.1, -0.2, 0.3}
	out := downmix(in, 1, 2.0)

	if len(out) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(out))
	}
	want := []float32{0.2, -0.4, 0.6}
	for i := range out {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %f, want %f", i, out[i], want[i])
		}
	}
}

func TestDownmixStereoAverages(t *testing.T) {
	in := []float32{0.2, 0.4, -0.6, -0.2}
	out := downmix(in, 2, 1.0)

	if len(out) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out))
	}
	want := []float32{0.3, -0.4}
	for i := range out {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %f, want %f", i, out[i], want[i])
		}
	}
}

func TestDownmixDoesNotAliasInput(t *testing.T) {
	in := []float32{0.5}
	out := downmix(in, 1, 1.0)
	out[0] = 0
	if in[0] != 0.5 {
		t.Errorf("downmix mutated its input")
	}
}
