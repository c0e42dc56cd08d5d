package rng

import "testing"

func TestSampleRange(t *testing.T) {
	u := NewUniform(1)
	for i := 0; i < 1000; i++ {
		v := u.Sample(-1.0, 1.0)
		if v < -1.0 || v >= 1.0 {
			t.Fatalf("sample %g out of [-1, 1)", v)
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := NewUniform(99)
	b := NewUniform(99)

	for i := 0; i < 100; i++ {
		if a.Sample(0, 10) != b.Sample(0, 10) {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := NewUniform(1)
	b := NewUniform(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Sample(0, 1) != b.Sample(0, 1) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}
