package entropy

import "testing"

func TestWeightedSampleWithoutReplacement(t *testing.T) {
	s := NewStream(7)
	items := []int{1, 2, 3, 4, 5}
	got := WeightedSample(s, items, 5, func(int) float64 { return 1 })
	if len(got) != 5 {
		t.Fatalf("got %d items, want 5", len(got))
	}
	seen := make(map[int]bool)
	for _, v := range got {
		if seen[v] {
			t.Fatalf("item %d sampled twice", v)
		}
		seen[v] = true
	}
	if s.Draws() != 5 {
		t.Errorf("draws = %d, want one per pick", s.Draws())
	}
}

func TestWeightedSampleSkipsZeroWeights(t *testing.T) {
	s := NewStream(11)
	items := []string{"never", "always", "never2"}
	weight := func(v string) float64 {
		if v == "always" {
			return 3
		}
		return 0
	}
	for i := 0; i < 200; i++ {
		got, ok := WeightedPick(s, items, weight)
		if !ok || got != "always" {
			t.Fatalf("picked %q", got)
		}
	}

	// Once only zero weights remain the pick falls back to uniform.
	got := WeightedSample(s, items, 3, weight)
	if len(got) != 3 || got[0] != "always" {
		t.Errorf("got %v", got)
	}
}

func TestWeightedSampleProportional(t *testing.T) {
	s := NewStream(5)
	items := []int{0, 1}
	counts := [2]int{}
	for i := 0; i < 4000; i++ {
		v, _ := WeightedPick(s, items, func(v int) float64 {
			if v == 0 {
				return 1
			}
			return 3
		})
		counts[v]++
	}
	ratio := float64(counts[1]) / float64(counts[0])
	if ratio < 2.4 || ratio > 3.7 {
		t.Errorf("ratio = %.2f, want about 3", ratio)
	}
}

func TestWeightedSampleEmpty(t *testing.T) {
	s := NewStream(1)
	if got := WeightedSample(s, []int{}, 3, func(int) float64 { return 1 }); got != nil {
		t.Errorf("got %v", got)
	}
	if _, ok := WeightedPick(s, []int(nil), func(int) float64 { return 1 }); ok {
		t.Error("pick from empty succeeded")
	}
	if s.Draws() != 0 {
		t.Error("empty samples consumed draws")
	}
}
