package entropy

// WeightedSample returns up to k distinct items drawn without replacement,
// each pick proportional to weight. Exactly one Float is consumed per pick.
// Items with a non-positive weight are only picked once every remaining item
// is non-positive, and then uniformly.
func WeightedSample[T any](s *Stream, items []T, k int, weight func(T) float64) []T {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	if k > len(items) {
		k = len(items)
	}

	weights := make([]float64, len(items))
	for i, it := range items {
		w := weight(it)
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}

	taken := make([]bool, len(items))
	out := make([]T, 0, k)
	for len(out) < k {
		total := 0.0
		remaining := 0
		for i, w := range weights {
			if taken[i] {
				continue
			}
			total += w
			remaining++
		}

		r := s.Float()
		pick := -1
		if total > 0 {
			target := r * total
			acc := 0.0
			for i, w := range weights {
				if taken[i] || w == 0 {
					continue
				}
				acc += w
				pick = i
				if target < acc {
					break
				}
			}
		} else {
			n := int(r * float64(remaining))
			for i := range items {
				if taken[i] {
					continue
				}
				if n == 0 {
					pick = i
					break
				}
				n--
			}
		}

		taken[pick] = true
		out = append(out, items[pick])
	}
	return out
}

// WeightedPick returns one item chosen by weight, or false when items is empty.
func WeightedPick[T any](s *Stream, items []T, weight func(T) float64) (T, bool) {
	picked := WeightedSample(s, items, 1, weight)
	if len(picked) == 0 {
		var zero T
		return zero, false
	}
	return picked[0], true
}
