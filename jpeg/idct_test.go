package jpeg

import "testing"

func TestIDCTAllZero(t *testing.T) {
	var coef [64]int32
	var out [64]int16
	IDCT(&coef, &out)
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %d, want 0", i, v)
		}
	}
}

// A DC-only block spreads coef[0]/8 evenly across all 64 spatial samples
// (spec.md §4.7's worked DC-only example).
func TestIDCTDCOnly(t *testing.T) {
	var coef [64]int32
	coef[0] = 4
	var out [64]int16
	IDCT(&coef, &out)
	for i, v := range out {
		if v != 1 {
			t.Errorf("out[%d] = %d, want 1", i, v)
		}
	}
}
