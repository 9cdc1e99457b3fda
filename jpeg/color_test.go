package jpeg

import "testing"

func TestClamp(t *testing.T) {
	if got := clamp(-5, 0, 255); got != 0 {
		t.Errorf("clamp(-5,0,255) = %d, want 0", got)
	}
	if got := clamp(300, 0, 255); got != 255 {
		t.Errorf("clamp(300,0,255) = %d, want 255", got)
	}
	if got := clamp(100, 0, 255); got != 100 {
		t.Errorf("clamp(100,0,255) = %d, want 100", got)
	}
}

func TestLevelShiftClamp(t *testing.T) {
	if got := levelShiftClamp(0); got != 128 {
		t.Errorf("levelShiftClamp(0) = %d, want 128", got)
	}
	if got := levelShiftClamp(255); got != 255 {
		t.Errorf("levelShiftClamp(255) = %d, want 255", got)
	}
	if got := levelShiftClamp(-200); got != 0 {
		t.Errorf("levelShiftClamp(-200) = %d, want 0", got)
	}
}

// Gray midpoint and full-white saturation (spec.md's YCbCr edge cases).
func TestYCbCrToRGB(t *testing.T) {
	r, g, b := ycbcrToRGB(128, 128, 128)
	if r != 128 || g != 128 || b != 128 {
		t.Errorf("ycbcrToRGB(128,128,128) = (%d,%d,%d), want (128,128,128)", r, g, b)
	}
	r, g, b = ycbcrToRGB(255, 128, 128)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("ycbcrToRGB(255,128,128) = (%d,%d,%d), want (255,255,255)", r, g, b)
	}
}
