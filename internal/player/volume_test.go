package player

import "testing"

func TestStepVolume(t *testing.T) {
	tests := []struct {
		name  string
		v     int
		delta int
		want  int
	}{
		{"preset up", 70, 1, 80},
		{"preset down", 70, -1, 60},
		{"between presets up", 50, 1, 70},
		{"between presets down", 50, -1, 40},
		{"just above preset up", 11, 1, 60},
		{"just above preset down", 11, -1, 10},
		{"top clamps", 100, 1, 100},
		{"bottom clamps", 0, -1, 0},
		{"above all presets down", 120, -1, 100},
		{"above all presets up", 120, 1, 100},
		{"below all presets up", -5, 1, 10},
		{"below all presets down", -5, -1, 0},
		{"zero to ten", 0, 1, 10},
		{"ninety-seven up", 97, 1, 100},
		{"ninety-seven down", 97, -1, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepVolume(DefaultPresets, tt.v, tt.delta); got != tt.want {
				t.Errorf("StepVolume(%d, %+d) = %d, want %d", tt.v, tt.delta, got, tt.want)
			}
		})
	}
}

func TestStepVolume_AlwaysPreset(t *testing.T) {
	for v := -10; v <= 110; v++ {
		for _, d := range []int{-1, 1} {
			got := StepVolume(DefaultPresets, v, d)
			found := false
			for _, p := range DefaultPresets {
				if p == got {
					found = true
				}
			}
			if !found {
				t.Errorf("StepVolume(%d, %+d) = %d, not a preset", v, d, got)
			}
		}
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct{ in, want int }{{-3, 0}, {0, 0}, {55, 55}, {100, 100}, {130, 100}}
	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
