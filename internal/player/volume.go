package player

// DefaultPresets are the volume levels the up/down buttons step through.
var DefaultPresets = []int{0, 10, 40, 60, 70, 80, 85, 90, 95, 100}

// StepVolume moves v by delta presets and returns the new volume. When v is a
// preset it is the anchor; otherwise the anchor is the count of presets below
// v, so stepping up lands on the first preset above it. The result is clamped
// to the ends of presets. presets must be ascending and non-empty.
func StepVolume(presets []int, v, delta int) int {
	anchor := presetAnchor(presets, v)
	i := min(max(anchor+delta, 0), len(presets)-1)
	return presets[i]
}

func presetAnchor(presets []int, v int) int {
	below := 0
	for i, p := range presets {
		if p == v {
			return i
		}
		if p < v {
			below++
		}
	}
	return below
}

// ClampVolume limits v to 0..100.
func ClampVolume(v int) int {
	return min(max(v, 0), 100)
}
