package systems

import "math"

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// wrap maps v into [0, extent).
func wrap(v, extent float64) float64 {
	v = math.Mod(v, extent)
	if v < 0 {
		v += extent
	}
	// math.Mod of a tiny negative value can round up to extent
	if v >= extent {
		v = 0
	}
	return v
}

// Distance returns the Euclidean distance between two points.
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}
