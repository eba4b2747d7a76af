package track

import (
	"fmt"
	"math"

	"github.com/npillmayer/coaster/space"
)

const maxFloat = math.MaxFloat64

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}

func ptstring(p space.Vec3) string {
	return fmt.Sprintf("(%.4g,%.4g,%.4g)", round(p.X), round(p.Y), round(p.Z))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
