package motion

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// easingCurves maps settings names to gween easing functions.
var easingCurves = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-expo":       ease.InExpo,
	"out-expo":      ease.OutExpo,
	"in-out-expo":   ease.InOutExpo,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"in-bounce":     ease.InBounce,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// EasingNames returns the accepted curve names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easingCurves))
	for name := range easingCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Easing remaps normalized progress before it is fed to a path.
//
// Acceleration in [-1, 1] warps progress through a quadratic Bezier whose
// middle control point is (-Acceleration+1)/2; 0 leaves progress unchanged,
// positive values start slow, negative values start fast. Curve, when set,
// is applied first.
type Easing struct {
	Acceleration float64
	Curve        ease.TweenFunc
}

// NewEasing builds an easing from an acceleration and an optional curve
// name. Unknown names are ignored.
func NewEasing(acceleration float64, curve string) Easing {
	e := Easing{Acceleration: clamp(acceleration, -1, 1)}
	if fn, ok := easingCurves[curve]; ok && curve != "linear" {
		e.Curve = fn
	}
	return e
}

// Identity reports whether the easing leaves progress unchanged.
func (e Easing) Identity() bool {
	return e.Acceleration == 0 && e.Curve == nil
}

// Apply remaps progress t.
func (e Easing) Apply(t float64) float64 {
	if e.Curve != nil {
		t = float64(e.Curve(float32(t), 0, 1, 1))
	}
	if e.Acceleration != 0 {
		warp := [3]float64{0, (-e.Acceleration + 1) / 2, 1}
		t = Bezier(warp[:], t, 2)
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
