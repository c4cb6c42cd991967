package motion

// Bezier evaluates a Bezier curve of the given order over points at t using
// de Casteljau's recursion. Order below 1 returns points[0] for every t.
// points must hold at least order+1 values. t is not clamped.
func Bezier(points []float64, t float64, order int) float64 {
	p := 1 - t
	switch {
	case order < 1:
		return points[0]
	case order == 1:
		return p*points[0] + t*points[1]
	default:
		return p*Bezier(points, t, order-1) + t*Bezier(points[1:], t, order-1)
	}
}

// Lerp linearly blends a and b.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// LerpVec blends two vectors component-wise.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// BezierVec evaluates a Bezier curve independently on each axis.
func BezierVec(points []Vec2, t float64, order int) Vec2 {
	var xs, ys [4]float64
	n := len(points)
	if n > len(xs) {
		n = len(xs)
	}
	for i := 0; i < n; i++ {
		xs[i] = points[i].X
		ys[i] = points[i].Y
	}
	return Vec2{Bezier(xs[:n], t, order), Bezier(ys[:n], t, order)}
}

// LerpCrop blends every crop edge linearly.
func LerpCrop(a, b Crop, t float64) Crop {
	return Crop{
		Top:    Lerp(a.Top, b.Top, t),
		Bottom: Lerp(a.Bottom, b.Bottom, t),
		Left:   Lerp(a.Left, b.Left, t),
		Right:  Lerp(a.Right, b.Right, t),
	}
}
