package motion

// Path is the set of control points one motion walks. Points holds
// start, optional control points and destination; Scale holds the start and
// destination scale. An order of 0 holds the component at its start value.
type Path struct {
	Points        [4]Vec2
	Scale         [2]Vec2
	PositionOrder int
	ScaleOrder    int
	Easing        Easing
}

// Start returns the position and scale at the start of the path.
func (p Path) Start() (pos, scale Vec2) {
	return p.Points[0], p.Scale[0]
}

// At evaluates the path at progress t in [0, 1] without easing.
func (p Path) At(t float64) (pos, scale Vec2) {
	return BezierVec(p.Points[:], t, p.PositionOrder), BezierVec(p.Scale[:], t, p.ScaleOrder)
}

// Progress converts elapsed seconds into a path coefficient. Walking
// backward mirrors the linear progress before easing is applied, so the same
// path is replayed in reverse.
func (p Path) Progress(elapsed, duration float64, backward bool) float64 {
	coeff := 1.0
	if duration > 0 {
		coeff = min(duration, elapsed) / duration
	}
	if backward {
		coeff = 1 - coeff
	}
	return p.Easing.Apply(coeff)
}
