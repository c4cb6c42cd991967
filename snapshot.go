package motion

// TransformSnapshot captures how an element's content maps onto the scene at
// one instant. It is a plain value; copies never alias.
type TransformSnapshot struct {
	Position        Vec2
	Scale           Vec2
	Rotation        float64 // degrees, clockwise
	Bounds          Vec2
	Alignment       Alignment
	BoundsType      BoundsType
	BoundsAlignment Alignment
	Crop            Crop
}

// SameTransformType reports whether a and b place content the same way, so
// that blending their numeric fields produces a continuous motion.
func SameTransformType(a, b TransformSnapshot) bool {
	return a.Alignment == b.Alignment &&
		a.BoundsType == b.BoundsType &&
		a.BoundsAlignment == b.BoundsAlignment
}

// LerpSnapshot blends every numeric component of a and b linearly. The
// alignment and bounds settings are taken from a.
func LerpSnapshot(a, b TransformSnapshot, t float64) TransformSnapshot {
	out := a
	out.Position = LerpVec(a.Position, b.Position, t)
	out.Scale = LerpVec(a.Scale, b.Scale, t)
	out.Rotation = Lerp(a.Rotation, b.Rotation, t)
	out.Bounds = LerpVec(a.Bounds, b.Bounds, t)
	out.Crop = LerpCrop(a.Crop, b.Crop, t)
	return out
}
