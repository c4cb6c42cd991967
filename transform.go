package motion

import "math"

// contentMatrix computes the affine matrix mapping cropped content pixels of
// an element with content size w×h onto the scene canvas, as placed by s.
// Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale (or fit to bounds) -> Translate(alignment offset) -> Rotate -> Translate(position)
func contentMatrix(s TransformSnapshot, w, h int) [6]float64 {
	cw := math.Max(float64(w)-s.Crop.Left-s.Crop.Right, 0)
	ch := math.Max(float64(h)-s.Crop.Top-s.Crop.Bottom, 0)

	sx, sy := s.Scale.X, s.Scale.Y
	boxW, boxH := cw*sx, ch*sy
	var innerX, innerY float64

	if s.BoundsType != BoundsNone && cw > 0 && ch > 0 {
		sx, sy = boundsScale(s.BoundsType, s.Bounds.X, s.Bounds.Y, cw, ch)
		boxW, boxH = s.Bounds.X, s.Bounds.Y
		fx, fy := alignFactors(s.BoundsAlignment)
		innerX = (boxW - cw*sx) * fx
		innerY = (boxH - ch*sy) * fy
	}

	fx, fy := alignFactors(s.Alignment)
	ox := -boxW*fx + innerX
	oy := -boxH*fy + innerY

	sin, cos := math.Sincos(s.Rotation * math.Pi / 180)

	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		s.Position.X + cos*ox - sin*oy,
		s.Position.Y + sin*ox + cos*oy,
	}
}

// alignFactors returns the fraction of a box's width and height that lies
// before the alignment point.
func alignFactors(a Alignment) (fx, fy float64) {
	fx, fy = 0.5, 0.5
	switch {
	case a&AlignLeft != 0:
		fx = 0
	case a&AlignRight != 0:
		fx = 1
	}
	switch {
	case a&AlignTop != 0:
		fy = 0
	case a&AlignBottom != 0:
		fy = 1
	}
	return fx, fy
}

// boundsScale returns the content scale that fits cw×ch into a bw×bh box.
func boundsScale(t BoundsType, bw, bh, cw, ch float64) (sx, sy float64) {
	wr, hr := bw/cw, bh/ch
	switch t {
	case BoundsStretch:
		return wr, hr
	case BoundsScaleInner:
		s := math.Min(wr, hr)
		return s, s
	case BoundsScaleOuter:
		s := math.Max(wr, hr)
		return s, s
	case BoundsScaleToWidth:
		return wr, wr
	case BoundsScaleToHeight:
		return hr, hr
	case BoundsMaxOnly:
		s := math.Min(math.Min(wr, hr), 1)
		return s, s
	default:
		return 1, 1
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// contentCenter returns the scene-space centre of item's cropped content as
// placed by s.
func contentCenter(item Element, s TransformSnapshot) Vec2 {
	w, h := item.BaseSize()
	m := contentMatrix(s, w, h)
	cw := math.Max(float64(w)-s.Crop.Left-s.Crop.Right, 0)
	ch := math.Max(float64(h)-s.Crop.Top-s.Crop.Bottom, 0)
	x, y := transformPoint(m, cw/2, ch/2)
	return Vec2{x, y}
}

// computeLocalTransform returns the content matrix of a node at its current
// placement.
func computeLocalTransform(n *Node) [6]float64 {
	w, h := n.Size()
	return contentMatrix(n.Transform(), w, h)
}

// SceneBounds returns the axis-aligned box covering the node's drawn content.
func (n *Node) SceneBounds() Rect {
	w, h := n.Size()
	s := n.Transform()
	m := contentMatrix(s, w, h)
	cw := math.Max(float64(w)-s.Crop.Left-s.Crop.Right, 0)
	ch := math.Max(float64(h)-s.Crop.Top-s.Crop.Bottom, 0)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {cw, 0}, {0, ch}, {cw, ch}} {
		x, y := transformPoint(m, p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
