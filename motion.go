package motion

import "math"

// Vec2 is a 2D vector used for positions, scales, bounds and control points.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Crop is the number of content pixels removed from each edge of an element.
// Stored as float64 so it can be blended; hosts round when applying.
type Crop struct {
	Top, Bottom, Left, Right float64
}

// Round returns the crop with every edge rounded to the nearest pixel.
func (c Crop) Round() Crop {
	return Crop{
		Top:    math.Round(c.Top),
		Bottom: math.Round(c.Bottom),
		Left:   math.Round(c.Left),
		Right:  math.Round(c.Right),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill of a node.
var ColorWhite = Color{1, 1, 1, 1}

// Alignment is a bitmask selecting which point of an element its position
// refers to. The zero value is the centre.
type Alignment uint8

const (
	AlignCenter Alignment = 0
	AlignLeft   Alignment = 1 << 0
	AlignRight  Alignment = 1 << 1
	AlignTop    Alignment = 1 << 2
	AlignBottom Alignment = 1 << 3

	AlignTopLeft = AlignTop | AlignLeft
)

// BoundsType selects how an element's content is fitted into its bounding box.
type BoundsType uint8

const (
	BoundsNone          BoundsType = iota // no bounding box; scale applies
	BoundsStretch                         // stretch content to the box
	BoundsScaleInner                      // fit inside, keep aspect
	BoundsScaleOuter                      // cover the box, keep aspect
	BoundsScaleToWidth                    // match box width
	BoundsScaleToHeight                   // match box height
	BoundsMaxOnly                         // shrink to fit, never grow
)

// Behavior is the triggering and directionality policy of a Controller.
// Values are persisted and match the settings written by earlier versions.
type Behavior uint8

const (
	BehaviorNone        Behavior = iota // inert
	BehaviorOneWay                      // forward trigger only; replays from the start
	BehaviorRoundTrip                   // forward and backward triggers
	BehaviorSceneSwitch                 // scene activation replaces the triggers
)

// String returns the settings name of the behavior.
func (b Behavior) String() string {
	switch b {
	case BehaviorOneWay:
		return "one-way"
	case BehaviorRoundTrip:
		return "round-trip"
	case BehaviorSceneSwitch:
		return "scene-switch"
	default:
		return "none"
	}
}

// ParseBehavior converts a settings name back into a Behavior.
func ParseBehavior(s string) (Behavior, bool) {
	switch s {
	case "none":
		return BehaviorNone, true
	case "one-way":
		return BehaviorOneWay, true
	case "round-trip":
		return BehaviorRoundTrip, true
	case "scene-switch":
		return BehaviorSceneSwitch, true
	}
	return BehaviorNone, false
}

// PathType selects the Bezier order of a controller's position path.
type PathType uint8

const (
	PathLinear    PathType = iota // start → destination
	PathQuadratic                 // start → ctrl → destination
	PathCubic                     // start → ctrl → ctrl2 → destination
)

// Order returns the Bezier order of the path (1, 2 or 3).
func (p PathType) Order() int {
	switch p {
	case PathQuadratic:
		return 2
	case PathCubic:
		return 3
	default:
		return 1
	}
}

// String returns the settings name of the path type.
func (p PathType) String() string {
	switch p {
	case PathQuadratic:
		return "quadratic"
	case PathCubic:
		return "cubic"
	default:
		return "linear"
	}
}

// ParsePathType converts a settings name back into a PathType.
func ParsePathType(s string) (PathType, bool) {
	switch s {
	case "linear":
		return PathLinear, true
	case "quadratic":
		return PathQuadratic, true
	case "cubic":
		return PathCubic, true
	}
	return PathLinear, false
}

// Variation is a bitmask of the transform components a controller animates.
type Variation uint8

const (
	VariationPosition Variation = 1 << iota // animate position
	VariationSize                           // animate scale

	VariationBoth = VariationPosition | VariationSize
)

// Position reports whether the position is animated.
func (v Variation) Position() bool { return v&VariationPosition != 0 }

// Size reports whether the scale is animated.
func (v Variation) Size() bool { return v&VariationSize != 0 }
