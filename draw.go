package motion

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white image used to fill nodes
// that have no content image.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Drawer is anything that paints itself onto an ebiten image.
type Drawer interface {
	Draw(dst *ebiten.Image)
}

// geoM converts an affine matrix [a, b, c, d, tx, ty] into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw paints the scene onto dst, back to front. Nodes without an Image are
// drawn as solid rectangles of their content size.
func (s *Scene) Draw(dst *ebiten.Image) {
	if s.ClearColor.A > 0 {
		dst.Fill(s.ClearColor.toRGBA())
	}
	var op ebiten.DrawImageOptions
	for _, n := range s.items {
		if !n.visible {
			continue
		}
		n.draw(dst, &op)
	}
}

func (n *Node) draw(dst *ebiten.Image, op *ebiten.DrawImageOptions) {
	w, h := n.Size()
	cw := w - int(n.Crop.Left) - int(n.Crop.Right)
	ch := h - int(n.Crop.Top) - int(n.Crop.Bottom)
	if cw <= 0 || ch <= 0 {
		return
	}

	op.GeoM.Reset()
	op.ColorScale.Reset()
	a := float32(n.Color.A)
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)

	if n.Image == nil {
		op.GeoM.Scale(float64(cw), float64(ch))
		op.GeoM.Concat(geoM(computeLocalTransform(n)))
		dst.DrawImage(whitePixel(), op)
		return
	}

	src := n.Image
	if n.Crop != (Crop{}) {
		left, top := int(n.Crop.Left), int(n.Crop.Top)
		src = src.SubImage(image.Rect(left, top, left+cw, top+ch)).(*ebiten.Image)
	}
	op.GeoM.Concat(geoM(computeLocalTransform(n)))
	dst.DrawImage(src, op)
}

// toRGBA converts a Color into an 8-bit non-premultiplied color.
func (c Color) toRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// EbitenRenderer draws transition frames onto Target. A and B are the
// transition sources drawn by RenderDirect; scenes given to RenderScene are
// drawn when they implement Drawer.
type EbitenRenderer struct {
	Target *ebiten.Image
	A, B   Drawer
}

// RenderScene implements Renderer.
func (r *EbitenRenderer) RenderScene(scene SceneGraph) {
	if d, ok := scene.(Drawer); ok {
		d.Draw(r.Target)
	}
}

// RenderDirect implements Renderer.
func (r *EbitenRenderer) RenderDirect(side Side) {
	src := r.A
	if side == SideB {
		src = r.B
	}
	if src != nil {
		src.Draw(r.Target)
	}
}
