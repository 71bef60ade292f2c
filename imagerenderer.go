package motor

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSurface is the surface produced by ImageRenderer: an offscreen
// *ebiten.Image sized to the node's resolved size, positioned at the node's
// resolved offset inside its parent surface.
type ImageSurface struct {
	node     *Node
	image    *ebiten.Image
	w, h     int
	x, y     float64
	parent   *ImageSurface
	children []*ImageSurface
}

// Node returns the node the surface belongs to.
func (is *ImageSurface) Node() *Node {
	return is.node
}

// Image returns the surface image, or nil while the node has no drawable
// size. Callers may draw into it; it is reallocated when the size changes.
func (is *ImageSurface) Image() *ebiten.Image {
	return is.image
}

// Bounds returns the surface size in pixels.
func (is *ImageSurface) Bounds() (width, height int) {
	return is.w, is.h
}

// Position returns the surface offset inside its parent surface.
func (is *ImageSurface) Position() (x, y float64) {
	return is.x, is.y
}

// Parent returns the parent surface, or nil.
func (is *ImageSurface) Parent() *ImageSurface {
	return is.parent
}

// NumChildren returns the number of linked child surfaces.
func (is *ImageSurface) NumChildren() int {
	return len(is.children)
}

func (is *ImageSurface) removeChild(child *ImageSurface) {
	for i, c := range is.children {
		if c == child {
			copy(is.children[i:], is.children[i+1:])
			is.children[len(is.children)-1] = nil
			is.children = is.children[:len(is.children)-1]
			return
		}
	}
}

// ImageRenderer is a Renderer backed by Ebitengine offscreen images. It only
// allocates, positions, and composites surface images; what is drawn into
// each image is left to the caller.
type ImageRenderer struct {
	surfaces int
}

// NewImageRenderer creates an ImageRenderer.
func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{}
}

// CreateSurface implements Renderer.
func (r *ImageRenderer) CreateSurface(n *Node) Surface {
	r.surfaces++
	return &ImageSurface{node: n}
}

// Attach implements Renderer.
func (r *ImageRenderer) Attach(parent, child Surface) {
	p, ok1 := parent.(*ImageSurface)
	c, ok2 := child.(*ImageSurface)
	if !ok1 || !ok2 || c.parent == p {
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = p
	p.children = append(p.children, c)
}

// Detach implements Renderer.
func (r *ImageRenderer) Detach(child Surface) {
	c, ok := child.(*ImageSurface)
	if !ok || c.parent == nil {
		return
	}
	c.parent.removeChild(c)
	c.parent = nil
}

// maxSurfaceSize is the largest image edge, in pixels, ImageRenderer
// allocates.
const maxSurfaceSize = 16384

// drawable reports whether d can back an image edge.
func drawable(d Dim) bool {
	return d.Known && d.Value <= maxSurfaceSize
}

// ApplyResolvedSize implements Renderer. The image is reallocated when the
// pixel size changes and released while X or Y is unknown, rounds to zero,
// or exceeds maxSurfaceSize.
func (r *ImageRenderer) ApplyResolvedSize(s Surface, size Size) {
	is, ok := s.(*ImageSurface)
	if !ok {
		return
	}
	w, h := 0, 0
	if drawable(size.X) && drawable(size.Y) {
		w = int(math.Ceil(size.X.Value))
		h = int(math.Ceil(size.Y.Value))
	}
	if w == is.w && h == is.h && (is.image != nil) == (w > 0 && h > 0) {
		return
	}
	if is.image != nil {
		is.image.Deallocate()
		is.image = nil
	}
	is.w, is.h = w, h
	if w > 0 && h > 0 {
		is.image = ebiten.NewImage(w, h)
	}
}

// ApplyResolvedOffset implements OffsetApplier. Unknown axes keep their
// previous position.
func (r *ImageRenderer) ApplyResolvedOffset(s Surface, offset Size) {
	is, ok := s.(*ImageSurface)
	if !ok {
		return
	}
	if offset.X.Known {
		is.x = offset.X.Value
	}
	if offset.Y.Known {
		is.y = offset.Y.Value
	}
}

// Surfaces returns the number of surfaces created so far.
func (r *ImageRenderer) Surfaces() int {
	return r.surfaces
}

// Composite draws the surface tree rooted at root onto dst, children after
// parents in child order, each at its accumulated offset.
func (r *ImageRenderer) Composite(dst *ebiten.Image, root Surface) {
	is, ok := root.(*ImageSurface)
	if !ok || dst == nil {
		return
	}
	composite(dst, is, 0, 0)
}

func composite(dst *ebiten.Image, is *ImageSurface, ox, oy float64) {
	x, y := ox+is.x, oy+is.y
	if is.image != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(x, y)
		dst.DrawImage(is.image, &op)
	}
	for _, c := range is.children {
		composite(dst, c, x, y)
	}
}
