package dom

// Rect is a bounding rectangle in viewport coordinates.
type Rect struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
	Width  float64
	Height float64
}

// ZeroRect is substituted when a node cannot be measured.
//
//nolint:gochecknoglobals // Read-only sentinel value.
var ZeroRect = Rect{}

// NewRect builds a Rect from an origin and a size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Left:   left,
		Width:  width,
		Height: height,
	}
}

// IsZero reports whether every edge and extent is zero.
func (r Rect) IsZero() bool {
	return r == ZeroRect
}

// ClampToViewport intersects r with the viewport [0,width]x[0,height].
// The result may have negative extents when r lies entirely outside the viewport.
func (r Rect) ClampToViewport(width, height float64) Rect {
	top := max(r.Top, 0)
	left := max(r.Left, 0)
	bottom := min(height, r.Top+r.Height)
	right := min(width, r.Left+r.Width)

	return Rect{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
		Width:  right - left,
		Height: bottom - top,
	}
}
