package panel

import (
	"math"

	luna "github.com/AtlasAudioDesigns/Luna"
	"github.com/viterin/vek"
)

type (
	// Corner names one of the four blend anchors of the surface.
	Corner int

	// CursorID picks one of the two independently draggable cursors.
	CursorID int

	// Point is a position on the surface, in surface pixels.
	Point struct{ X, Y float64 }

	// BlendWeights holds one normalized weight per corner, indexed by
	// Corner. The weights sum to 1.
	BlendWeights [4]float64

	// Surface is the two-cursor corner-blend pad: both cursors live
	// inside a circle centered on the pad, the primary cursor's position
	// yields a bilinear blend of the four corner presets, and each corner
	// carries the name of a preset from the main store. All methods are
	// single-goroutine, like the rest of the model.
	Surface struct {
		width, height float64
		radius        float64
		pos           [2]Point
		drag          int // index into pos, or -1
		corners       [4]string
	}
)

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

const (
	PrimaryCursor CursorID = iota
	SecondaryCursor
)

// Default pad geometry, matching the full-window pad of the control
// surface.
const (
	DefaultSurfaceWidth  = 1100
	DefaultSurfaceHeight = 800
	DefaultSurfaceRadius = 200
)

// pressTolerance is how close (Manhattan distance, surface pixels) a
// press must land to a cursor to begin dragging it.
const pressTolerance = 15

// resetOffset is how far from center the two cursors sit after a reset,
// primary to the left, secondary to the right.
const resetOffset = 20

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	}
	return "unknown"
}

// NewSurface returns a surface of the given size with its clamp circle
// centered. Radius <= 0 falls back to the default.
func NewSurface(width, height, radius float64) *Surface {
	if radius <= 0 {
		radius = DefaultSurfaceRadius
	}
	s := &Surface{width: width, height: height, radius: radius, drag: -1}
	s.Reset()
	return s
}

func (s *Surface) center() Point { return Point{X: s.width / 2, Y: s.height / 2} }

// Reset recenters both cursors to their default offset positions and
// ends any drag in progress.
func (s *Surface) Reset() {
	c := s.center()
	s.pos[PrimaryCursor] = Point{X: c.X - resetOffset, Y: c.Y}
	s.pos[SecondaryCursor] = Point{X: c.X + resetOffset, Y: c.Y}
	s.drag = -1
}

// Cursor returns the current position of a cursor.
func (s *Surface) Cursor(id CursorID) Point { return s.pos[id] }

// MoveCursor places a cursor at p, clamped to the circle.
func (s *Surface) MoveCursor(id CursorID, p Point) {
	s.pos[id] = s.clampToCircle(p)
}

// PointerDown begins a drag when the press lands near a cursor, primary
// cursor first. Presses elsewhere are ignored; no cursor is created.
func (s *Surface) PointerDown(p Point) bool {
	for _, id := range [2]CursorID{PrimaryCursor, SecondaryCursor} {
		d := s.pos[id]
		if math.Abs(d.X-p.X)+math.Abs(d.Y-p.Y) < pressTolerance {
			s.drag = int(id)
			return true
		}
	}
	return false
}

// PointerMove drags whichever cursor PointerDown grabbed, if any.
func (s *Surface) PointerMove(p Point) {
	if s.drag < 0 {
		return
	}
	s.MoveCursor(CursorID(s.drag), p)
}

// PointerUp ends the drag.
func (s *Surface) PointerUp() { s.drag = -1 }

// Dragging reports which cursor is being dragged, if any.
func (s *Surface) Dragging() (CursorID, bool) {
	if s.drag < 0 {
		return 0, false
	}
	return CursorID(s.drag), true
}

// clampToCircle projects a point back onto the circle when it falls
// outside: the offset vector from center is scaled by radius/distance.
func (s *Surface) clampToCircle(p Point) Point {
	c := s.center()
	dx, dy := p.X-c.X, p.Y-c.Y
	dist := math.Hypot(dx, dy)
	if dist <= s.radius {
		return p
	}
	scale := s.radius / dist
	return Point{X: c.X + dx*scale, Y: c.Y + dy*scale}
}

// Blend computes the four corner weights from the primary cursor's
// position normalized to the surface's bounding box. The raw bilinear
// weights are renormalized to sum to 1; a zero total cannot occur for
// in-range coordinates but leaves the weights untouched rather than
// dividing by it.
func (s *Surface) Blend() BlendWeights {
	x := s.pos[PrimaryCursor].X / s.width
	y := s.pos[PrimaryCursor].Y / s.height
	top, bottom := 1-y, y
	left, right := 1-x, x
	w := BlendWeights{
		TopLeft:     left * top,
		TopRight:    right * top,
		BottomLeft:  left * bottom,
		BottomRight: right * bottom,
	}
	total := w[TopLeft] + w[TopRight] + w[BottomLeft] + w[BottomRight]
	if total == 0 {
		return w
	}
	for i := range w {
		w[i] /= total
	}
	return w
}

// AssignCorner binds a corner to a preset name. Pure bookkeeping; the
// numeric state is untouched.
func (s *Surface) AssignCorner(c Corner, presetName string) {
	s.corners[c] = presetName
}

// CornerPreset returns the preset name a corner currently represents.
func (s *Surface) CornerPreset(c Corner) string { return s.corners[c] }

// CycleCorner advances a corner to the next name in names, wrapping. A
// corner holding a name not in the list (or no name) starts from the
// first entry.
func (s *Surface) CycleCorner(c Corner, names []string) {
	if len(names) == 0 {
		return
	}
	next := 0
	for i, n := range names {
		if n == s.corners[c] {
			next = (i + 1) % len(names)
			break
		}
	}
	s.corners[c] = names[next]
}

// Morph blends four corner value sets into one, weighting each corner's
// parameters by w. Parameters missing from a corner set contribute that
// corner's weight at zero. The parameter order of the output vectors
// follows names.
func Morph(w BlendWeights, names []string, sets [4]map[string]float64) map[string]float64 {
	acc := make([]float64, len(names))
	vec := make([]float64, len(names))
	tmp := make([]float64, len(names))
	for corner, set := range sets {
		for i, n := range names {
			vec[i] = set[n]
		}
		vek.MulNumber_Into(tmp, vec, w[corner])
		vek.Add_Inplace(acc, tmp)
	}
	ret := make(map[string]float64, len(names))
	for i, n := range names {
		ret[n] = luna.Clamp(acc[i])
	}
	return ret
}
