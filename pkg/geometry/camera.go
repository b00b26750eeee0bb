package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// ErrDegenerateCamera is returned when the view direction and up vector
// cannot form an orthonormal basis
var ErrDegenerateCamera = errors.New("degenerate camera basis")

// Basis is the camera frame: U points right, V up and W backwards (away
// from the look-at point)
type Basis struct {
	U, V, W core.Vec3
}

// NewBasis builds the orthonormal camera frame from eye, target and up
func NewBasis(origin, lookAt, up core.Point3) (Basis, error) {
	back := origin.Subtract(lookAt)
	if back.LengthSquared() == 0 {
		return Basis{}, fmt.Errorf("%w: position and target coincide", ErrDegenerateCamera)
	}
	w := back.Normalize()
	right := up.Cross(w)
	if right.LengthSquared() < 1e-18 {
		return Basis{}, fmt.Errorf("%w: up %v is parallel to the view direction", ErrDegenerateCamera, up)
	}
	u := right.Normalize()
	v := w.Cross(u)
	return Basis{U: u, V: v, W: w}, nil
}

// PerspectiveCamera generates rays from a single eye point through a focal plane
type PerspectiveCamera struct {
	origin          core.Point3
	basis           Basis
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewPerspectiveCamera creates a perspective camera. vfov is the vertical
// field of view in degrees and aspectRatio is width/height.
func NewPerspectiveCamera(origin, lookAt, up core.Point3, vfov, aspectRatio, focalDistance float64) (*PerspectiveCamera, error) {
	if vfov <= 0 || vfov >= 180 {
		return nil, fmt.Errorf("vertical field of view must be in (0, 180), got %g", vfov)
	}
	if aspectRatio <= 0 {
		return nil, fmt.Errorf("aspect ratio must be positive, got %g", aspectRatio)
	}
	if focalDistance <= 0 {
		return nil, fmt.Errorf("focal distance must be positive, got %g", focalDistance)
	}
	basis, err := NewBasis(origin, lookAt, up)
	if err != nil {
		return nil, err
	}

	halfHeight := math.Tan(vfov*math.Pi/360.0) * focalDistance
	halfWidth := halfHeight * aspectRatio

	horizontal := basis.U.Multiply(2 * halfWidth)
	vertical := basis.V.Multiply(2 * halfHeight)
	lowerLeftCorner := origin.
		Subtract(basis.W.Multiply(focalDistance)).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &PerspectiveCamera{
		origin:          origin,
		basis:           basis,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}, nil
}

// GenerateRay returns the ray through the focal plane at NDC (s, t)
func (c *PerspectiveCamera) GenerateRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Basis returns the camera frame
func (c *PerspectiveCamera) Basis() Basis {
	return c.basis
}

// ScreenWindow is the orthographic viewport in camera-space units
type ScreenWindow struct {
	Left, Right, Bottom, Top float64
}

// DefaultScreenWindow spans [-aspect, aspect] x [-1, 1]
func DefaultScreenWindow(aspectRatio float64) ScreenWindow {
	return ScreenWindow{Left: -aspectRatio, Right: aspectRatio, Bottom: -1, Top: 1}
}

// OrthographicCamera generates parallel rays from a rectangular viewport
type OrthographicCamera struct {
	origin    core.Point3
	basis     Basis
	window    ScreenWindow
	direction core.Vec3
}

// NewOrthographicCamera creates an orthographic camera
func NewOrthographicCamera(origin, lookAt, up core.Point3, window ScreenWindow) (*OrthographicCamera, error) {
	if window.Right <= window.Left || window.Top <= window.Bottom {
		return nil, fmt.Errorf("empty screen window %+v", window)
	}
	basis, err := NewBasis(origin, lookAt, up)
	if err != nil {
		return nil, err
	}
	return &OrthographicCamera{
		origin:    origin,
		basis:     basis,
		window:    window,
		direction: basis.W.Negate(),
	}, nil
}

// GenerateRay returns the ray leaving the viewport at NDC (s, t); every ray
// shares the same direction
func (c *OrthographicCamera) GenerateRay(s, t float64) core.Ray {
	x := c.window.Left + (c.window.Right-c.window.Left)*s
	y := c.window.Bottom + (c.window.Top-c.window.Bottom)*t
	origin := c.origin.
		Add(c.basis.U.Multiply(x)).
		Add(c.basis.V.Multiply(y))

	return core.NewRay(origin, c.direction)
}

// Basis returns the camera frame
func (c *OrthographicCamera) Basis() Basis {
	return c.basis
}
