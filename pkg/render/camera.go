package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/planetarium/pkg/math3d"
)

// maxPitch keeps the orbit away from the poles where LookAt degenerates.
const maxPitch = math.Pi/2 - 0.1

// settleEpsilon is the velocity below which a spring axis counts as at
// rest.
const settleEpsilon = 1e-4

// springAxis holds a velocity that a harmonica spring eases back to zero,
// so a key press keeps the camera drifting briefly after release.
type springAxis struct {
	Velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newSpringAxis(fps int) springAxis {
	return springAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// step returns the velocity to apply this frame and decays it.
func (a *springAxis) step() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if math.Abs(a.Velocity) < settleEpsilon && math.Abs(a.accel) < settleEpsilon {
		a.Velocity, a.accel = 0, 0
	}
	return v
}

// Camera orbits an eye point around a center.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	FOV  float64 // vertical field of view in radians
	Near float64
	Far  float64

	// Zoom never brings the eye closer than MinDistance or further than
	// MaxDistance from the center.
	MinDistance float64
	MaxDistance float64

	yaw, pitch, zoom springAxis
}

// NewCamera creates a camera at eye looking at center with a 45 degree
// field of view. fps sets the spring time step.
func NewCamera(eye, center, up math3d.Vec3, fps int) *Camera {
	if fps <= 0 {
		fps = 60
	}
	return &Camera{
		Eye:         eye,
		Center:      center,
		Up:          up,
		FOV:         math.Pi / 4,
		Near:        0.1,
		Far:         1000,
		MinDistance: 0.5,
		MaxDistance: 100,
		yaw:         newSpringAxis(fps),
		pitch:       newSpringAxis(fps),
		zoom:        newSpringAxis(fps),
	}
}

// DefaultCamera returns the camera of the planetarium scene: five units
// back on +Z looking at the origin.
func DefaultCamera(fps int) *Camera {
	return NewCamera(math3d.V3(0, 0, 5), math3d.Zero3(), math3d.Up(), fps)
}

// Distance returns the eye-center distance.
func (c *Camera) Distance() float64 {
	return c.Eye.Sub(c.Center).Len()
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Right returns the unit vector to the right of the view direction.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(c.Up).Normalize()
}

// Orbit rotates the eye around the center by the given yaw and pitch in
// radians, keeping the distance. Pitch is clamped short of the poles.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	rv := c.Eye.Sub(c.Center)
	r := rv.Len()
	if r == 0 {
		return
	}
	yaw := math.Atan2(rv.Z, rv.X) + deltaYaw
	pitch := math.Asin(math.Max(-1, math.Min(1, rv.Y/r))) + deltaPitch
	pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))

	c.Eye = c.Center.Add(math3d.V3(
		r*math.Cos(pitch)*math.Cos(yaw),
		r*math.Sin(pitch),
		r*math.Cos(pitch)*math.Sin(yaw),
	))
}

// Zoom moves the eye towards the center by delta (away if negative),
// clamped to [MinDistance, MaxDistance].
func (c *Camera) Zoom(delta float64) {
	rv := c.Eye.Sub(c.Center)
	r := rv.Len()
	if r == 0 {
		return
	}
	d := math.Max(c.MinDistance, math.Min(c.MaxDistance, r-delta))
	c.Eye = c.Center.Add(rv.Scale(d / r))
}

// MoveCenter pans eye and center together. delta is in camera space: X
// right, Y up, Z forward.
func (c *Camera) MoveCenter(delta math3d.Vec3) {
	fwd := c.Forward()
	right := c.Right()
	up := right.Cross(fwd)
	move := right.Scale(delta.X).Add(up.Scale(delta.Y)).Add(fwd.Scale(delta.Z))
	c.Eye = c.Eye.Add(move)
	c.Center = c.Center.Add(move)
}

// Spin adds angular velocity that Update applies and lets decay.
func (c *Camera) Spin(deltaYaw, deltaPitch float64) {
	c.yaw.Velocity += deltaYaw
	c.pitch.Velocity += deltaPitch
}

// Push adds zoom velocity that Update applies and lets decay.
func (c *Camera) Push(delta float64) {
	c.zoom.Velocity += delta
}

// Update advances the springs one frame. It reports whether the camera
// moved.
func (c *Camera) Update() bool {
	yaw, pitch, zoom := c.yaw.step(), c.pitch.step(), c.zoom.step()
	moved := false
	if yaw != 0 || pitch != 0 {
		c.Orbit(yaw, pitch)
		moved = true
	}
	if zoom != 0 {
		c.Zoom(zoom)
		moved = true
	}
	return moved
}

// ViewMatrix returns the look-at matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Eye, c.Center, c.Up)
}

// SetView replaces eye, center and up.
func (c *Camera) SetView(eye, center, up math3d.Vec3) {
	c.Eye, c.Center, c.Up = eye, center, up
}

// ProjectionMatrix returns the perspective projection for aspect
// (width/height).
func (c *Camera) ProjectionMatrix(aspect float64) math3d.Mat4 {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	return math3d.Perspective(c.FOV, aspect, c.Near, c.Far)
}
