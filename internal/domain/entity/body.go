package entity

// Body is a box-shaped physical body.
// Position is the box centre; all lengths are in meters and velocities in m/s.
type Body struct {
	Type BodyType

	X, Y   float64 // Centre
	W, H   float64
	VX, VY float64
	Angle  float64 // Radians

	Mass        float64
	Friction    float64
	Restitution float64

	OnGround bool
}

// NewDynamicBody creates a body moved by the simulation.
// Mass is density times area.
func NewDynamicBody(x, y, w, h, density, friction, restitution float64) *Body {
	return &Body{
		Type:        BodyDynamic,
		X:           x,
		Y:           y,
		W:           w,
		H:           h,
		Mass:        density * w * h,
		Friction:    friction,
		Restitution: restitution,
	}
}

// NewStaticBody creates a body that never moves on its own
func NewStaticBody(x, y, w, h, friction, restitution float64) *Body {
	return &Body{
		Type:        BodyStatic,
		X:           x,
		Y:           y,
		W:           w,
		H:           h,
		Friction:    friction,
		Restitution: restitution,
	}
}

// IsStatic returns true for bodies the simulation does not move
func (b *Body) IsStatic() bool {
	return b.Type == BodyStatic
}

// Center returns the body centre
func (b *Body) Center() Vec2 {
	return Vec2{X: b.X, Y: b.Y}
}

// SetPosition moves the body centre
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// Min returns the top-left corner
func (b *Body) Min() Vec2 {
	return Vec2{X: b.X - b.W/2, Y: b.Y - b.H/2}
}

// ApplyImpulseX changes horizontal velocity by impulse / mass.
// Static and massless bodies ignore impulses.
func (b *Body) ApplyImpulseX(impulse float64) {
	if b.IsStatic() || b.Mass <= 0 {
		return
	}
	b.VX += impulse / b.Mass
}
