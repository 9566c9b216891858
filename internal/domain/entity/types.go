package entity

// BodyType distinguishes bodies moved by the simulation from fixed ones
type BodyType int

const (
	BodyStatic BodyType = iota
	BodyDynamic
)

// String returns the string representation of the body type
func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "Static"
	case BodyDynamic:
		return "Dynamic"
	default:
		return "Unknown"
	}
}

// Vec2 is a 2D vector in meters unless stated otherwise
type Vec2 struct {
	X, Y float64
}
