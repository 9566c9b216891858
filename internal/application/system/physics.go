package system

import (
	"fmt"
	"math"

	"github.com/kvartborg/vector"
	"github.com/solarlune/resolv"
	"github.com/younwookim/footfall/internal/domain/entity"
	"github.com/younwookim/footfall/internal/infrastructure/config"
)

// Collision tags
const (
	TagSolid   = "solid"
	TagDynamic = "dynamic"
	TagStatic  = "static"
)

// PhysicsSystem moves box bodies through a resolv space.
// Bodies live in meters; the space is laid out in pixels.
type PhysicsSystem struct {
	config         *config.PhysicsConfig
	pixelsPerMeter float64
	space          *resolv.Space

	objects map[*entity.Body]*resolv.Object
	bodies  map[*resolv.Object]*entity.Body
	dynamic []*entity.Body
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, pixelsPerMeter float64) (*PhysicsSystem, error) {
	if pixelsPerMeter <= 0 {
		return nil, fmt.Errorf("pixels per meter must be positive, got %v", pixelsPerMeter)
	}
	if cfg.Space.Width <= 0 || cfg.Space.Height <= 0 || cfg.Space.CellSize <= 0 {
		return nil, fmt.Errorf("invalid physics space %dx%d cell %d", cfg.Space.Width, cfg.Space.Height, cfg.Space.CellSize)
	}

	return &PhysicsSystem{
		config:         cfg,
		pixelsPerMeter: pixelsPerMeter,
		space:          resolv.NewSpace(cfg.Space.Width, cfg.Space.Height, cfg.Space.CellSize, cfg.Space.CellSize),
		objects:        make(map[*entity.Body]*resolv.Object),
		bodies:         make(map[*resolv.Object]*entity.Body),
	}, nil
}

// AddDynamic registers a body moved by the simulation
func (s *PhysicsSystem) AddDynamic(body *entity.Body) {
	if _, ok := s.objects[body]; ok {
		return
	}
	s.add(body, TagDynamic)
	s.dynamic = append(s.dynamic, body)
}

// AddStatic registers a fixed body. Only solid bodies stop dynamic ones.
func (s *PhysicsSystem) AddStatic(body *entity.Body, solid bool) {
	if solid {
		s.add(body, TagStatic, TagSolid)
		return
	}
	s.add(body, TagStatic)
}

func (s *PhysicsSystem) add(body *entity.Body, tags ...string) {
	if _, ok := s.objects[body]; ok {
		return
	}
	corner := body.Min()
	w := body.W * s.pixelsPerMeter
	h := body.H * s.pixelsPerMeter
	obj := resolv.NewObject(corner.X*s.pixelsPerMeter, corner.Y*s.pixelsPerMeter, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	s.space.Add(obj)

	s.objects[body] = obj
	s.bodies[obj] = body
}

// Remove unregisters a body
func (s *PhysicsSystem) Remove(body *entity.Body) {
	obj, ok := s.objects[body]
	if !ok {
		return
	}
	s.space.Remove(obj)
	delete(s.objects, body)
	delete(s.bodies, obj)
	for i, b := range s.dynamic {
		if b == body {
			s.dynamic = append(s.dynamic[:i], s.dynamic[i+1:]...)
			break
		}
	}
}

// Sync moves the collision object to the body's current position.
// Call it after moving a body outside Step.
func (s *PhysicsSystem) Sync(body *entity.Body) {
	obj, ok := s.objects[body]
	if !ok {
		return
	}
	corner := body.Min()
	obj.X = corner.X * s.pixelsPerMeter
	obj.Y = corner.Y * s.pixelsPerMeter
	obj.Update()
}

// Step advances every dynamic body by dt seconds
func (s *PhysicsSystem) Step(dt float64) {
	for _, body := range s.dynamic {
		s.stepBody(body, dt)
	}
}

func (s *PhysicsSystem) stepBody(body *entity.Body, dt float64) {
	obj := s.objects[body]

	// Gravity
	body.VY += s.config.Gravity * dt

	// Ground friction decelerates sliding bodies
	if body.OnGround {
		s.applyFriction(body, obj, dt)
	}

	s.moveX(body, obj, body.VX*dt*s.pixelsPerMeter)
	s.moveY(body, obj, body.VY*dt*s.pixelsPerMeter)
	obj.Update()

	body.X = obj.X/s.pixelsPerMeter + body.W/2
	body.Y = obj.Y/s.pixelsPerMeter + body.H/2
}

func (s *PhysicsSystem) applyFriction(body *entity.Body, obj *resolv.Object, dt float64) {
	ground := s.groundBelow(obj)
	if ground == nil {
		return
	}

	mu := math.Sqrt(body.Friction * ground.Friction)
	decel := mu * s.config.Gravity * dt
	switch {
	case body.VX > decel:
		body.VX -= decel
	case body.VX < -decel:
		body.VX += decel
	default:
		body.VX = 0
	}
}

// groundBelow returns the solid body directly under obj, if any
func (s *PhysicsSystem) groundBelow(obj *resolv.Object) *entity.Body {
	_, solid := s.blocking(obj, 0, 1)
	if solid == nil {
		return nil
	}
	return s.bodies[solid]
}

// blocking returns the nearest solid that obj would overlap after moving by
// dx, dy and the delta that brings obj into contact with it.
// resolv's Check only reports objects sharing grid cells, so every candidate
// is confirmed with a box overlap test.
func (s *PhysicsSystem) blocking(obj *resolv.Object, dx, dy float64) (vector.Vector, *resolv.Object) {
	check := obj.Check(dx, dy, TagSolid)
	if check == nil {
		return nil, nil
	}

	var (
		nearest *resolv.Object
		contact vector.Vector
	)
	for _, solid := range check.ObjectsByTags(TagSolid) {
		if !overlaps(obj, solid, dx, dy) {
			continue
		}
		c := check.ContactWithObject(solid)
		if nearest == nil || c.Magnitude() < contact.Magnitude() {
			nearest = solid
			contact = c
		}
	}
	return contact, nearest
}

// contactSlop is how far (pixels) boxes may interpenetrate before they count as overlapping
const contactSlop = 1e-6

// overlaps reports whether obj moved by dx, dy overlaps other.
// Boxes that only touch along an edge do not overlap.
func overlaps(obj, other *resolv.Object, dx, dy float64) bool {
	return obj.X+dx < other.X+other.W-contactSlop &&
		obj.X+obj.W+dx > other.X+contactSlop &&
		obj.Y+dy < other.Y+other.H-contactSlop &&
		obj.Y+obj.H+dy > other.Y+contactSlop
}

// moveX moves horizontally, stopping or bouncing at solid objects
func (s *PhysicsSystem) moveX(body *entity.Body, obj *resolv.Object, dx float64) {
	if dx == 0 {
		return
	}

	if contact, solid := s.blocking(obj, dx, 0); solid != nil {
		obj.X += contact.X()
		body.VX = s.bounce(body.VX, body, s.bodies[solid])
		return
	}
	obj.X += dx
}

// moveY moves vertically and updates OnGround
func (s *PhysicsSystem) moveY(body *entity.Body, obj *resolv.Object, dy float64) {
	checkDist := dy
	if dy >= 0 {
		checkDist++
	}

	if contact, solid := s.blocking(obj, 0, checkDist); solid != nil {
		obj.Y += contact.Y()
		landing := dy >= 0
		body.VY = s.bounce(body.VY, body, s.bodies[solid])
		body.OnGround = landing && body.VY == 0
		return
	}

	body.OnGround = false
	obj.Y += dy
}

// bounce returns the velocity after hitting other.
// Impacts slower than the velocity threshold stop dead.
func (s *PhysicsSystem) bounce(v float64, body, other *entity.Body) float64 {
	if math.Abs(v) < s.config.VelocityThreshold {
		return 0
	}
	restitution := body.Restitution
	if other != nil {
		restitution = math.Max(restitution, other.Restitution)
	}
	return -v * restitution
}

// Space returns the collision space
func (s *PhysicsSystem) Space() *resolv.Space {
	return s.space
}

// BodyCount returns the number of registered bodies
func (s *PhysicsSystem) BodyCount() int {
	return len(s.objects)
}
