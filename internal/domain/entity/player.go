package entity

import "math"

// ImpulseSettings configures the walking impulse
type ImpulseSettings struct {
	Step     float64 // Velocity change per step (m/s)
	MaxSpeed float64 // Horizontal speed cap (m/s)
}

// Player is the walking character: a dynamic body with an animated sprite.
// The camera follows the body's displacement from where it started.
type Player struct {
	Body    *Body
	Sprite  *Sprite
	Impulse ImpulseSettings

	origin   Vec2
	recent   Vec2
	viewport Vec2

	// OnCamera receives the playspace offset (pixels) each tick
	OnCamera func(x, y float64)
	// OnParallax receives the horizontal distance moved (meters) each tick
	OnParallax func(amount float64)
}

// NewPlayer creates a player standing still at the body's position.
// viewportX/Y is the screen offset of the playspace when the camera is at rest.
func NewPlayer(body *Body, sprite *Sprite, viewportX, viewportY float64, impulse ImpulseSettings) (*Player, error) {
	if err := sprite.GotoAndPlay(AnimStill); err != nil {
		return nil, err
	}

	start := body.Center()
	return &Player{
		Body:     body,
		Sprite:   sprite,
		Impulse:  impulse,
		origin:   start,
		recent:   start,
		viewport: Vec2{X: viewportX, Y: viewportY},
	}, nil
}

// impulse pushes the body one step toward direction, capped at MaxSpeed
func (p *Player) impulse(direction float64) {
	velocity := p.Body.VX
	var target float64
	if direction < 0 {
		target = math.Max(velocity-p.Impulse.Step, -p.Impulse.MaxSpeed)
	} else {
		target = math.Min(velocity+p.Impulse.Step, p.Impulse.MaxSpeed)
	}
	p.Body.ApplyImpulseX(p.Body.Mass * (target - velocity))
}

// Forward steps toward -x and plays the step animation
func (p *Player) Forward() error {
	p.impulse(-1)
	return p.Sprite.GotoAndPlay(AnimStep)
}

// Backward steps toward +x. There is no backstep animation.
func (p *Player) Backward() {
	p.impulse(1)
}

// Stand plays the stand animation
func (p *Player) Stand() error {
	return p.Sprite.GotoAndPlay(AnimStand)
}

// Advance publishes camera and parallax for this tick and advances the sprite
func (p *Player) Advance(pixelsPerMeter float64) {
	current := p.Body.Center()

	camX := (p.origin.X-current.X)*pixelsPerMeter + p.viewport.X
	camY := (p.origin.Y-current.Y)*pixelsPerMeter + p.viewport.Y
	if p.OnCamera != nil {
		p.OnCamera(camX, camY)
	}

	if p.OnParallax != nil {
		p.OnParallax(p.recent.X - current.X)
	}
	p.recent = current

	p.Sprite.Rotation = p.Body.Angle * (180 / math.Pi)
	p.Sprite.Advance()
}

// Origin returns where the body started
func (p *Player) Origin() Vec2 {
	return p.origin
}
