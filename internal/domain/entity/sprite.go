package entity

import (
	"errors"
	"fmt"
)

// Player animation names
const (
	AnimStand = "stand"
	AnimStill = "still"
	AnimStep  = "step1"
	AnimLand  = "land"
)

// ErrUnknownAnimation is returned when playing an animation the sheet lacks
var ErrUnknownAnimation = errors.New("unknown animation")

// Animation is a named run of sprite sheet frames
type Animation struct {
	Frames    []int
	Next      string // Animation to play afterwards; empty holds the last frame
	Frequency int    // Ticks per frame
}

// SpriteSheet is a uniform grid of frames with named animations
type SpriteSheet struct {
	Name        string
	FrameCount  int
	FrameWidth  int
	FrameHeight int
	RegX, RegY  int

	animations map[string]Animation
}

// NewSpriteSheet validates the animations against the frame count
func NewSpriteSheet(name string, frameCount, frameWidth, frameHeight int, animations map[string]Animation) (*SpriteSheet, error) {
	if frameCount <= 0 {
		return nil, fmt.Errorf("sprite sheet %s: frame count must be positive", name)
	}

	anims := make(map[string]Animation, len(animations))
	for key, a := range animations {
		if len(a.Frames) == 0 {
			return nil, fmt.Errorf("sprite sheet %s: animation %s has no frames", name, key)
		}
		for _, f := range a.Frames {
			if f < 0 || f >= frameCount {
				return nil, fmt.Errorf("sprite sheet %s: animation %s frame %d out of range", name, key, f)
			}
		}
		if a.Next != "" {
			if _, ok := animations[a.Next]; !ok {
				return nil, fmt.Errorf("sprite sheet %s: animation %s: next %s: %w", name, key, a.Next, ErrUnknownAnimation)
			}
		}
		if a.Frequency < 1 {
			a.Frequency = 1
		}
		anims[key] = a
	}

	return &SpriteSheet{
		Name:        name,
		FrameCount:  frameCount,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		RegX:        frameWidth / 2,
		RegY:        frameHeight / 2,
		animations:  anims,
	}, nil
}

// Animation returns the named animation
func (s *SpriteSheet) Animation(name string) (Animation, bool) {
	a, ok := s.animations[name]
	return a, ok
}

// Sprite plays animations from a sprite sheet, one tick at a time
type Sprite struct {
	Sheet *SpriteSheet

	Rotation float64 // Degrees

	current string
	anim    Animation
	index   int
	ticks   int
	paused  bool
}

// NewSprite creates a stopped sprite showing frame 0
func NewSprite(sheet *SpriteSheet) *Sprite {
	return &Sprite{Sheet: sheet, paused: true}
}

// GotoAndPlay restarts the sprite on the named animation
func (s *Sprite) GotoAndPlay(name string) error {
	a, ok := s.Sheet.Animation(name)
	if !ok {
		return fmt.Errorf("sprite %s: %s: %w", s.Sheet.Name, name, ErrUnknownAnimation)
	}
	s.current = name
	s.anim = a
	s.index = 0
	s.ticks = 0
	s.paused = false
	return nil
}

// Advance moves the animation forward by one tick
func (s *Sprite) Advance() {
	if s.paused {
		return
	}

	s.ticks++
	if s.ticks < s.anim.Frequency {
		return
	}
	s.ticks = 0

	if s.index+1 < len(s.anim.Frames) {
		s.index++
		return
	}

	if s.anim.Next != "" {
		// Next was validated by NewSpriteSheet
		_ = s.GotoAndPlay(s.anim.Next)
		return
	}
	s.paused = true
}

// Frame returns the sheet frame currently shown
func (s *Sprite) Frame() int {
	if len(s.anim.Frames) == 0 {
		return 0
	}
	return s.anim.Frames[s.index]
}

// Current returns the name of the current animation
func (s *Sprite) Current() string {
	return s.current
}

// Playing returns true while the animation has frames or a follow-up left
func (s *Sprite) Playing() bool {
	return !s.paused
}
