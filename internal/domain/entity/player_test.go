package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPlayer(t *testing.T) *Player {
	t.Helper()
	body := NewDynamicBody(100, 8, 5, 5, 1, 1.5, 0.2)
	p, err := NewPlayer(body, NewSprite(createTestSheet(t)), 500, 0, ImpulseSettings{Step: 5, MaxSpeed: 10})
	require.NoError(t, err)
	return p
}

func TestNewPlayer(t *testing.T) {
	p := createTestPlayer(t)

	assert.Equal(t, AnimStill, p.Sprite.Current())
	assert.Equal(t, Vec2{X: 100, Y: 8}, p.Origin())
}

func TestNewPlayer_MissingStillAnimation(t *testing.T) {
	sheet, err := NewSpriteSheet("s", 1, 10, 10, map[string]Animation{"a": {Frames: []int{0}}})
	require.NoError(t, err)

	_, err = NewPlayer(NewDynamicBody(0, 0, 1, 1, 1, 1, 0), NewSprite(sheet), 0, 0, ImpulseSettings{})
	assert.ErrorIs(t, err, ErrUnknownAnimation)
}

func TestPlayer_Forward(t *testing.T) {
	t.Run("steps toward -x and plays step animation", func(t *testing.T) {
		p := createTestPlayer(t)

		require.NoError(t, p.Forward())

		assert.InDelta(t, -5.0, p.Body.VX, 1e-9)
		assert.Equal(t, AnimStep, p.Sprite.Current())
	})

	t.Run("caps at max speed", func(t *testing.T) {
		p := createTestPlayer(t)

		require.NoError(t, p.Forward())
		require.NoError(t, p.Forward())
		require.NoError(t, p.Forward())

		assert.InDelta(t, -10.0, p.Body.VX, 1e-9)
	})

	t.Run("reverses backward motion", func(t *testing.T) {
		p := createTestPlayer(t)
		p.Body.VX = 8

		require.NoError(t, p.Forward())

		assert.InDelta(t, 3.0, p.Body.VX, 1e-9)
	})
}

func TestPlayer_Backward(t *testing.T) {
	p := createTestPlayer(t)

	p.Backward()
	p.Backward()
	p.Backward()

	assert.InDelta(t, 10.0, p.Body.VX, 1e-9)
	assert.Equal(t, AnimStill, p.Sprite.Current(), "no backstep animation")
}

func TestPlayer_Stand(t *testing.T) {
	p := createTestPlayer(t)

	require.NoError(t, p.Stand())

	assert.Equal(t, AnimStand, p.Sprite.Current())
}

func TestPlayer_Advance(t *testing.T) {
	p := createTestPlayer(t)

	var camX, camY float64
	var parallax []float64
	p.OnCamera = func(x, y float64) { camX, camY = x, y }
	p.OnParallax = func(d float64) { parallax = append(parallax, d) }

	t.Run("camera rests at viewport", func(t *testing.T) {
		p.Advance(30)

		assert.Equal(t, 500.0, camX)
		assert.Equal(t, 0.0, camY)
		assert.Equal(t, []float64{0}, parallax)
	})

	t.Run("camera follows displacement", func(t *testing.T) {
		p.Body.SetPosition(98, 9)
		p.Advance(30)

		assert.InDelta(t, 560.0, camX, 1e-9)
		assert.InDelta(t, -30.0, camY, 1e-9)
		assert.InDelta(t, 2.0, parallax[1], 1e-9)
	})

	t.Run("parallax is relative to last tick", func(t *testing.T) {
		p.Body.SetPosition(97, 9)
		p.Advance(30)

		assert.InDelta(t, 1.0, parallax[2], 1e-9)
	})

	t.Run("sprite rotation follows body angle", func(t *testing.T) {
		p.Body.Angle = 3.141592653589793 / 2
		p.Advance(30)

		assert.InDelta(t, 90.0, p.Sprite.Rotation, 1e-9)
	})
}

func TestPlayer_AdvanceWithoutCallbacks(t *testing.T) {
	p := createTestPlayer(t)

	assert.NotPanics(t, func() { p.Advance(30) })
}
