package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/footfall/internal/domain/entity"
	"github.com/younwookim/footfall/internal/infrastructure/config"
)

const testDT = 1.0 / 30.0

func createTestPhysicsConfig() *config.PhysicsConfig {
	return &config.PhysicsConfig{
		Gravity:           10,
		VelocityThreshold: 1,
		Impulse:           config.ImpulseConfig{Step: 5, MaxSpeed: 10},
		Space:             config.SpaceConfig{Width: 1000, Height: 1000, CellSize: 10},
	}
}

// createTestWorld returns a physics system at 10 px/m with a solid floor whose top is y=49m
func createTestWorld(t *testing.T) (*PhysicsSystem, *entity.Body) {
	t.Helper()
	sys, err := NewPhysicsSystem(createTestPhysicsConfig(), 10)
	require.NoError(t, err)

	floor := entity.NewStaticBody(50, 50, 100, 2, 1, 0)
	sys.AddStatic(floor, true)
	return sys, floor
}

func TestNewPhysicsSystem_Validation(t *testing.T) {
	t.Run("rejects non-positive scale", func(t *testing.T) {
		_, err := NewPhysicsSystem(createTestPhysicsConfig(), 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty space", func(t *testing.T) {
		cfg := createTestPhysicsConfig()
		cfg.Space.CellSize = 0

		_, err := NewPhysicsSystem(cfg, 10)
		assert.Error(t, err)
	})
}

func TestPhysicsSystem_FallsOntoFloor(t *testing.T) {
	sys, _ := createTestWorld(t)
	body := entity.NewDynamicBody(50, 45, 2, 2, 1, 1, 0)
	sys.AddDynamic(body)

	for i := 0; i < 90; i++ {
		sys.Step(testDT)
	}

	assert.True(t, body.OnGround)
	assert.Equal(t, 0.0, body.VY)
	assert.InDelta(t, 48.0, body.Y, 0.05, "bottom rests on the floor top")
	assert.InDelta(t, 50.0, body.X, 1e-9)
}

func TestPhysicsSystem_Gravity(t *testing.T) {
	sys, _ := createTestWorld(t)
	body := entity.NewDynamicBody(50, 10, 2, 2, 1, 1, 0)
	sys.AddDynamic(body)

	sys.Step(testDT)

	assert.InDelta(t, 10.0/30.0, body.VY, 1e-9)
	assert.Greater(t, body.Y, 10.0)
	assert.False(t, body.OnGround)
}

func TestPhysicsSystem_Bounce(t *testing.T) {
	sys, _ := createTestWorld(t)
	body := entity.NewDynamicBody(50, 45, 2, 2, 1, 1, 0.5)
	sys.AddDynamic(body)

	bounced := false
	for i := 0; i < 30 && !bounced; i++ {
		sys.Step(testDT)
		bounced = body.VY < 0
	}

	assert.True(t, bounced, "fast impacts bounce with restitution")
	assert.False(t, body.OnGround)
}

func TestPhysicsSystem_GroundFriction(t *testing.T) {
	sys, _ := createTestWorld(t)
	body := entity.NewDynamicBody(50, 48, 2, 2, 1, 1, 0)
	body.VX = 5
	body.OnGround = true
	sys.AddDynamic(body)

	sys.Step(testDT)
	assert.InDelta(t, 5.0-10.0/30.0, body.VX, 1e-9)

	for i := 0; i < 30; i++ {
		sys.Step(testDT)
	}

	assert.Equal(t, 0.0, body.VX)
	assert.Greater(t, body.X, 50.0)
	assert.True(t, body.OnGround)
}

func TestPhysicsSystem_SolidWallStopsBody(t *testing.T) {
	sys, _ := createTestWorld(t)
	wall := entity.NewStaticBody(60, 40, 2, 20, 0, 0)
	sys.AddStatic(wall, true)

	body := entity.NewDynamicBody(55, 48, 2, 2, 1, 0, 0)
	body.VX = 30
	sys.AddDynamic(body)

	for i := 0; i < 10; i++ {
		sys.Step(testDT)
	}

	assert.Equal(t, 0.0, body.VX)
	assert.InDelta(t, 58.0, body.X, 0.05, "right edge touches the wall")
}

func TestPhysicsSystem_NonSolidIsIgnored(t *testing.T) {
	sys, _ := createTestWorld(t)
	scenery := entity.NewStaticBody(60, 40, 2, 20, 0, 0)
	sys.AddStatic(scenery, false)

	body := entity.NewDynamicBody(55, 48, 2, 2, 1, 0, 0)
	body.VX = 30
	sys.AddDynamic(body)

	for i := 0; i < 10; i++ {
		sys.Step(testDT)
	}

	assert.Greater(t, body.X, 60.0)
}

func TestPhysicsSystem_Sync(t *testing.T) {
	sys, _ := createTestWorld(t)
	wall := entity.NewStaticBody(80, 40, 2, 20, 0, 0)
	sys.AddStatic(wall, true)

	// Move the wall into the body's path
	wall.SetPosition(60, 40)
	sys.Sync(wall)

	body := entity.NewDynamicBody(55, 48, 2, 2, 1, 0, 0)
	body.VX = 30
	sys.AddDynamic(body)

	for i := 0; i < 10; i++ {
		sys.Step(testDT)
	}

	assert.InDelta(t, 58.0, body.X, 0.05)
}

func TestPhysicsSystem_AddRemove(t *testing.T) {
	sys, floor := createTestWorld(t)
	body := entity.NewDynamicBody(50, 10, 2, 2, 1, 1, 0)

	sys.AddDynamic(body)
	sys.AddDynamic(body)
	assert.Equal(t, 2, sys.BodyCount(), "adding twice registers once")

	sys.Remove(body)
	sys.Remove(body)
	assert.Equal(t, 1, sys.BodyCount())

	sys.Step(testDT)
	assert.Equal(t, 10.0, body.Y, "removed bodies are not stepped")

	sys.Remove(floor)
	assert.Equal(t, 0, sys.BodyCount())
}

// createOffGridWorld matches the demo stage: 30 px/m, 30 px cells and a floor
// whose top (495 px) falls inside a cell row, so a resting body shares cells with it
func createOffGridWorld(t *testing.T) (*PhysicsSystem, *entity.Body) {
	t.Helper()
	cfg := createTestPhysicsConfig()
	cfg.Space = config.SpaceConfig{Width: 6000, Height: 1200, CellSize: 30}
	sys, err := NewPhysicsSystem(cfg, 30)
	require.NoError(t, err)

	floor := entity.NewStaticBody(100, 16.666667, 33.333333, 0.333333, 0.5, 0.2)
	sys.AddStatic(floor, true)

	body := entity.NewDynamicBody(100, 8.333333, 5, 5, 1, 1.5, 0.2)
	sys.AddDynamic(body)
	for i := 0; i < 90; i++ {
		sys.Step(testDT)
	}
	require.True(t, body.OnGround)
	require.InDelta(t, 14.0, body.Y, 0.01)
	return sys, body
}

func TestPhysicsSystem_WalkOnOffGridFloor(t *testing.T) {
	sys, body := createOffGridWorld(t)
	startX := body.X
	decel := math.Sqrt(1.5*0.5) * 10 * testDT

	t.Run("one tick moves by the velocity", func(t *testing.T) {
		body.VX = -5
		sys.Step(testDT)

		assert.InDelta(t, -5+decel, body.VX, 1e-9)
		assert.InDelta(t, startX+(-5+decel)*testDT, body.X, 1e-6)
		assert.InDelta(t, 14.0, body.Y, 0.01)
		assert.True(t, body.OnGround)
	})

	t.Run("both directions", func(t *testing.T) {
		x := body.X
		body.VX = 5
		sys.Step(testDT)

		assert.InDelta(t, x+(5-decel)*testDT, body.X, 1e-6)
	})

	t.Run("walks across the floor", func(t *testing.T) {
		prev := body.X
		for i := 0; i < 60; i++ {
			body.VX = -5
			sys.Step(testDT)

			require.Less(t, body.X, prev, "tick %d", i)
			require.InDelta(t, 14.0, body.Y, 0.01, "tick %d", i)
			require.True(t, body.OnGround, "tick %d", i)
			prev = body.X
		}
		assert.InDelta(t, startX-60*(5-decel)*testDT, body.X, 0.2)
	})
}

func TestPhysicsSystem_BounceStaysAboveOffGridFloor(t *testing.T) {
	cfg := createTestPhysicsConfig()
	cfg.Space = config.SpaceConfig{Width: 6000, Height: 1200, CellSize: 30}
	sys, err := NewPhysicsSystem(cfg, 30)
	require.NoError(t, err)
	sys.AddStatic(entity.NewStaticBody(100, 16.666667, 33.333333, 0.333333, 0.5, 0.5), true)

	body := entity.NewDynamicBody(100, 8.333333, 5, 5, 1, 1.5, 0.5)
	sys.AddDynamic(body)

	bounced := false
	for i := 0; i < 120; i++ {
		sys.Step(testDT)
		bounced = bounced || body.VY < 0
		require.LessOrEqual(t, body.Y, 14.0+0.01, "tick %d: body sank into the floor", i)
	}
	assert.True(t, bounced)
	assert.InDelta(t, 100.0, body.X, 1e-9)
}
