package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSheet(t *testing.T) *SpriteSheet {
	t.Helper()
	sheet, err := NewSpriteSheet("player", 6, 150, 150, map[string]Animation{
		AnimStand: {Frames: []int{0}, Frequency: 3},
		AnimStill: {Frames: []int{1}, Frequency: 1},
		AnimStep:  {Frames: []int{2, 3, 4, 5, 3, 1}, Next: AnimLand, Frequency: 2},
		AnimLand:  {Frames: []int{1}, Frequency: 1},
	})
	require.NoError(t, err)
	return sheet
}

func TestNewSpriteSheet_Validation(t *testing.T) {
	tests := []struct {
		name  string
		count int
		anims map[string]Animation
	}{
		{"no frames in sheet", 0, nil},
		{"empty animation", 2, map[string]Animation{"a": {}}},
		{"frame out of range", 2, map[string]Animation{"a": {Frames: []int{2}}}},
		{"unknown next", 2, map[string]Animation{"a": {Frames: []int{0}, Next: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpriteSheet("s", tt.count, 10, 10, tt.anims)
			assert.Error(t, err)
		})
	}
}

func TestNewSpriteSheet_DefaultsFrequency(t *testing.T) {
	sheet, err := NewSpriteSheet("s", 1, 10, 10, map[string]Animation{"a": {Frames: []int{0}}})
	require.NoError(t, err)

	a, ok := sheet.Animation("a")
	require.True(t, ok)
	assert.Equal(t, 1, a.Frequency)
}

func TestSprite_GotoAndPlay(t *testing.T) {
	s := NewSprite(createTestSheet(t))
	assert.False(t, s.Playing())

	require.NoError(t, s.GotoAndPlay(AnimStep))

	assert.True(t, s.Playing())
	assert.Equal(t, AnimStep, s.Current())
	assert.Equal(t, 2, s.Frame())

	err := s.GotoAndPlay("backstep")
	assert.ErrorIs(t, err, ErrUnknownAnimation)
	assert.Equal(t, AnimStep, s.Current(), "failed play keeps the current animation")
}

func TestSprite_AdvanceFrequency(t *testing.T) {
	s := NewSprite(createTestSheet(t))
	require.NoError(t, s.GotoAndPlay(AnimStep))

	s.Advance()
	assert.Equal(t, 2, s.Frame(), "frequency 2 holds each frame for two ticks")

	s.Advance()
	assert.Equal(t, 3, s.Frame())
}

func TestSprite_ChainsToNext(t *testing.T) {
	s := NewSprite(createTestSheet(t))
	require.NoError(t, s.GotoAndPlay(AnimStep))

	// Six frames at two ticks each
	for i := 0; i < 12; i++ {
		s.Advance()
	}

	assert.Equal(t, AnimLand, s.Current())
	assert.Equal(t, 1, s.Frame())
	assert.True(t, s.Playing())
}

func TestSprite_HoldsLastFrame(t *testing.T) {
	s := NewSprite(createTestSheet(t))
	require.NoError(t, s.GotoAndPlay(AnimStand))

	for i := 0; i < 10; i++ {
		s.Advance()
	}

	assert.False(t, s.Playing())
	assert.Equal(t, AnimStand, s.Current())
	assert.Equal(t, 0, s.Frame())
}
