package system

import (
	"fmt"
	"math"
	"sort"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/younwookim/footfall/internal/domain/entity"
)

// Skin is the on-screen placement of a piece, in playspace pixels
type Skin struct {
	X, Y          float64 // Centre
	Width, Height float64
	Rotation      float64 // Degrees
}

// PieceData is a static body and the skin drawn for it
type PieceData struct {
	Body *entity.Body
	Skin Skin
}

// LayerData places a piece on a parallax layer
type LayerData struct {
	Layer int
}

var (
	Piece = donburi.NewComponentType[PieceData]()
	Layer = donburi.NewComponentType[LayerData]()
)

// BodySyncer pushes externally moved bodies back into the simulation
type BodySyncer interface {
	Sync(body *entity.Body)
}

// PlacedPiece is a piece as seen by the renderer
type PlacedPiece struct {
	Layer int
	Skin  Skin
}

// PlayspaceSystem holds the scenery pieces and the camera offset.
// Layer 1 moves with the camera; deeper layers drift by amount/layer on parallax.
type PlayspaceSystem struct {
	world  donburi.World
	query  *donburi.Query
	syncer BodySyncer

	cameraX, cameraY float64
}

// NewPlayspaceSystem creates an empty playspace. syncer may be nil.
func NewPlayspaceSystem(syncer BodySyncer) *PlayspaceSystem {
	return &PlayspaceSystem{
		world:  donburi.NewWorld(),
		query:  donburi.NewQuery(filter.Contains(Piece, Layer)),
		syncer: syncer,
	}
}

// Add places body on layer. Layers start at 1.
func (s *PlayspaceSystem) Add(body *entity.Body, layer int) (donburi.Entity, error) {
	if layer < 1 {
		return 0, fmt.Errorf("layer must be at least 1, got %d", layer)
	}

	e := s.world.Create(Piece, Layer)
	entry := s.world.Entry(e)
	Piece.SetValue(entry, PieceData{Body: body})
	Layer.SetValue(entry, LayerData{Layer: layer})
	return e, nil
}

// Advance copies every body's position and angle onto its skin
func (s *PlayspaceSystem) Advance(pixelsPerMeter float64) {
	s.query.Each(s.world, func(entry *donburi.Entry) {
		piece := Piece.Get(entry)
		b := piece.Body
		piece.Skin = Skin{
			X:        b.X * pixelsPerMeter,
			Y:        b.Y * pixelsPerMeter,
			Width:    b.W * pixelsPerMeter,
			Height:   b.H * pixelsPerMeter,
			Rotation: b.Angle * (180 / math.Pi),
		}
	})
}

// OnCamera moves the playspace container
func (s *PlayspaceSystem) OnCamera(x, y float64) {
	s.cameraX = x
	s.cameraY = y
}

// OnParallax shifts pieces off layer 1 by amount/layer meters
func (s *PlayspaceSystem) OnParallax(amount float64) {
	if amount == 0 {
		return
	}
	s.query.Each(s.world, func(entry *donburi.Entry) {
		layer := Layer.Get(entry).Layer
		if layer == 1 {
			return
		}
		b := Piece.Get(entry).Body
		b.SetPosition(b.X-amount/float64(layer), b.Y)
		if s.syncer != nil {
			s.syncer.Sync(b)
		}
	})
}

// Camera returns the container offset in pixels
func (s *PlayspaceSystem) Camera() (x, y float64) {
	return s.cameraX, s.cameraY
}

// Pieces returns every piece, deepest layer first so nearer layers draw on top
func (s *PlayspaceSystem) Pieces() []PlacedPiece {
	pieces := make([]PlacedPiece, 0, s.query.Count(s.world))
	s.query.Each(s.world, func(entry *donburi.Entry) {
		pieces = append(pieces, PlacedPiece{
			Layer: Layer.Get(entry).Layer,
			Skin:  Piece.Get(entry).Skin,
		})
	})
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Layer > pieces[j].Layer
	})
	return pieces
}

// Len returns the number of pieces
func (s *PlayspaceSystem) Len() int {
	return s.query.Count(s.world)
}
