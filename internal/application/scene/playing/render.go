package playing

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/footfall/internal/application/state"
	"github.com/younwookim/footfall/internal/domain/gesture"
	"github.com/younwookim/footfall/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorPlayer = color.RGBA{100, 200, 100, 255}
	colorFoot   = color.RGBA{60, 140, 60, 255}
	colorHUD    = color.RGBA{0, 0, 0, 128}
)

// renderer draws the playspace, the player and the HUD
type renderer struct {
	sprite config.SpriteSheetConfig
	sheet  *ebiten.Image

	background color.RGBA
	piece      color.RGBA
	outline    color.RGBA
}

func newRenderer(sprite config.SpriteSheetConfig, colors config.StageColorConfig) *renderer {
	return &renderer{
		sprite:     sprite,
		background: rgba(colors.Background),
		piece:      rgba(colors.Piece),
		outline:    rgba(colors.Outline),
	}
}

func rgba(c [4]uint8) color.RGBA {
	return color.RGBA{c[0], c[1], c[2], c[3]}
}

func (r *renderer) draw(screen *ebiten.Image, p *Playing) {
	screen.Fill(r.background)

	r.drawPieces(screen, p.world)
	r.drawPlayer(screen, p)
	r.drawHUD(screen, p)

	if p.state == state.StatePaused {
		r.drawPauseOverlay(screen, p)
	}
}

// drawPieces draws every piece offset by the camera, deepest layer first
func (r *renderer) drawPieces(screen *ebiten.Image, w *World) {
	camX, camY := w.Playspace.Camera()
	for _, piece := range w.Playspace.Pieces() {
		skin := piece.Skin
		x := skin.X + camX - skin.Width/2
		y := skin.Y + camY - skin.Height/2
		ebitenutil.DrawRect(screen, x, y, skin.Width, skin.Height, r.outline)
		ebitenutil.DrawRect(screen, x+1, y+1, skin.Width-2, skin.Height-2, r.piece)
	}
}

// drawPlayer draws the current sprite frame at screen centre
func (r *renderer) drawPlayer(screen *ebiten.Image, p *Playing) {
	sheet := r.spriteSheet()
	sprite := p.world.Player.Sprite
	fw, fh := sprite.Sheet.FrameWidth, sprite.Sheet.FrameHeight

	frame := sprite.Frame()
	src := sheet.SubImage(image.Rect(frame*fw, 0, (frame+1)*fw, fh)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(sprite.Sheet.RegX), -float64(sprite.Sheet.RegY))
	op.GeoM.Rotate(sprite.Rotation * math.Pi / 180)
	op.GeoM.Translate(float64(p.screenW)/2, float64(p.screenH)/2)
	screen.DrawImage(src, op)
}

// spriteSheet lazily builds a placeholder sheet: a body with two feet whose
// positions differ per frame
func (r *renderer) spriteSheet() *ebiten.Image {
	if r.sheet != nil {
		return r.sheet
	}

	fw, fh := float64(r.sprite.FrameWidth), float64(r.sprite.FrameHeight)
	count := max(r.sprite.FrameCount, 1)
	r.sheet = ebiten.NewImage(int(fw)*count, int(fh))

	for i := 0; i < count; i++ {
		ox := float64(i) * fw
		ebitenutil.DrawRect(r.sheet, ox+fw*0.3, fh*0.1, fw*0.4, fh*0.6, colorPlayer)

		// Feet swing back and forth across the walk cycle
		swing := math.Sin(float64(i)*math.Pi/3) * fw * 0.15
		ebitenutil.DrawRect(r.sheet, ox+fw*0.3+swing, fh*0.7, fw*0.15, fh*0.25, colorFoot)
		ebitenutil.DrawRect(r.sheet, ox+fw*0.55-swing, fh*0.7, fw*0.15, fh*0.25, colorFoot)
	}
	return r.sheet
}

func (r *renderer) drawHUD(screen *ebiten.Image, p *Playing) {
	rec := p.world.Recognizer()
	dispatcher := p.world.Dispatcher

	var b strings.Builder
	b.WriteString("J K L: walk forward | L K J: walk back | H: stand | M: mute | ESC: pause\n")
	fmt.Fprintf(&b, "stage: %s\n", p.stageCfg.Name)
	fmt.Fprintf(&b, "history: %s\n", formatHistory(rec.History()))
	fmt.Fprintf(&b, "idle frames: %d\n", rec.IdleFrames())
	fmt.Fprintf(&b, "last action: %s (%d)\n", dispatcher.Last(), dispatcher.Count())
	fmt.Fprintf(&b, "tick: %d  speed: %.2f m/s", p.world.Ticks(), p.world.Player.Body.VX)
	if p.audio != nil && p.audio.Muted() {
		b.WriteString("  [muted]")
	}
	if p.recorder != nil {
		fmt.Fprintf(&b, "  [rec %d]", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, b.String())
}

// formatHistory renders frames oldest first, e.g. "[3] [2]"
func formatHistory(history []gesture.Frame) string {
	if len(history) == 0 {
		return "-"
	}
	parts := make([]string, len(history))
	for i, f := range history {
		codes := make([]string, len(f))
		for j, code := range f {
			codes[j] = fmt.Sprint(int(code))
		}
		parts[i] = "[" + strings.Join(codes, ",") + "]"
	}
	return strings.Join(parts, " ")
}

func (r *renderer) drawPauseOverlay(screen *ebiten.Image, p *Playing) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorHUD)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}
