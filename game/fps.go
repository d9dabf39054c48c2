package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	sinceFlush time.Duration
	text       string
}

func (f *fpsOverlay) update(dt time.Duration) {
	f.sinceFlush += dt
	if f.text != "" && f.sinceFlush < 500*time.Millisecond {
		return
	}
	f.sinceFlush = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	if f.img == nil {
		f.img = ebiten.NewImage(100, 32)
	}
	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.text)
	screen.DrawImage(f.img, nil)
}
