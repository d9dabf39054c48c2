// Package game runs a sway Scene in an Ebitengine window. Every tick
// advances the scene by one fixed step and draws each sized node as a tinted
// rectangle through its world transform.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/phanxgames/sway"
)

// Config describes the window.
type Config struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ShowFPS    bool   `yaml:"showFPS"`
	Background string `yaml:"background"` // hex, e.g. "#101018"
	// ExitOnScriptDone closes the window once the scene's script has run.
	ExitOnScriptDone bool `yaml:"exitOnScriptDone"`
}

// DefaultConfig returns a 640x480 window titled "sway".
func DefaultConfig() Config {
	return Config{Title: "sway", Width: 640, Height: 480, Background: "#000000"}
}

// Game implements ebiten.Game for a Scene.
type Game struct {
	scene  *sway.Scene
	cfg    Config
	update func() error
	bg     color.Color
	fps    fpsOverlay
}

// New returns a Game for scene. update, if non-nil, runs at the start of
// every tick before the scene advances.
func New(scene *sway.Scene, cfg Config, update func() error) (*Game, error) {
	bg := colorful.Color{}
	if cfg.Background != "" {
		c, err := colorful.Hex(cfg.Background)
		if err != nil {
			return nil, fmt.Errorf("game: background: %w", err)
		}
		bg = c
	}
	return &Game{scene: scene, cfg: cfg, update: update, bg: bg}, nil
}

// Run opens a window and blocks until it is closed.
func Run(scene *sway.Scene, cfg Config, update func() error) error {
	g, err := New(scene, cfg, update)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(g)
}

// Step is the fixed time step of one tick.
func Step() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	dt := Step()
	if err := g.scene.Update(dt); err != nil {
		return err
	}
	if g.cfg.ShowFPS {
		g.fps.update(dt)
	}
	if g.cfg.ExitOnScriptDone && g.scene.ScriptDone() && g.scene.Looper().Active() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	drawNode(screen, g.scene.Root())
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		return g.cfg.Width, g.cfg.Height
	}
	return outsideWidth, outsideHeight
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

func drawNode(screen *ebiten.Image, n *sway.Node) {
	if !n.Visible {
		return
	}
	if n.Width > 0 && n.Height > 0 && n.WorldAlpha() > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geoM(n.WorldTransform()))
		op.ColorScale = colorScale(n.Color(), n.WorldAlpha())
		screen.DrawImage(ensureWhitePixel(), &op)
	}
	for _, c := range n.Children() {
		drawNode(screen, c)
	}
}

// geoM converts a world matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// colorScale premultiplies the tint by alpha.
func colorScale(c colorful.Color, alpha float64) ebiten.ColorScale {
	c = c.Clamped()
	a := min(max(alpha, 0), 1)
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	return cs
}
