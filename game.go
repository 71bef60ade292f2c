package motor

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size in pixels.
	Width, Height int
	// Resizable lets the user resize the window; the scene follows the
	// window size through its host.
	Resizable bool
	// TPS overrides the Ebitengine tick rate when positive.
	TPS int
	// ClearColor fills the screen before compositing when non-nil.
	ClearColor color.Color
}

// validate checks the config before any window state is touched.
func (c RunConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("run config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TPS < 0 {
		return errors.New("run config: TPS must not be negative")
	}
	return nil
}

// Game adapts a Scene to ebiten.Game. Layout forwards the window size to
// the game's Host, Update drives Scene.Update, and Draw composites the
// scene's surfaces when the scene uses an ImageRenderer.
type Game struct {
	scene  *Scene
	host   *Host
	clear  color.Color
	script *ScriptRunner
	// OnUpdate runs after the scene update each tick when non-nil.
	OnUpdate func() error
}

// NewGame creates a Game for scene. The scene is not mounted until Mount (or
// Run) is called.
func NewGame(scene *Scene) *Game {
	return &Game{scene: scene, host: NewHost(0, 0)}
}

// Host returns the host fed by Layout.
func (g *Game) Host() *Host {
	return g.host
}

// Mount mounts the game's scene onto the game's host.
func (g *Game) Mount() error {
	return g.scene.Mount(g.host)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.script != nil {
		g.script.step(g)
	}
	g.scene.Update()
	if g.OnUpdate != nil {
		return g.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.clear != nil {
		screen.Fill(g.clear)
	}
	if ir, ok := g.scene.renderer.(*ImageRenderer); ok {
		ir.Composite(screen, g.scene.node.surface)
	}
}

// Layout implements ebiten.Game. The outside size becomes the scene's host
// size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.host.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window, mounts scene onto it, and runs the Ebitengine loop
// until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	return RunGame(NewGame(scene), cfg)
}

// RunGame is Run with a Game built by the caller, for example to set
// OnUpdate. The loop stops when OnUpdate returns an error.
func RunGame(g *Game, cfg RunConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	g.clear = cfg.ClearColor
	g.host.Resize(float64(cfg.Width), float64(cfg.Height))
	if err := g.Mount(); err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(g)
}
