// Package render hosts a session in an ebiten window: it polls the
// keyboard, steps the scheduler once per tick and paints the board.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/loop"
	"golang.org/x/image/font/basicfont"
)

// Layout places the field on screen, in pixels.
type Layout struct {
	Title    string
	Width    int
	Height   int
	OriginX  int
	OriginY  int
	CellSize int
}

// DefaultLayout is a 600x700 window with a 20x10 field of 30px cells.
var DefaultLayout = Layout{
	Title:    "Tetris",
	Width:    600,
	Height:   700,
	OriginX:  100,
	OriginY:  60,
	CellSize: 30,
}

var (
	backgroundColor = color.White
	gridColor       = color.RGBA{128, 128, 128, 255}
	scoreColor      = color.Black
	gameOverColor   = color.RGBA{255, 125, 0, 255}
	pressEscColor   = color.RGBA{255, 215, 0, 255}

	face = text.NewGoXFace(basicfont.Face7x13)
)

// Game implements ebiten.Game for one session.
type Game struct {
	session   *loop.Session
	scheduler *loop.Scheduler
	keymap    *Keymap
	layout    Layout
	overlay   *Overlay
}

func NewGame(session *loop.Session, scheduler *loop.Scheduler, keymap *Keymap, layout Layout) *Game {
	return &Game{
		session:   session,
		scheduler: scheduler,
		keymap:    keymap,
		layout:    layout,
	}
}

// WithOverlay attaches the Dear ImGui debug overlay.
func (g *Game) WithOverlay(overlay *Overlay) *Game {
	g.overlay = overlay
	return g
}

// Run opens the window and blocks until the player quits or the window is
// closed.
func (g *Game) Run() error {
	if g.overlay == nil {
		ebiten.SetWindowSize(g.layout.Width, g.layout.Height)
		ebiten.SetWindowTitle(g.layout.Title)
	}
	ebiten.SetTPS(g.session.FPS)

	g.session.Logger().WithField("fps", g.session.FPS).Info("window opened")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.BeginFrame()
	}

	g.keymap.Poll(g.session.Push)
	g.scheduler.Once(1.0 / float64(g.session.FPS))

	if g.overlay != nil {
		g.overlay.Build()
		g.overlay.EndFrame()
	}

	if g.session.Finished() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := g.session.Board
	zoom := float32(g.layout.CellSize)

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			x, y := g.cellOrigin(row, col)
			vector.StrokeRect(screen, x, y, zoom, zoom, 1, gridColor, false)
			if rgb, ok := board.ColorOf(b.Cell(row, col)); ok {
				g.fillCell(screen, x, y, rgb)
			}
		}
	}

	if p, ok := b.Active(); ok {
		rgb, _ := board.ColorOf(p.Kind.ColorIndex())
		for _, c := range p.Cells() {
			x, y := g.cellOrigin(c[0], c[1])
			g.fillCell(screen, x, y, rgb)
		}
	}

	drawText(screen, fmt.Sprintf("Score: %d", b.Score()), 20, 20, 2, scoreColor)
	if b.State() == board.GameOver {
		drawText(screen, "Game Over", 150, 200, 5, gameOverColor)
		drawText(screen, "Press ESC", 155, 265, 5, pressEscColor)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return g.layout.Width, g.layout.Height
}

func (g *Game) cellOrigin(row, col int) (float32, float32) {
	zoom := float32(g.layout.CellSize)
	return float32(g.layout.OriginX) + zoom*float32(col), float32(g.layout.OriginY) + zoom*float32(row)
}

// fillCell leaves a one pixel gap inside the grid outline.
func (g *Game) fillCell(screen *ebiten.Image, x, y float32, rgb board.RGB) {
	zoom := float32(g.layout.CellSize)
	clr := color.RGBA{rgb[0], rgb[1], rgb[2], 255}
	vector.DrawFilledRect(screen, x+1, y+1, zoom-2, zoom-1, clr, false)
}

func drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
