// Package demo hosts the card table in a desktop window.
//
// Mouse and touch input become fan contacts: a click selects, a drag
// reorders, a long press discards. Keys: a add, s shuffle, o sort,
// r toggle arc, q quit.
package demo

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matzehuels/cardfan/internal/table"
	"github.com/matzehuels/cardfan/pkg/buildinfo"
	"github.com/matzehuels/cardfan/pkg/fan"
	"github.com/matzehuels/cardfan/pkg/host"
)

const (
	tps       = 60
	border    = 3
	mouseID   = 0
	touchBase = 1
)

var (
	colorFelt     = color.RGBA{0x1d, 0x4d, 0x32, 0xff}
	colorFace     = color.RGBA{0x2b, 0x3a, 0x55, 0xff}
	colorBack     = color.RGBA{0x8a, 0x23, 0x2e, 0xff}
	colorEdge     = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorSelected = color.RGBA{0xf2, 0xc1, 0x4e, 0xff}
)

// Options configures the window.
type Options struct {
	Width, Height int
	Cards         int
	Fan           fan.Config
	Logger        *log.Logger
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	t, err := table.New(float64(opts.Width), float64(opts.Height), opts.Fan, opts.Logger)
	if err != nil {
		return err
	}
	if err := t.Deal(opts.Cards); err != nil {
		return err
	}

	g := newGame(ctx, t, opts.Width, opts.Height)
	g.logger = opts.Logger
	if g.logger == nil {
		g.logger = log.Default()
	}
	ebiten.SetWindowTitle("cardfan (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

type game struct {
	ctx           context.Context
	logger        *log.Logger
	table         *table.Table
	width, height int
	pixel         *ebiten.Image
	mouseDown     bool
	rng           *rand.Rand
	touches       []ebiten.TouchID
}

func newGame(ctx context.Context, t *table.Table, w, h int) *game {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &game{
		ctx:    ctx,
		table:  t,
		width:  w,
		height: h,
		pixel:  px,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := g.keys(); err != nil {
		return err
	}
	g.mouse()
	g.touch()
	g.table.Step(time.Second / tps)
	return nil
}

func (g *game) keys() error {
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		_, err = g.table.Add()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		err = g.table.Shuffle(g.rng)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		err = g.table.Sort()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		err = g.table.ToggleArc()
	}
	if err != nil {
		g.logger.Warn("Action failed", "err", err)
	}
	return nil
}

// contact converts screen coordinates (y down) to fan coordinates (y up).
func (g *game) contact(id, x, y int) fan.Contact {
	return fan.Contact{ID: id, X: float64(x), Y: float64(g.height - y)}
}

func (g *game) mouse() {
	f := g.table.Rig.Fan
	x, y := ebiten.CursorPosition()
	c := g.contact(mouseID, x, y)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouseDown = f.ContactDown(c)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if g.mouseDown {
			f.ContactUp(c)
			g.mouseDown = false
		}
	case g.mouseDown:
		f.ContactMove(c)
	default:
		g.table.Hover(c.X, c.Y)
	}
}

func (g *game) touch() {
	f := g.table.Rig.Fan
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		f.ContactDown(g.contact(touchBase+int(id), x, y))
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		f.ContactMove(g.contact(touchBase+int(id), x, y))
	}
	g.touches = inpututil.AppendJustReleasedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		f.ContactUp(g.contact(touchBase+int(id), x, y))
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorFelt)

	if g.table.PileLen() > 0 {
		cfg := g.table.Rig.Fan.Config()
		x, y := g.table.PilePosition()
		g.rect(screen, x+cfg.ItemWidth/2, y+cfg.ItemHeight/2, cfg.ItemWidth, cfg.ItemHeight, 0, colorBack, 1)
	}
	for _, sp := range g.table.Rig.Stage.Sprites() {
		g.sprite(screen, sp)
	}

	mode := "linear"
	if g.table.Arc() {
		mode = "arc"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("cards %d  pile %d  %s  [a]dd [s]huffle s[o]rt [r] arc [q]uit",
		g.table.Rig.Fan.Len(), g.table.PileLen(), mode))
}

func (g *game) sprite(screen *ebiten.Image, sp *host.Sprite) {
	w, h := sp.Size()
	cx, cy := sp.Center()
	rot := sp.Rotation()
	alpha := sp.Opacity()

	edge := colorEdge
	if c := sp.Card(); c != nil && g.table.Selected(c.Key()) {
		edge = colorSelected
	}
	fill := colorFace
	if !sp.ShowFront() {
		fill = colorBack
	}
	g.rect(screen, cx, cy, w, h, rot, edge, alpha)
	g.rect(screen, cx, cy, w-2*border, h-2*border, rot, fill, alpha)

	if alpha > 0.5 && sp.ShowFront() {
		ebitenutil.DebugPrintAt(screen, sp.Name(), int(cx)-8, g.height-int(cy)-8)
	}
}

// rect draws a w×h rectangle centered at (cx, cy) in fan coordinates,
// rotated counter-clockwise by deg.
func (g *game) rect(screen *ebiten.Image, cx, cy, w, h, deg float64, c color.RGBA, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(-deg * math.Pi / 180)
	op.GeoM.Translate(cx, float64(g.height)-cy)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(g.pixel, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
