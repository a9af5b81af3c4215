package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/boii/internal/bus"
	"github.com/nevisdale/boii/internal/cart"
	"github.com/nevisdale/boii/internal/config"
	"github.com/nevisdale/boii/internal/memview"
)

// Up/Down - scroll one row
// PageUp/PageDown - scroll one page
// Tab - jump between the rom and the ram window
// Home - back to the start address

type UI struct {
	cart  *cart.Cart
	info  string
	scale int

	startAddr uint16
	addr      uint16
}

func New(c *cart.Cart, cfg config.ViewerConfig) *UI {
	return &UI{
		cart:      c,
		info:      memview.HeaderInfo(c.Header()),
		scale:     cfg.Scale,
		startAddr: cfg.StartAddr,
		addr:      cfg.StartAddr &^ (memview.BytesPerRow - 1),
	}
}

func (ui *UI) Update() error {
	const (
		rowStep  = memview.BytesPerRow
		pageStep = memview.BytesPerRow * pageRows
	)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		ui.addr += rowStep
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		ui.addr -= rowStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		ui.addr += pageStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		ui.addr -= pageStep
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		ui.addr = ui.startAddr &^ (memview.BytesPerRow - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if bus.RegionOf(ui.addr) == bus.RegionCartRAM {
			ui.addr = bus.CartROMStart
		} else {
			ui.addr = bus.CartRAMStart
		}
	}
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	var s strings.Builder
	s.WriteString(ui.info)
	fmt.Fprintf(&s, "\n FPS: %0.0f\n\n", ebiten.ActualFPS())

	// a bus lives for one frame worth of reads
	b := bus.New(ui.cart)
	for _, line := range memview.Page(b, ui.addr, pageRows) {
		s.WriteString(line + "\n")
	}

	vector.DrawFilledRect(screen, 0, 0, screenWidth, screenHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, s.String(), 4, 4)
}

const (
	pageRows = 16

	screenWidth  = 480
	screenHeight = 360
)

func (ui *UI) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func Run(ui *UI) error {
	ebiten.SetWindowTitle("boii - " + ui.cart.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*ui.scale, screenHeight*ui.scale)
	ebiten.SetTPS(30)
	log.Printf("viewer: opening memory view of %q\n", ui.cart.Title())
	return ebiten.RunGame(ui)
}
