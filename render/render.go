package render

import (
	"errors"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/daystram/kestrel/board"
	"github.com/daystram/kestrel/position"
)

var ErrNilBoard = errors.New("nil board")

const (
	defaultCellSize = 45

	colorLight  = "#f0d9b5"
	colorDark   = "#b58863"
	colorMark   = "#cdd26a"
	colorCheck  = "#e35d5d"
	colorLabels = "#4a4a4a"
)

type svgConfig struct {
	cellSize    int
	flip        bool
	coordinates bool
	marks       map[position.Pos]bool
}

type SVGOption func(*svgConfig)

// WithCellSize sets the edge length of one cell in pixels.
func WithCellSize(size int) SVGOption {
	return func(cfg *svgConfig) {
		cfg.cellSize = size
	}
}

// WithFlip draws the board from Black's side.
func WithFlip(flip bool) SVGOption {
	return func(cfg *svgConfig) {
		cfg.flip = flip
	}
}

func WithCoordinates(show bool) SVGOption {
	return func(cfg *svgConfig) {
		cfg.coordinates = show
	}
}

// WithMarks highlights the given cells.
func WithMarks(cells ...position.Pos) SVGOption {
	return func(cfg *svgConfig) {
		for _, pos := range cells {
			cfg.marks[pos] = true
		}
	}
}

// SVG writes a diagram of the board. The last applied move is marked, and so
// is the king of the side to move when it is in check.
func SVG(w io.Writer, b *board.Board, opts ...SVGOption) error {
	if b == nil {
		return ErrNilBoard
	}
	cfg := &svgConfig{
		cellSize:    defaultCellSize,
		coordinates: true,
		marks:       make(map[position.Pos]bool),
	}
	for _, f := range opts {
		f(cfg)
	}
	if cfg.cellSize <= 0 {
		return fmt.Errorf("invalid cell size %d", cfg.cellSize)
	}
	if last := b.LastMove(); !last.IsNull() {
		cfg.marks[last.From()] = true
		cfg.marks[last.To()] = true
	}
	checked := position.Invalid
	if b.IsKingChecked(b.Turn()) {
		checked = b.KingPos(b.Turn())
	}

	size := cfg.cellSize * int(board.Width)
	canvas := svg.New(w)
	canvas.Start(size, size)
	for y := position.Pos(0); y < board.Height; y++ {
		for x := position.Pos(0); x < board.Width; x++ {
			pos := position.NewPos(x, y)
			px, py := cfg.origin(x, y)

			fill := colorLight
			if (x+y)%2 == 0 {
				fill = colorDark
			}
			switch {
			case pos == checked:
				fill = colorCheck
			case cfg.marks[pos]:
				fill = colorMark
			}
			canvas.Rect(px, py, cfg.cellSize, cfg.cellSize, "fill:"+fill)

			if c := b.CellAt(pos); !c.IsEmpty() {
				canvas.Text(px+cfg.cellSize/2, py+cfg.cellSize*4/5, c.Piece().SymbolUnicode(c.Side()),
					fmt.Sprintf("text-anchor:middle;font-size:%dpx;font-family:sans-serif", cfg.cellSize*4/5))
			}
		}
	}
	if cfg.coordinates {
		cfg.drawCoordinates(canvas)
	}
	canvas.End()
	return nil
}

// origin returns the top left pixel of a cell.
func (cfg *svgConfig) origin(x, y position.Pos) (int, int) {
	col, row := int(x), int(board.Height-1-y)
	if cfg.flip {
		col, row = int(board.Width-1-x), int(y)
	}
	return col * cfg.cellSize, row * cfg.cellSize
}

func (cfg *svgConfig) drawCoordinates(canvas *svg.SVG) {
	style := fmt.Sprintf("font-size:%dpx;font-family:sans-serif;fill:%s", cfg.cellSize/5, colorLabels)
	for i := position.Pos(0); i < board.Width; i++ {
		// files along the bottom edge, ranks along the left edge
		fx, fy := cfg.origin(i, 0)
		if cfg.flip {
			fx, fy = cfg.origin(i, board.Height-1)
		}
		canvas.Text(fx+cfg.cellSize-cfg.cellSize/5, fy+cfg.cellSize-2, i.NotationComponentX(), style)

		rx, ry := cfg.origin(0, i)
		if cfg.flip {
			rx, ry = cfg.origin(board.Width-1, i)
		}
		canvas.Text(rx+2, ry+cfg.cellSize/5, fmt.Sprint(i+1), style)
	}
}
