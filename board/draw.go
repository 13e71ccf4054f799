package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/kestrel/position"
)

var (
	colorCellLight = color.New(color.FgBlack, color.BgHiWhite)
	colorCellDark  = color.New(color.FgBlack, color.BgGreen)
	colorCellMark  = color.New(color.FgBlack, color.BgYellow)
	colorLabel     = color.New(color.Bold)
)

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			sym := " "
			if c := b.mailbox[position.NewPos(x, y)]; !c.IsEmpty() {
				sym = c.String()
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

// Draw renders the board with coloured cells, highlighting the cells of the
// last applied move. Colours are dropped when the output is not a terminal.
func (b *Board) Draw() string {
	var mark bitmap
	if last := b.LastMove(); !last.IsNull() {
		mark = maskCell[last.From()] | maskCell[last.To()]
	}

	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < Width; x++ {
			pos := position.NewPos(x, y)
			sym := " "
			if c := b.mailbox[pos]; !c.IsEmpty() {
				sym = c.Piece().SymbolUnicode(c.Side())
			}
			cell := colorCellDark
			switch {
			case mark.IsSet(pos):
				cell = colorCellMark
			case x%2^y%2 != 0:
				cell = colorCellLight
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
