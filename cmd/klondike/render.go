package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/klondiketui/klondike/engine"
	"github.com/klondiketui/klondike/internal/game"
)

const cellWidth = 6

// cardLabel renders one card: red/black by suit, dark gray when face-down.
func cardLabel(c engine.Card) string {
	if c == engine.NoCard {
		return pterm.FgDarkGray.Sprint("[  ]")
	}
	if !c.FaceUp() {
		return pterm.FgDarkGray.Sprint("[##]")
	}
	label := fmt.Sprintf("[%s]", c)
	if c.IsRed() {
		return pterm.FgLightRed.Sprint(label)
	}
	return pterm.FgLightWhite.Sprint(label)
}

// pad right-pads s to the cell width, counting only visible characters.
func pad(s string, visible int) string {
	if visible >= cellWidth {
		return s
	}
	return s + strings.Repeat(" ", cellWidth-visible)
}

func visibleLen(c engine.Card) int {
	// "[10♠]" is one wider than every other label.
	if c != engine.NoCard && c.FaceUp() && c.Rank() == engine.RankTen {
		return 5
	}
	return 4
}

// mark prefixes a cell with the cursor or destination marker.
func mark(cell string, cursor, dest bool) string {
	switch {
	case cursor:
		return pterm.FgLightYellow.Sprint(">") + cell
	case dest:
		return pterm.FgLightGreen.Sprint("*") + cell
	default:
		return " " + cell
	}
}

func renderBoard(m *game.Manager) string {
	s := m.Session
	g := &s.State
	cur := s.Cursor
	var b strings.Builder

	var destTableau, destFoundation map[int]bool
	if m.Highlights != nil {
		destTableau = make(map[int]bool)
		for _, p := range m.Highlights.Tableau {
			destTableau[p] = true
		}
		destFoundation = make(map[int]bool)
		for _, f := range m.Highlights.Foundation {
			destFoundation[f] = true
		}
	}

	// Top row: stock, waste, then the four foundations.
	stockCell := pterm.FgDarkGray.Sprint("[  ]")
	if g.StockLen > 0 {
		stockCell = pterm.FgDarkGray.Sprintf("[%2d]", g.StockLen)
	}
	b.WriteString(mark(pad(stockCell, 4), cur.Zone == engine.ZoneStock, false))

	b.WriteString(mark(pad(cardLabel(g.WasteTop()), visibleLen(g.WasteTop())),
		cur.Zone == engine.ZoneWaste, false))

	b.WriteString(strings.Repeat(" ", cellWidth))
	for f := 0; f < engine.NumFoundations; f++ {
		top := g.FoundationTop(f)
		cell := cardLabel(top)
		n := visibleLen(top)
		if top == engine.NoCard {
			cell = pterm.FgDarkGray.Sprintf("[%s ]", suitGlyph(engine.FoundationSuits[f]))
			n = 4
		}
		onCursor := cur.Zone == engine.ZoneFoundation && cur.Pile == f
		b.WriteString(mark(pad(cell, n), onCursor, destFoundation[f]))
	}
	b.WriteString("\n\n")

	// Pile headers with destination markers.
	for p := 0; p < engine.NumTableau; p++ {
		onCursor := cur.Zone == engine.ZoneTableau && cur.Pile == p
		b.WriteString(mark(pad(fmt.Sprintf(" %d", p+1), 3), onCursor, destTableau[p]))
	}
	b.WriteString("\n")

	// Tableau grid, one row per card depth.
	maxLen := 0
	for p := 0; p < engine.NumTableau; p++ {
		if n := int(g.TableauLen[p]); n > maxLen {
			maxLen = n
		}
	}
	for row := 0; row < maxLen; row++ {
		for p := 0; p < engine.NumTableau; p++ {
			if row >= int(g.TableauLen[p]) {
				b.WriteString(strings.Repeat(" ", cellWidth+1))
				continue
			}
			c := g.Tableau[p][row]
			onCursor := cur.Zone == engine.ZoneTableau && cur.Pile == p && cur.CardIndex == row
			b.WriteString(mark(pad(cardLabel(c), visibleLen(c)), onCursor, false))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func suitGlyph(suit uint8) string {
	return [4]string{"♥", "♦", "♣", "♠"}[suit&0x3]
}

// render repaints the whole screen.
func render(m *game.Manager) {
	s := m.Session

	fmt.Print("\033[H\033[2J")
	pterm.DefaultBox.
		WithTitle(pterm.LightCyan("KLONDIKE")).
		WithTitleTopCenter().
		Println(renderBoard(m))

	status := fmt.Sprintf("Moves: %d   Time: %s   Draw-%d",
		s.MoveCount, formatElapsed(m.Timer.Elapsed()), s.DrawCount)
	if sel := s.DescribeSelection(); sel != "" {
		status += "   Holding: " + sel
	}
	pterm.Println(pterm.FgLightWhite.Sprint(status))

	switch s.Status {
	case engine.StatusWon:
		pterm.Success.Println(s.Message)
	case engine.StatusLost:
		pterm.Error.Println(s.Message)
	default:
		if s.Message != "" {
			pterm.Info.Println(s.Message)
		}
	}

	pterm.Println(pterm.FgDarkGray.Sprint(
		"arrows move · space select · enter place · esc cancel · d draw · u undo · v hints · s save · l load · r restart · q quit"))
}

func formatElapsed(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
