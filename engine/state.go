// Package engine implements the Klondike solitaire rules and session core.
//
// The package is a pure rules engine: it owns card placement legality, move
// execution, cursor navigation, undo, and the draw/recycle stall machine.
// Rendering, input decoding, and persistence I/O live outside; the engine
// exchanges plain data with them and never touches a terminal or the
// filesystem.
package engine

const (
	DeckSize       = 52
	NumFoundations = 4
	NumTableau     = 7

	// StockMax is the deal remainder (52 - 1-2-...-7 tableau cards).
	StockMax = 24
	// FoundationMax is a full same-suit run, Ace through King.
	FoundationMax = 13
	// TableauMax is the deepest reachable tableau pile: six face-down cards
	// from the deal plus a full King-to-Ace run on top.
	TableauMax = 19
)

// GameState holds the complete card placement of a Klondike game as a flat
// value type (no pointers, no slices), so a Snapshot is a plain struct copy.
// The "top" of every pile is the highest occupied index.
type GameState struct {
	// Stock holds the whole deck between NewGame and Deal; in play it never
	// exceeds StockMax cards.
	Stock         [DeckSize]Card
	StockLen      uint8
	Waste         [StockMax]Card
	WasteLen      uint8
	Foundations   [NumFoundations][FoundationMax]Card
	FoundationLen [NumFoundations]uint8
	Tableau       [NumTableau][TableauMax]Card
	TableauLen    [NumTableau]uint8
	RNG           uint64
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// StockTop returns the next card to draw, or NoCard if the stock is empty.
func (g *GameState) StockTop() Card {
	if g.StockLen == 0 {
		return NoCard
	}
	return g.Stock[g.StockLen-1]
}

// WasteTop returns the most recently drawn card, or NoCard if the waste is empty.
func (g *GameState) WasteTop() Card {
	if g.WasteLen == 0 {
		return NoCard
	}
	return g.Waste[g.WasteLen-1]
}

// FoundationTop returns the top card of foundation f, or NoCard if empty or
// f is out of range.
func (g *GameState) FoundationTop(f int) Card {
	if f < 0 || f >= NumFoundations || g.FoundationLen[f] == 0 {
		return NoCard
	}
	return g.Foundations[f][g.FoundationLen[f]-1]
}

// TableauTop returns the top card of tableau pile p, or NoCard if empty or
// p is out of range.
func (g *GameState) TableauTop(p int) Card {
	if p < 0 || p >= NumTableau || g.TableauLen[p] == 0 {
		return NoCard
	}
	return g.Tableau[p][g.TableauLen[p]-1]
}

// FoundationTotal returns the number of cards across all four foundations.
func (g *GameState) FoundationTotal() int {
	total := 0
	for f := 0; f < NumFoundations; f++ {
		total += int(g.FoundationLen[f])
	}
	return total
}

// firstFaceUp returns the index of the first face-up card in tableau pile p,
// or 0 when the pile is empty or fully face-down.
func (g *GameState) firstFaceUp(p int) int {
	for i := 0; i < int(g.TableauLen[p]); i++ {
		if g.Tableau[p][i].FaceUp() {
			return i
		}
	}
	return 0
}

// flipTableauTopIfNeeded turns the top card of tableau pile p face-up if it
// is face-down (auto-reveal after a move exposes it).
func (g *GameState) flipTableauTopIfNeeded(p int) {
	n := g.TableauLen[p]
	if n > 0 && !g.Tableau[p][n-1].FaceUp() {
		g.Tableau[p][n-1] = g.Tableau[p][n-1].Flip()
	}
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState for undo support.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
