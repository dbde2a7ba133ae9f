package engine

// Zone identifies one of the four board areas the cursor can focus.
type Zone uint8

const (
	ZoneStock Zone = iota
	ZoneWaste
	ZoneFoundation
	ZoneTableau

	numZones = 4
)

// String returns the zone name for display and logging.
func (z Zone) String() string {
	switch z {
	case ZoneStock:
		return "stock"
	case ZoneWaste:
		return "waste"
	case ZoneFoundation:
		return "foundation"
	case ZoneTableau:
		return "tableau"
	}
	return "unknown"
}

// Direction is a cursor movement direction.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight

	numDirections = 4
)

// Cursor is the persistent focus position: a zone, a pile index within the
// zone, and (for tableau piles) a card index marking where in the face-up
// run the focus rests.
type Cursor struct {
	Zone      Zone
	Pile      int
	CardIndex int
}

// transition is one entry of the cursor state machine: it rewrites the
// cursor for a single (zone, direction) pair, reading the game state only
// to find snap targets. Transitions never fail; blocked moves are no-ops.
type transition func(c *Cursor, g *GameState)

func noop(*Cursor, *GameState) {}

// cursorTransitions is the complete (zone × direction) table. Laying the
// machine out as data keeps every pair visibly handled, instead of hiding
// cases in nested conditionals.
var cursorTransitions = [numZones][numDirections]transition{
	ZoneStock: {
		DirUp:    noop,
		DirDown:  enterTableau(0),
		DirLeft:  noop,
		DirRight: toZone(ZoneWaste, 0),
	},
	ZoneWaste: {
		DirUp:    noop,
		DirDown:  enterTableau(1),
		DirLeft:  toZone(ZoneStock, 0),
		DirRight: toZone(ZoneFoundation, 0),
	},
	ZoneFoundation: {
		DirUp:   noop,
		DirDown: foundationDown,
		DirLeft: func(c *Cursor, g *GameState) {
			if c.Pile > 0 {
				c.Pile--
			} else {
				c.Zone = ZoneWaste
				c.Pile = 0
			}
		},
		DirRight: func(c *Cursor, g *GameState) {
			if c.Pile < NumFoundations-1 {
				c.Pile++
			}
		},
	},
	ZoneTableau: {
		DirUp:   tableauUp,
		DirDown: tableauDown,
		DirLeft: func(c *Cursor, g *GameState) {
			if c.Pile > 0 {
				c.Pile--
				c.resetCardIndex(g)
			}
		},
		DirRight: func(c *Cursor, g *GameState) {
			if c.Pile < NumTableau-1 {
				c.Pile++
				c.resetCardIndex(g)
			}
		},
	},
}

// Move applies one directional step of the cursor state machine.
func (c *Cursor) Move(dir Direction, g *GameState) {
	if c.Zone >= numZones || dir >= numDirections {
		return
	}
	cursorTransitions[c.Zone][dir](c, g)
}

// toZone returns a transition that jumps to a fixed zone and pile.
func toZone(z Zone, pile int) transition {
	return func(c *Cursor, g *GameState) {
		c.Zone = z
		c.Pile = pile
	}
}

// enterTableau returns a transition that drops into the given tableau pile
// and snaps the card index to the first selectable card.
func enterTableau(pile int) transition {
	return func(c *Cursor, g *GameState) {
		c.Zone = ZoneTableau
		c.Pile = pile
		c.resetCardIndex(g)
	}
}

// foundationDown maps foundation i down to tableau min(5+i/2, 6).
func foundationDown(c *Cursor, g *GameState) {
	pile := 5 + c.Pile/2
	if pile > NumTableau-1 {
		pile = NumTableau - 1
	}
	c.Zone = ZoneTableau
	c.Pile = pile
	c.resetCardIndex(g)
}

// tableauUp first walks the card focus toward the start of the face-up run,
// then crosses into the row above: pile 0 → stock, pile 1 → waste, piles
// 2–4 → foundation 0, piles 5–6 → foundation min(pile-5, 3).
func tableauUp(c *Cursor, g *GameState) {
	if c.CardIndex > c.FirstSelectable(g) {
		c.CardIndex--
		return
	}

	switch {
	case c.Pile == 0:
		c.Zone = ZoneStock
	case c.Pile == 1:
		c.Zone = ZoneWaste
	case c.Pile <= 4:
		c.Zone = ZoneFoundation
		c.Pile = 0
	default:
		c.Zone = ZoneFoundation
		c.Pile = c.Pile - 5
		if c.Pile > NumFoundations-1 {
			c.Pile = NumFoundations - 1
		}
	}
	c.CardIndex = 0
}

// tableauDown walks the card focus toward the pile's end. There is no zone
// below the tableau row.
func tableauDown(c *Cursor, g *GameState) {
	if g.TableauLen[c.Pile] > 0 && c.CardIndex < int(g.TableauLen[c.Pile])-1 {
		c.CardIndex++
	}
}

// FirstSelectable returns the index of the first face-up card in the
// focused tableau pile, or 0 when not on the tableau or the pile is empty
// or fully face-down.
func (c *Cursor) FirstSelectable(g *GameState) int {
	if c.Zone != ZoneTableau {
		return 0
	}
	return g.firstFaceUp(c.Pile)
}

// resetCardIndex re-homes the card focus after a pile change: index 0, then
// snapped forward to the first selectable card.
func (c *Cursor) resetCardIndex(g *GameState) {
	c.CardIndex = 0
	c.SnapToSelectable(g)
}

// SnapToSelectable advances the card focus to the pile's first face-up card
// if it currently rests on a face-down prefix.
func (c *Cursor) SnapToSelectable(g *GameState) {
	if c.Zone != ZoneTableau {
		return
	}
	if g.TableauLen[c.Pile] == 0 {
		c.CardIndex = 0
		return
	}
	if first := c.FirstSelectable(g); c.CardIndex < first {
		c.CardIndex = first
	}
}
