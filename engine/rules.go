package engine

// Placement and pick legality for Klondike. All predicates are pure reads
// over GameState: no side effects, and malformed indices simply answer false.

// CanPlaceOnTableau reports whether card can be placed on tableau pile p.
// An empty pile accepts only Kings; otherwise the pile's top card must be
// face-up, of the opposite color, and exactly one rank higher.
func (g *GameState) CanPlaceOnTableau(card Card, p int) bool {
	if p < 0 || p >= NumTableau {
		return false
	}
	if g.TableauLen[p] == 0 {
		return card.Rank() == RankKing
	}
	top := g.Tableau[p][g.TableauLen[p]-1]
	if !top.FaceUp() {
		return false
	}
	if !card.OppositeColor(top) {
		return false
	}
	return card.Rank() == top.Rank()-1
}

// CanPlaceOnFoundation reports whether card can be placed on foundation f.
// The card must match the foundation's fixed suit; an empty foundation
// accepts only the Ace, otherwise the next rank up.
func (g *GameState) CanPlaceOnFoundation(card Card, f int) bool {
	if f < 0 || f >= NumFoundations {
		return false
	}
	if card.Suit() != FoundationSuits[f] {
		return false
	}
	if g.FoundationLen[f] == 0 {
		return card.Rank() == RankAce
	}
	top := g.Foundations[f][g.FoundationLen[f]-1]
	return card.Rank() == top.Rank()+1
}

// CanPickFromTableau reports whether a run starting at cardIndex in tableau
// pile p can be picked up: the index must be in bounds and the card face-up.
func (g *GameState) CanPickFromTableau(p, cardIndex int) bool {
	if p < 0 || p >= NumTableau {
		return false
	}
	if cardIndex < 0 || cardIndex >= int(g.TableauLen[p]) {
		return false
	}
	return g.Tableau[p][cardIndex].FaceUp()
}

// CanPickFromWaste reports whether the waste has a card to pick.
func (g *GameState) CanPickFromWaste() bool { return g.WasteLen > 0 }

// CanDrawFromStock reports whether the stock has a card to draw.
func (g *GameState) CanDrawFromStock() bool { return g.StockLen > 0 }

// TableauDestinations returns every tableau pile index that accepts card,
// in ascending order. The ordering is what makes highlighting (and any
// auto-move-when-unique policy built on top) deterministic.
func (g *GameState) TableauDestinations(card Card) []int {
	var dests []int
	for p := 0; p < NumTableau; p++ {
		if g.CanPlaceOnTableau(card, p) {
			dests = append(dests, p)
		}
	}
	return dests
}

// FoundationDestinations returns every foundation index that accepts card,
// in ascending order.
func (g *GameState) FoundationDestinations(card Card) []int {
	var dests []int
	for f := 0; f < NumFoundations; f++ {
		if g.CanPlaceOnFoundation(card, f) {
			dests = append(dests, f)
		}
	}
	return dests
}
