package engine

// NewGame initializes a GameState with the given seed. The full 52-card deck
// sits face-down in the stock, unshuffled, until Deal is called.
func NewGame(seed uint64) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}

	idx := 0
	for suit := uint8(0); suit < 4; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			g.Stock[idx] = NewCard(suit, rank)
			idx++
		}
	}
	g.StockLen = DeckSize

	return g
}

// Deal shuffles the deck and lays out the opening Klondike position:
// tableau pile p receives p+1 cards with only the last one face-up, and the
// remaining 24 cards stay face-down in the stock. The shuffle is driven by
// the seeded RNG, so equal seeds produce identical deals.
func (g *GameState) Deal() {
	// Fisher-Yates shuffle.
	for i := int(g.StockLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Stock[i], g.Stock[j] = g.Stock[j], g.Stock[i]
	}

	for p := 0; p < NumTableau; p++ {
		for c := 0; c <= p; c++ {
			g.StockLen--
			card := g.Stock[g.StockLen]
			if c == p {
				card = card.Flip() // only the last card dealt starts face-up
			}
			g.Tableau[p][c] = card
			g.TableauLen[p]++
		}
	}
}

// DealGame is the dealer entry point: a fresh, fully dealt game.
func DealGame(seed uint64) GameState {
	g := NewGame(seed)
	g.Deal()
	return g
}
