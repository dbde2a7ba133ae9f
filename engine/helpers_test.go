package engine

import "testing"

// faceUp builds a face-up card for test setups.
func faceUp(suit, rank uint8) Card { return NewCard(suit, rank).Flip() }

// faceDown builds a face-down card for test setups.
func faceDown(suit, rank uint8) Card { return NewCard(suit, rank) }

func setStock(g *GameState, cards ...Card) {
	g.StockLen = uint8(copy(g.Stock[:], cards))
}

func setWaste(g *GameState, cards ...Card) {
	g.WasteLen = uint8(copy(g.Waste[:], cards))
}

func setFoundation(g *GameState, f int, cards ...Card) {
	g.FoundationLen[f] = uint8(copy(g.Foundations[f][:], cards))
}

func setTableau(g *GameState, p int, cards ...Card) {
	g.TableauLen[p] = uint8(copy(g.Tableau[p][:], cards))
}

// tableauCards returns the live slice of tableau pile p.
func tableauCards(g *GameState, p int) []Card {
	return g.Tableau[p][:g.TableauLen[p]]
}

// newTestSession returns a dealt session with a fixed seed.
func newTestSession(t *testing.T, drawCount int) *Session {
	t.Helper()
	s, err := NewSession(42, drawCount)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// assertConservation fails the test unless every (rank, suit) pair appears
// exactly once across all piles, regardless of face state.
func assertConservation(t *testing.T, g *GameState) {
	t.Helper()
	var counts [4][14]int
	count := func(c Card) {
		counts[c.Suit()][c.Rank()]++
	}
	for i := uint8(0); i < g.StockLen; i++ {
		count(g.Stock[i])
	}
	for i := uint8(0); i < g.WasteLen; i++ {
		count(g.Waste[i])
	}
	for f := 0; f < NumFoundations; f++ {
		for i := uint8(0); i < g.FoundationLen[f]; i++ {
			count(g.Foundations[f][i])
		}
	}
	for p := 0; p < NumTableau; p++ {
		for i := uint8(0); i < g.TableauLen[p]; i++ {
			count(g.Tableau[p][i])
		}
	}
	for suit := 0; suit < 4; suit++ {
		for rank := int(RankAce); rank <= int(RankKing); rank++ {
			if counts[suit][rank] != 1 {
				t.Errorf("card suit=%d rank=%d appears %d times, want 1", suit, rank, counts[suit][rank])
			}
		}
	}
}

// equalStates compares the live card placement of two GameStates, ignoring
// the RNG stream position and residue in array slots beyond each pile's
// length (pops leave old values behind).
func equalStates(a, b *GameState) bool {
	return canonical(*a) == canonical(*b)
}

func canonical(g GameState) GameState {
	g.RNG = 0
	for i := int(g.StockLen); i < len(g.Stock); i++ {
		g.Stock[i] = 0
	}
	for i := int(g.WasteLen); i < len(g.Waste); i++ {
		g.Waste[i] = 0
	}
	for f := 0; f < NumFoundations; f++ {
		for i := int(g.FoundationLen[f]); i < FoundationMax; i++ {
			g.Foundations[f][i] = 0
		}
	}
	for p := 0; p < NumTableau; p++ {
		for i := int(g.TableauLen[p]); i < TableauMax; i++ {
			g.Tableau[p][i] = 0
		}
	}
	return g
}
