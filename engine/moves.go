package engine

import "fmt"

// Move execution. Every operation validates fully before touching the state:
// on error the GameState is bit-for-bit unchanged, never rolled back
// mid-operation. A nil error means the move was applied.

// MoveTableauToTableau moves the run starting at cardIndex in tableau pile
// src onto tableau pile dest, then auto-reveals the newly exposed card in
// src if it is face-down.
func (g *GameState) MoveTableauToTableau(src, cardIndex, dest int) error {
	if !g.CanPickFromTableau(src, cardIndex) {
		return fmt.Errorf("cannot pick from that position")
	}
	moving := g.Tableau[src][cardIndex]
	if !g.CanPlaceOnTableau(moving, dest) {
		return fmt.Errorf("cannot place there")
	}

	count := int(g.TableauLen[src]) - cardIndex
	for i := 0; i < count; i++ {
		g.Tableau[dest][int(g.TableauLen[dest])+i] = g.Tableau[src][cardIndex+i]
	}
	g.TableauLen[dest] += uint8(count)
	g.TableauLen[src] = uint8(cardIndex)

	g.flipTableauTopIfNeeded(src)
	return nil
}

// MoveWasteToTableau moves the top waste card onto tableau pile dest.
func (g *GameState) MoveWasteToTableau(dest int) error {
	if !g.CanPickFromWaste() {
		return fmt.Errorf("waste is empty")
	}
	card := g.Waste[g.WasteLen-1]
	if !g.CanPlaceOnTableau(card, dest) {
		return fmt.Errorf("cannot place there")
	}

	g.WasteLen--
	g.Tableau[dest][g.TableauLen[dest]] = card
	g.TableauLen[dest]++
	return nil
}

// MoveWasteToFoundation moves the top waste card onto foundation dest.
func (g *GameState) MoveWasteToFoundation(dest int) error {
	if !g.CanPickFromWaste() {
		return fmt.Errorf("waste is empty")
	}
	card := g.Waste[g.WasteLen-1]
	if !g.CanPlaceOnFoundation(card, dest) {
		return fmt.Errorf("cannot place on foundation")
	}

	g.WasteLen--
	g.Foundations[dest][g.FoundationLen[dest]] = card
	g.FoundationLen[dest]++
	return nil
}

// MoveTableauToFoundation moves the single top card of tableau pile src onto
// foundation dest. Foundations accept exactly one card, so runs are never
// moved here. Auto-reveal applies to the exposed card in src.
func (g *GameState) MoveTableauToFoundation(src, dest int) error {
	if src < 0 || src >= NumTableau {
		return fmt.Errorf("no such tableau pile")
	}
	if g.TableauLen[src] == 0 {
		return fmt.Errorf("tableau pile is empty")
	}
	card := g.Tableau[src][g.TableauLen[src]-1]
	if !card.FaceUp() {
		return fmt.Errorf("cannot move face-down card")
	}
	if !g.CanPlaceOnFoundation(card, dest) {
		return fmt.Errorf("cannot place on foundation")
	}

	g.TableauLen[src]--
	g.Foundations[dest][g.FoundationLen[dest]] = card
	g.FoundationLen[dest]++

	g.flipTableauTopIfNeeded(src)
	return nil
}

// MoveFoundationToTableau moves the top card of foundation src back onto
// tableau pile dest.
func (g *GameState) MoveFoundationToTableau(src, dest int) error {
	if src < 0 || src >= NumFoundations {
		return fmt.Errorf("no such foundation")
	}
	if g.FoundationLen[src] == 0 {
		return fmt.Errorf("foundation is empty")
	}
	card := g.Foundations[src][g.FoundationLen[src]-1]
	if !g.CanPlaceOnTableau(card, dest) {
		return fmt.Errorf("cannot place on tableau")
	}

	g.FoundationLen[src]--
	g.Tableau[dest][g.TableauLen[dest]] = card
	g.TableauLen[dest]++
	return nil
}

// DrawFromStock pops up to drawCount cards from the stock top, flipping each
// face-up and appending to the waste in pop order.
func (g *GameState) DrawFromStock(drawCount int) error {
	if !g.CanDrawFromStock() {
		return fmt.Errorf("stock is empty")
	}

	n := drawCount
	if n > int(g.StockLen) {
		n = int(g.StockLen)
	}
	for i := 0; i < n; i++ {
		g.StockLen--
		card := g.Stock[g.StockLen]
		if !card.FaceUp() {
			card = card.Flip()
		}
		g.Waste[g.WasteLen] = card
		g.WasteLen++
	}
	return nil
}

// RecycleWasteToStock moves the entire waste back to the stock, face-down.
// Legal only when the stock is empty and the waste is not. Taking repeatedly
// from the waste top reverses the order, so the next full pass of draws
// reproduces the previous one exactly.
func (g *GameState) RecycleWasteToStock() error {
	if g.StockLen > 0 {
		return fmt.Errorf("stock is not empty")
	}
	if g.WasteLen == 0 {
		return fmt.Errorf("waste is empty")
	}

	for g.WasteLen > 0 {
		g.WasteLen--
		card := g.Waste[g.WasteLen]
		if card.FaceUp() {
			card = card.Flip()
		}
		g.Stock[g.StockLen] = card
		g.StockLen++
	}
	return nil
}

// BuryTopOfStock moves the stock's top card to its bottom without flipping.
// This is the Draw-3 stall-recovery primitive: it perturbs the deterministic
// draw sequence before the next recycle. A single-card stock is a legal no-op.
func (g *GameState) BuryTopOfStock() error {
	if g.StockLen == 0 {
		return fmt.Errorf("stock is empty")
	}

	top := g.Stock[g.StockLen-1]
	copy(g.Stock[1:g.StockLen], g.Stock[:g.StockLen-1])
	g.Stock[0] = top
	return nil
}
