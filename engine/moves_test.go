package engine

import "testing"

// ---------------------------------------------------------------------------
// Tableau-to-tableau
// ---------------------------------------------------------------------------

func TestMoveTableauToTableauMovesRun(t *testing.T) {
	var g GameState
	setTableau(&g, 0,
		faceDown(SuitClubs, RankTen),
		faceUp(SuitHearts, RankEight),
		faceUp(SuitSpades, RankSeven),
		faceUp(SuitDiamonds, RankSix),
	)
	setTableau(&g, 1, faceUp(SuitSpades, RankNine))

	if err := g.MoveTableauToTableau(0, 1, 1); err != nil {
		t.Fatalf("move: %v", err)
	}

	if g.TableauLen[1] != 4 {
		t.Fatalf("dest has %d cards, want 4", g.TableauLen[1])
	}
	wantDest := []Card{
		faceUp(SuitSpades, RankNine),
		faceUp(SuitHearts, RankEight),
		faceUp(SuitSpades, RankSeven),
		faceUp(SuitDiamonds, RankSix),
	}
	for i, want := range wantDest {
		if g.Tableau[1][i] != want {
			t.Errorf("dest[%d] = %v, want %v", i, g.Tableau[1][i], want)
		}
	}

	// Auto-reveal: the exposed Ten of clubs flips face-up.
	if g.TableauLen[0] != 1 {
		t.Fatalf("src has %d cards, want 1", g.TableauLen[0])
	}
	if !g.Tableau[0][0].FaceUp() || g.Tableau[0][0].Rank() != RankTen {
		t.Error("newly exposed source top should be the Ten, face-up")
	}
}

func TestMoveTableauToTableauRejectsIllegal(t *testing.T) {
	var g GameState
	setTableau(&g, 0, faceUp(SuitHearts, RankEight))
	setTableau(&g, 1, faceUp(SuitSpades, RankNine))
	before := g

	cases := []struct {
		name             string
		src, index, dest int
	}{
		{"bad card index", 0, -1, 1},
		{"bad source pile", -1, 0, 1},
		{"bad dest pile", 0, 0, NumTableau},
		{"wrong color", 1, 0, 0}, // black Nine onto red Eight: wrong direction
	}
	for _, tc := range cases {
		if err := g.MoveTableauToTableau(tc.src, tc.index, tc.dest); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !equalStates(&g, &before) {
			t.Fatalf("%s: failed move must leave state untouched", tc.name)
		}
	}
}

// ---------------------------------------------------------------------------
// Waste moves
// ---------------------------------------------------------------------------

func TestMoveWasteToTableau(t *testing.T) {
	var g GameState
	setWaste(&g, faceUp(SuitClubs, RankFour), faceUp(SuitHearts, RankSeven))
	setTableau(&g, 2, faceUp(SuitSpades, RankEight))

	if err := g.MoveWasteToTableau(2); err != nil {
		t.Fatalf("move: %v", err)
	}
	if g.WasteLen != 1 {
		t.Errorf("WasteLen = %d, want 1", g.WasteLen)
	}
	if g.TableauTop(2) != faceUp(SuitHearts, RankSeven) {
		t.Error("Seven of hearts should top pile 2")
	}
}

func TestMoveWasteToTableauEmptyWaste(t *testing.T) {
	var g GameState
	before := g
	if err := g.MoveWasteToTableau(0); err == nil {
		t.Error("expected error on empty waste")
	}
	if !equalStates(&g, &before) {
		t.Error("failed move must leave state untouched")
	}
}

func TestMoveWasteToFoundation(t *testing.T) {
	var g GameState
	setWaste(&g, faceUp(SuitHearts, RankAce))

	if err := g.MoveWasteToFoundation(0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if g.FoundationLen[0] != 1 || g.WasteLen != 0 {
		t.Error("Ace should move from waste to foundation 0")
	}

	// Wrong foundation for the suit.
	setWaste(&g, faceUp(SuitSpades, RankAce))
	if err := g.MoveWasteToFoundation(0); err == nil {
		t.Error("Ace of spades must not land on the hearts foundation")
	}
}

// ---------------------------------------------------------------------------
// Tableau/foundation exchanges
// ---------------------------------------------------------------------------

func TestMoveTableauToFoundation(t *testing.T) {
	var g GameState
	setTableau(&g, 0, faceDown(SuitClubs, RankNine), faceUp(SuitHearts, RankAce))

	if err := g.MoveTableauToFoundation(0, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if g.FoundationLen[0] != 1 {
		t.Error("Ace should reach foundation 0")
	}
	if !g.Tableau[0][0].FaceUp() {
		t.Error("auto-reveal should flip the exposed Nine")
	}
}

func TestMoveTableauToFoundationEmptyPile(t *testing.T) {
	var g GameState
	if err := g.MoveTableauToFoundation(0, 0); err == nil {
		t.Error("expected error on empty tableau pile")
	}
}

func TestMoveFoundationToTableau(t *testing.T) {
	var g GameState
	setFoundation(&g, 3, faceUp(SuitSpades, RankAce), faceUp(SuitSpades, RankTwo))
	setTableau(&g, 4, faceUp(SuitHearts, RankThree))

	if err := g.MoveFoundationToTableau(3, 4); err != nil {
		t.Fatalf("move: %v", err)
	}
	if g.FoundationLen[3] != 1 {
		t.Errorf("FoundationLen = %d, want 1", g.FoundationLen[3])
	}
	if g.TableauTop(4) != faceUp(SuitSpades, RankTwo) {
		t.Error("Two of spades should top pile 4")
	}
}

// ---------------------------------------------------------------------------
// Stock operations
// ---------------------------------------------------------------------------

func TestDrawFromStockPopOrder(t *testing.T) {
	var g GameState
	setStock(&g,
		faceDown(SuitHearts, RankTwo),
		faceDown(SuitHearts, RankThree),
		faceDown(SuitHearts, RankFour), // top
	)

	if err := g.DrawFromStock(3); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if g.StockLen != 0 || g.WasteLen != 3 {
		t.Fatalf("StockLen=%d WasteLen=%d", g.StockLen, g.WasteLen)
	}
	// Pop order: Four drawn first, so waste runs Four, Three, Two.
	want := []uint8{RankFour, RankThree, RankTwo}
	for i, rank := range want {
		if g.Waste[i].Rank() != rank {
			t.Errorf("waste[%d].Rank = %d, want %d", i, g.Waste[i].Rank(), rank)
		}
		if !g.Waste[i].FaceUp() {
			t.Errorf("waste[%d] should be face-up", i)
		}
	}
}

func TestDrawFromStockFewerThanRequested(t *testing.T) {
	var g GameState
	setStock(&g, faceDown(SuitHearts, RankTwo))

	if err := g.DrawFromStock(3); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if g.WasteLen != 1 {
		t.Errorf("WasteLen = %d, want 1", g.WasteLen)
	}
}

func TestDrawFromStockEmpty(t *testing.T) {
	var g GameState
	if err := g.DrawFromStock(1); err == nil {
		t.Error("expected error on empty stock")
	}
}

func TestRecycleReversibility(t *testing.T) {
	var g GameState
	setStock(&g,
		faceDown(SuitClubs, RankAce),
		faceDown(SuitClubs, RankTwo),
		faceDown(SuitClubs, RankThree),
	)
	original := g

	// Draw the whole stock out, then recycle: the stock must be restored to
	// its pre-draw content and order, every card face-down.
	for g.StockLen > 0 {
		if err := g.DrawFromStock(1); err != nil {
			t.Fatalf("draw: %v", err)
		}
	}
	if err := g.RecycleWasteToStock(); err != nil {
		t.Fatalf("recycle: %v", err)
	}

	if !equalStates(&g, &original) {
		t.Errorf("recycle did not restore the stock: got %v want %v",
			g.Stock[:g.StockLen], original.Stock[:original.StockLen])
	}
}

func TestRecycleRequiresEmptyStock(t *testing.T) {
	var g GameState
	setStock(&g, faceDown(SuitHearts, RankTwo))
	setWaste(&g, faceUp(SuitHearts, RankThree))

	if err := g.RecycleWasteToStock(); err == nil {
		t.Error("recycle must fail while stock has cards")
	}
}

func TestRecycleRequiresNonEmptyWaste(t *testing.T) {
	var g GameState
	if err := g.RecycleWasteToStock(); err == nil {
		t.Error("recycle must fail with an empty waste")
	}
}

func TestBuryTopOfStock(t *testing.T) {
	var g GameState
	setStock(&g,
		faceDown(SuitHearts, RankTwo), // bottom
		faceDown(SuitHearts, RankThree),
		faceDown(SuitHearts, RankFour), // top
	)

	if err := g.BuryTopOfStock(); err != nil {
		t.Fatalf("bury: %v", err)
	}
	want := []uint8{RankFour, RankTwo, RankThree}
	for i, rank := range want {
		if g.Stock[i].Rank() != rank {
			t.Errorf("stock[%d].Rank = %d, want %d", i, g.Stock[i].Rank(), rank)
		}
	}
	if g.Stock[0].FaceUp() {
		t.Error("bury must not flip the card")
	}
}

func TestBurySingleCardIsNoOp(t *testing.T) {
	var g GameState
	setStock(&g, faceDown(SuitHearts, RankTwo))
	before := g

	if err := g.BuryTopOfStock(); err != nil {
		t.Fatalf("bury: %v", err)
	}
	if !equalStates(&g, &before) {
		t.Error("burying a single-card stock should change nothing")
	}
}

func TestBuryEmptyStockFails(t *testing.T) {
	var g GameState
	if err := g.BuryTopOfStock(); err == nil {
		t.Error("expected error on empty stock")
	}
}

// ---------------------------------------------------------------------------
// Conservation across a mixed sequence
// ---------------------------------------------------------------------------

func TestCardConservationAcrossOperations(t *testing.T) {
	g := DealGame(7)

	for i := 0; i < 30; i++ {
		if g.StockLen > 0 {
			if err := g.DrawFromStock(3); err != nil {
				t.Fatalf("draw %d: %v", i, err)
			}
		} else if g.WasteLen > 0 {
			if err := g.RecycleWasteToStock(); err != nil {
				t.Fatalf("recycle %d: %v", i, err)
			}
		}
		// Opportunistic tableau shuffling keeps the mix interesting.
		for src := 0; src < NumTableau; src++ {
			top := g.TableauTop(src)
			if top == NoCard {
				continue
			}
			for dest := 0; dest < NumTableau; dest++ {
				if dest != src && g.CanPlaceOnTableau(top, dest) {
					_ = g.MoveTableauToTableau(src, int(g.TableauLen[src])-1, dest)
					break
				}
			}
		}
		assertConservation(t, &g)
	}
}
