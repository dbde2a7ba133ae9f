package engine

import "fmt"

// Persistence contract. The engine serializes a session to plain structured
// records and rebuilds one from them; file storage, slot management, and
// corruption handling belong to external collaborators.

var suitNames = [4]string{"hearts", "diamonds", "clubs", "spades"}

// CardRecord is the wire form of a single card.
type CardRecord struct {
	Rank   int    `json:"rank"`
	Suit   string `json:"suit"`
	FaceUp bool   `json:"face_up"`
}

// StateRecord is the wire form of a GameState.
type StateRecord struct {
	Stock       []CardRecord   `json:"stock"`
	Waste       []CardRecord   `json:"waste"`
	Foundations [][]CardRecord `json:"foundations"`
	Tableau     [][]CardRecord `json:"tableau"`
}

// SessionRecord is the wire form of a full session. The two stall-tracking
// fields are pointers so an absent field is distinguishable from a present
// false/zero; Normalize fills the generous defaults exactly once at the
// persistence boundary.
type SessionRecord struct {
	State              StateRecord `json:"state"`
	MoveCount          int         `json:"move_count"`
	ElapsedSeconds     float64     `json:"elapsed_time"`
	DrawCount          int         `json:"draw_count"`
	MadeProgress       *bool       `json:"made_progress_since_last_recycle,omitempty"`
	ConsecutiveBurials *int        `json:"consecutive_burials,omitempty"`
}

// Normalize fills defaults for fields older records omit. Progress defaults
// to true and burials to zero: resuming an unknown history must never cause
// a false stall loss.
func (r *SessionRecord) Normalize() {
	if r.MadeProgress == nil {
		v := true
		r.MadeProgress = &v
	}
	if r.ConsecutiveBurials == nil {
		v := 0
		r.ConsecutiveBurials = &v
	}
}

func cardToRecord(c Card) CardRecord {
	return CardRecord{Rank: int(c.Rank()), Suit: suitNames[c.Suit()], FaceUp: c.FaceUp()}
}

func cardFromRecord(r CardRecord) (Card, error) {
	if r.Rank < int(RankAce) || r.Rank > int(RankKing) {
		return NoCard, fmt.Errorf("invalid card rank %d", r.Rank)
	}
	for suit, name := range suitNames {
		if name == r.Suit {
			c := NewCard(uint8(suit), uint8(r.Rank))
			if r.FaceUp {
				c = c.Flip()
			}
			return c, nil
		}
	}
	return NoCard, fmt.Errorf("invalid card suit %q", r.Suit)
}

func pileToRecords(pile []Card) []CardRecord {
	recs := make([]CardRecord, len(pile))
	for i, c := range pile {
		recs[i] = cardToRecord(c)
	}
	return recs
}

// StateToRecord converts a GameState to its wire form.
func StateToRecord(g *GameState) StateRecord {
	rec := StateRecord{
		Stock:       pileToRecords(g.Stock[:g.StockLen]),
		Waste:       pileToRecords(g.Waste[:g.WasteLen]),
		Foundations: make([][]CardRecord, NumFoundations),
		Tableau:     make([][]CardRecord, NumTableau),
	}
	for f := 0; f < NumFoundations; f++ {
		rec.Foundations[f] = pileToRecords(g.Foundations[f][:g.FoundationLen[f]])
	}
	for p := 0; p < NumTableau; p++ {
		rec.Tableau[p] = pileToRecords(g.Tableau[p][:g.TableauLen[p]])
	}
	return rec
}

// StateFromRecord rebuilds a GameState from its wire form, rejecting
// malformed cards and oversized piles.
func StateFromRecord(rec StateRecord) (GameState, error) {
	var g GameState

	fill := func(dst []Card, max int, src []CardRecord, name string) (uint8, error) {
		if len(src) > max {
			return 0, fmt.Errorf("%s pile has %d cards, max %d", name, len(src), max)
		}
		for i, cr := range src {
			c, err := cardFromRecord(cr)
			if err != nil {
				return 0, fmt.Errorf("%s pile: %w", name, err)
			}
			dst[i] = c
		}
		return uint8(len(src)), nil
	}

	var err error
	if g.StockLen, err = fill(g.Stock[:], StockMax, rec.Stock, "stock"); err != nil {
		return GameState{}, err
	}
	if g.WasteLen, err = fill(g.Waste[:], StockMax, rec.Waste, "waste"); err != nil {
		return GameState{}, err
	}
	if len(rec.Foundations) != NumFoundations {
		return GameState{}, fmt.Errorf("expected %d foundations, got %d", NumFoundations, len(rec.Foundations))
	}
	for f := 0; f < NumFoundations; f++ {
		if g.FoundationLen[f], err = fill(g.Foundations[f][:], FoundationMax, rec.Foundations[f], "foundation"); err != nil {
			return GameState{}, err
		}
	}
	if len(rec.Tableau) != NumTableau {
		return GameState{}, fmt.Errorf("expected %d tableau piles, got %d", NumTableau, len(rec.Tableau))
	}
	for p := 0; p < NumTableau; p++ {
		if g.TableauLen[p], err = fill(g.Tableau[p][:], TableauMax, rec.Tableau[p], "tableau"); err != nil {
			return GameState{}, err
		}
	}
	g.RNG = 1
	return g, nil
}

// Record serializes the session with the given elapsed play time.
func (s *Session) Record(elapsedSeconds float64) SessionRecord {
	progress := s.MadeProgressSinceLastRecycle
	burials := s.ConsecutiveBurials
	return SessionRecord{
		State:              StateToRecord(&s.State),
		MoveCount:          s.MoveCount,
		ElapsedSeconds:     elapsedSeconds,
		DrawCount:          s.DrawCount,
		MadeProgress:       &progress,
		ConsecutiveBurials: &burials,
	}
}

// RestoreSession rebuilds a playable session from a record. The record is
// normalized first, so resuming an old save never fabricates a stall.
func RestoreSession(rec SessionRecord) (*Session, error) {
	if rec.DrawCount != 1 && rec.DrawCount != 3 {
		return nil, fmt.Errorf("draw count must be 1 or 3, got %d", rec.DrawCount)
	}
	rec.Normalize()

	state, err := StateFromRecord(rec.State)
	if err != nil {
		return nil, err
	}
	return &Session{
		State:                        state,
		DrawCount:                    rec.DrawCount,
		MoveCount:                    rec.MoveCount,
		Message:                      "Game loaded.",
		MadeProgressSinceLastRecycle: *rec.MadeProgress,
		ConsecutiveBurials:           *rec.ConsecutiveBurials,
		undo:                         NewUndoStack(DefaultUndoLimit),
	}, nil
}
