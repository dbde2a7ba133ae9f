package engine

import "fmt"

// Status is the terminal state of a session.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the status name for display and logging.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "unknown"
}

// Selection identifies a candidate move source. It exists only between a
// select action and the following place or cancel, and is never persisted.
type Selection struct {
	Zone      Zone
	Pile      int
	CardIndex int
}

// Destinations enumerates valid target piles for the active card, in
// ascending index order per category.
type Destinations struct {
	Tableau    []int
	Foundation []int
}

// HasAny reports whether at least one destination exists.
func (d *Destinations) HasAny() bool {
	return len(d.Tableau) > 0 || len(d.Foundation) > 0
}

// Count returns the total number of destinations.
func (d *Destinations) Count() int { return len(d.Tableau) + len(d.Foundation) }

// BuryDecider supplies the synchronous bury-or-decline decision during
// Draw-3 stall recovery. The session blocks on it; returning false declines
// and loses the game. A nil decider is treated as decline.
type BuryDecider func() bool

// Session owns a game in play: the card state, cursor, transient selection,
// stall tracking, and the undo history. All mutation flows through its
// action methods; external collaborators only read.
type Session struct {
	State     GameState
	Cursor    Cursor
	Selection *Selection
	MoveCount int
	Message   string
	Status    Status
	DrawCount int

	// Stall tracking for the draw/recycle machine. MadeProgressSinceLastRecycle
	// starts true and transitions to false only at a recycle.
	MadeProgressSinceLastRecycle bool
	ConsecutiveBurials           int

	// Decider resolves the Draw-3 bury prompt. Set by the owning front end.
	Decider BuryDecider

	undo *UndoStack
}

// NewSession deals a fresh game. drawCount must be 1 or 3.
func NewSession(seed uint64, drawCount int) (*Session, error) {
	if drawCount != 1 && drawCount != 3 {
		return nil, fmt.Errorf("draw count must be 1 or 3, got %d", drawCount)
	}
	return &Session{
		State:                        DealGame(seed),
		DrawCount:                    drawCount,
		Message:                      "Welcome to Klondike! Arrows move, select to pick up.",
		MadeProgressSinceLastRecycle: true,
		undo:                         NewUndoStack(DefaultUndoLimit),
	}, nil
}

// Restart re-deals the game and resets every counter, the cursor, the
// selection, and the undo history. This is the only exit from a lost game.
func (s *Session) Restart(seed uint64) {
	s.State = DealGame(seed)
	s.Cursor = Cursor{}
	s.Selection = nil
	s.MoveCount = 0
	s.Message = "New game started!"
	s.Status = StatusPlaying
	s.MadeProgressSinceLastRecycle = true
	s.ConsecutiveBurials = 0
	s.undo.Clear()
}

// MoveCursor applies one directional cursor step.
func (s *Session) MoveCursor(dir Direction) {
	s.Cursor.Move(dir, &s.State)
}

// CanUndo reports whether an undo snapshot is available.
func (s *Session) CanUndo() bool { return s.undo.CanUndo() }

// ---------------------------------------------------------------------------
// Selection protocol
// ---------------------------------------------------------------------------

// Select tries to select the card(s) under the cursor. On the stock it
// delegates to the stock action instead of creating a selection. Returns
// true when a selection was made or the stock action succeeded.
func (s *Session) Select() bool {
	if s.Status != StatusPlaying {
		s.Message = "Game is over. Restart to play again."
		return false
	}

	switch s.Cursor.Zone {
	case ZoneStock:
		return s.StockAction()

	case ZoneWaste:
		if !s.State.CanPickFromWaste() {
			s.Message = "Waste is empty!"
			return false
		}
		s.Selection = &Selection{Zone: ZoneWaste}
		s.Message = "Card selected. Move to a destination and confirm to place."
		return true

	case ZoneFoundation:
		if s.State.FoundationLen[s.Cursor.Pile] == 0 {
			s.Message = "Foundation is empty!"
			return false
		}
		s.Selection = &Selection{Zone: ZoneFoundation, Pile: s.Cursor.Pile}
		s.Message = "Foundation card selected."
		return true

	case ZoneTableau:
		if s.State.TableauLen[s.Cursor.Pile] == 0 {
			s.Message = "Tableau pile is empty!"
			return false
		}
		if !s.State.CanPickFromTableau(s.Cursor.Pile, s.Cursor.CardIndex) {
			s.Message = "Cannot select face-down card!"
			return false
		}
		s.Selection = &Selection{
			Zone:      ZoneTableau,
			Pile:      s.Cursor.Pile,
			CardIndex: s.Cursor.CardIndex,
		}
		n := int(s.State.TableauLen[s.Cursor.Pile]) - s.Cursor.CardIndex
		if n > 1 {
			s.Message = fmt.Sprintf("%d cards selected.", n)
		} else {
			s.Message = "Card selected."
		}
		return true
	}
	return false
}

// Cancel clears the current selection. Idempotent.
func (s *Session) Cancel() {
	if s.Selection != nil {
		s.Selection = nil
		s.Message = "Selection cancelled."
	} else {
		s.Message = ""
	}
}

// Place tries to place the current selection at the cursor. Placing back on
// the selection's own pile cancels instead of moving.
func (s *Session) Place() bool {
	if s.Status != StatusPlaying {
		s.Message = "Game is over. Restart to play again."
		return false
	}
	if s.Selection == nil {
		return false
	}
	if s.Cursor.Zone == s.Selection.Zone && s.Cursor.Pile == s.Selection.Pile {
		s.Cancel()
		return false
	}

	switch s.Cursor.Zone {
	case ZoneStock:
		s.Message = "Cannot place cards on stock!"
		return false
	case ZoneWaste:
		s.Message = "Cannot place cards on waste!"
		return false
	case ZoneFoundation:
		return s.placeOnFoundation(s.Cursor.Pile)
	case ZoneTableau:
		return s.placeOnTableau(s.Cursor.Pile)
	}
	return false
}

// placeOnFoundation moves the selection to foundation dest. Foundations take
// exactly one card, so multi-card tableau runs are rejected before the
// executor is consulted.
func (s *Session) placeOnFoundation(dest int) bool {
	sel := s.Selection
	if sel.Zone == ZoneFoundation {
		s.Message = "Cannot move foundation to foundation!"
		return false
	}
	if sel.Zone == ZoneTableau && int(s.State.TableauLen[sel.Pile])-sel.CardIndex > 1 {
		s.Message = "Can only move a single card to a foundation!"
		return false
	}

	s.undo.Push(&s.State)
	var err error
	switch sel.Zone {
	case ZoneWaste:
		err = s.State.MoveWasteToFoundation(dest)
	case ZoneTableau:
		err = s.State.MoveTableauToFoundation(sel.Pile, dest)
	default:
		err = fmt.Errorf("invalid source")
	}
	if err != nil {
		// Discard the speculative snapshot so undo never replays a non-move.
		s.undo.Pop()
		s.Message = "Invalid move: " + err.Error()
		return false
	}

	s.Selection = nil
	s.Message = "Moved to foundation!"
	s.recordSuccessfulMove()
	return true
}

// placeOnTableau moves the selection to tableau pile dest.
func (s *Session) placeOnTableau(dest int) bool {
	sel := s.Selection

	s.undo.Push(&s.State)
	var err error
	switch sel.Zone {
	case ZoneWaste:
		err = s.State.MoveWasteToTableau(dest)
	case ZoneTableau:
		err = s.State.MoveTableauToTableau(sel.Pile, sel.CardIndex, dest)
	case ZoneFoundation:
		err = s.State.MoveFoundationToTableau(sel.Pile, dest)
	default:
		err = fmt.Errorf("invalid source")
	}
	if err != nil {
		s.undo.Pop()
		s.Message = "Invalid move: " + err.Error()
		return false
	}

	s.Selection = nil
	s.Message = "Moved!"
	s.recordSuccessfulMove()
	return true
}

// recordSuccessfulMove bumps the move counter, clears stall tracking (one
// legal move anywhere fully resets it), and checks for the win.
func (s *Session) recordSuccessfulMove() {
	s.MoveCount++
	s.MadeProgressSinceLastRecycle = true
	s.ConsecutiveBurials = 0
	if s.CheckWin() {
		s.Status = StatusWon
		s.Message = "You won! All cards on the foundations."
	}
}

// CheckWin reports whether all 52 cards sit on the foundations — the sole
// win condition.
func (s *Session) CheckWin() bool {
	return s.State.FoundationTotal() == DeckSize
}

// ---------------------------------------------------------------------------
// Stock action and stall recovery
// ---------------------------------------------------------------------------

// StockAction drives the stock: draw while cards remain, recycle at the end
// of a pass, and run stall recovery when a full pass made no progress.
//
// The stall machine: recycling with progress resets tracking for the next
// pass. Recycling without progress loses immediately in Draw-1; in Draw-3
// the player may bury the stock's top card before recycling, at most twice
// in a row, after which (or on decline) the game is lost.
func (s *Session) StockAction() bool {
	if s.Status != StatusPlaying {
		s.Message = "Game is over. Restart to play again."
		return false
	}

	if s.State.CanDrawFromStock() {
		avail := int(s.State.StockLen)
		s.undo.Push(&s.State)
		if err := s.State.DrawFromStock(s.DrawCount); err != nil {
			s.undo.Pop()
			s.Message = err.Error()
			return false
		}
		s.MoveCount++
		n := s.DrawCount
		if n > avail {
			n = avail
		}
		s.Message = fmt.Sprintf("Drew %d card(s) from stock.", n)
		return true
	}

	if s.State.WasteLen == 0 {
		s.Message = "Both stock and waste are empty!"
		return false
	}

	// Recycle trigger point: the stock is spent with cards in the waste.
	if s.MadeProgressSinceLastRecycle {
		s.undo.Push(&s.State)
		if err := s.State.RecycleWasteToStock(); err != nil {
			s.undo.Pop()
			s.Message = err.Error()
			return false
		}
		// Progress tracking begins for the next pass. This is the only
		// place the flag goes false.
		s.MadeProgressSinceLastRecycle = false
		s.Message = "Recycled waste into stock."
		return true
	}

	// A full pass produced nothing. Draw-1 has no recovery mechanism.
	if s.DrawCount == 1 {
		s.lose()
		return false
	}
	if s.ConsecutiveBurials >= 2 {
		s.lose()
		return false
	}
	if s.Decider == nil || !s.Decider() {
		s.lose()
		return false
	}

	// Bury accepted: bury, count it, recycle. The bury error is ignored on
	// purpose — at this point the stock is empty, so only the burial
	// counter and the recycle change the position.
	s.undo.Push(&s.State)
	_ = s.State.BuryTopOfStock()
	s.ConsecutiveBurials++
	if err := s.State.RecycleWasteToStock(); err != nil {
		s.undo.Pop()
		s.Message = err.Error()
		return false
	}
	s.MadeProgressSinceLastRecycle = false
	s.Message = "Top card buried. Recycled stock."
	return true
}

// lose marks the session lost. Only Restart leaves this state.
func (s *Session) lose() {
	s.Status = StatusLost
	s.Selection = nil
	s.Message = "No legal moves remain. Game over."
}

// ---------------------------------------------------------------------------
// Undo
// ---------------------------------------------------------------------------

// Undo restores the state from immediately before the last move. Reports
// failure on an empty stack and leaves everything unchanged.
func (s *Session) Undo() bool {
	if s.Status != StatusPlaying {
		s.Message = "Game is over. Restart to play again."
		return false
	}
	snap, ok := s.undo.Pop()
	if !ok {
		s.Message = "Nothing to undo!"
		return false
	}
	s.State.Restore(snap)
	if s.MoveCount > 0 {
		s.MoveCount--
	}
	s.Selection = nil
	s.Message = "Undone!"
	return true
}

// ---------------------------------------------------------------------------
// Destination highlighting
// ---------------------------------------------------------------------------

// ComputeValidDestinations resolves the active card — the selection if one
// exists, else the card under the cursor — and enumerates its legal
// destinations. Foundation destinations are suppressed for multi-card
// tableau selections. Returns nil (with a message) when nothing qualifies.
func (s *Session) ComputeValidDestinations() *Destinations {
	var card Card
	if s.Selection != nil {
		card = s.SelectedCard()
	} else {
		card = s.CardUnderCursor()
	}
	if card == NoCard {
		s.Message = "No card to show placements for!"
		return nil
	}

	d := &Destinations{
		Tableau:    s.State.TableauDestinations(card),
		Foundation: s.State.FoundationDestinations(card),
	}
	if s.Selection != nil && s.Selection.Zone == ZoneTableau {
		if int(s.State.TableauLen[s.Selection.Pile])-s.Selection.CardIndex > 1 {
			d.Foundation = nil
		}
	}
	if !d.HasAny() {
		s.Message = "No valid placements for this card!"
		return nil
	}
	s.Message = fmt.Sprintf("%d valid placement(s) highlighted.", d.Count())
	return d
}

// CardUnderCursor returns the card the cursor rests on, or NoCard. Face-down
// tableau cards and the stock never expose a card.
func (s *Session) CardUnderCursor() Card {
	switch s.Cursor.Zone {
	case ZoneWaste:
		return s.State.WasteTop()
	case ZoneFoundation:
		return s.State.FoundationTop(s.Cursor.Pile)
	case ZoneTableau:
		if s.Cursor.CardIndex < int(s.State.TableauLen[s.Cursor.Pile]) {
			card := s.State.Tableau[s.Cursor.Pile][s.Cursor.CardIndex]
			if card.FaceUp() {
				return card
			}
		}
	}
	return NoCard
}

// SelectedCard returns the base card of the current selection, or NoCard.
func (s *Session) SelectedCard() Card {
	if s.Selection == nil {
		return NoCard
	}
	switch s.Selection.Zone {
	case ZoneWaste:
		return s.State.WasteTop()
	case ZoneFoundation:
		return s.State.FoundationTop(s.Selection.Pile)
	case ZoneTableau:
		if s.Selection.CardIndex < int(s.State.TableauLen[s.Selection.Pile]) {
			return s.State.Tableau[s.Selection.Pile][s.Selection.CardIndex]
		}
	}
	return NoCard
}

// DescribeSelection renders the selection for display, e.g. "Q♠ + 2 more".
func (s *Session) DescribeSelection() string {
	if s.Selection == nil {
		return ""
	}
	card := s.SelectedCard()
	if card == NoCard {
		return "?"
	}
	if s.Selection.Zone == ZoneTableau {
		n := int(s.State.TableauLen[s.Selection.Pile]) - s.Selection.CardIndex
		if n > 1 {
			return fmt.Sprintf("%s + %d more", card, n-1)
		}
	}
	return card.String()
}
