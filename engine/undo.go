package engine

// DefaultUndoLimit caps how many snapshots an UndoStack retains.
const DefaultUndoLimit = 100

// UndoStack is a bounded stack of GameState snapshots. When the cap is
// exceeded the oldest entry is evicted first, so recent undo depth is
// preserved over a long session.
type UndoStack struct {
	snaps []Snapshot
	limit int
}

// NewUndoStack creates an UndoStack holding at most limit snapshots.
// A non-positive limit falls back to DefaultUndoLimit.
func NewUndoStack(limit int) *UndoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &UndoStack{limit: limit}
}

// Push appends an independent snapshot of g. Snapshots are value copies, so
// later mutation of the live state cannot alias into the stack.
func (u *UndoStack) Push(g *GameState) {
	u.snaps = append(u.snaps, g.Save())
	if len(u.snaps) > u.limit {
		n := copy(u.snaps, u.snaps[len(u.snaps)-u.limit:])
		u.snaps = u.snaps[:n]
	}
}

// Pop removes and returns the most recent snapshot. The second return is
// false when the stack is empty.
func (u *UndoStack) Pop() (Snapshot, bool) {
	if len(u.snaps) == 0 {
		return Snapshot{}, false
	}
	s := u.snaps[len(u.snaps)-1]
	u.snaps = u.snaps[:len(u.snaps)-1]
	return s, true
}

// CanUndo reports whether a snapshot is available.
func (u *UndoStack) CanUndo() bool { return len(u.snaps) > 0 }

// Len returns the number of stored snapshots.
func (u *UndoStack) Len() int { return len(u.snaps) }

// Clear drops all snapshots.
func (u *UndoStack) Clear() { u.snaps = u.snaps[:0] }
