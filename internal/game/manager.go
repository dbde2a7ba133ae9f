// Package game manages a running Klondike session: identity, timing,
// structured logging, persistence wiring, and the abstract action dispatch
// that front ends drive.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/klondiketui/klondike/engine"
	"github.com/klondiketui/klondike/internal/config"
	"github.com/klondiketui/klondike/internal/leaderboard"
	"github.com/klondiketui/klondike/internal/save"
)

// Action is an abstract input to the game, decoupled from key bindings.
type Action uint8

const (
	ActionNone Action = iota
	ActionCursorUp
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionSelect
	ActionPlace
	ActionCancel
	ActionStock
	ActionUndo
	ActionRestart
	ActionShowDestinations
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionCursorUp:         "cursor_up",
	ActionCursorDown:       "cursor_down",
	ActionCursorLeft:       "cursor_left",
	ActionCursorRight:      "cursor_right",
	ActionSelect:           "select",
	ActionPlace:            "place",
	ActionCancel:           "cancel",
	ActionStock:            "stock",
	ActionUndo:             "undo",
	ActionRestart:          "restart",
	ActionShowDestinations: "show_destinations",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", a)
}

// Manager owns one game in play. It wraps the session with a stable ID, a
// play timer, save/leaderboard wiring, and logging; all front-end input
// arrives through HandleAction.
type Manager struct {
	ID      uuid.UUID
	Session *engine.Session
	Timer   Timer

	// Highlights holds the destinations from the last show-destinations
	// action; any other action clears it.
	Highlights *engine.Destinations

	cfg   config.Config
	saves *save.Store
	board *leaderboard.Board
	log   *logrus.Entry
}

// NewManager deals a new game from the configured seed (clock-seeded when
// zero) and starts the timer.
func NewManager(cfg config.Config, saves *save.Store, board *leaderboard.Board, logger *logrus.Logger) (*Manager, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sess, err := engine.NewSession(seed, cfg.DrawCount)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	m := &Manager{
		ID:      id,
		Session: sess,
		cfg:     cfg,
		saves:   saves,
		board:   board,
		log:     logger.WithField("game_id", id),
	}
	m.Timer.Start()
	m.log.WithFields(logrus.Fields{
		"seed":       seed,
		"draw_count": cfg.DrawCount,
	}).Info("game started")
	return m, nil
}

// SetBuryDecider installs the front end's synchronous bury prompt.
func (m *Manager) SetBuryDecider(d engine.BuryDecider) {
	m.Session.Decider = d
}

// HandleAction applies one abstract action to the session and reports
// whether it changed anything. Destination highlights survive only until
// the next action.
func (m *Manager) HandleAction(a Action) bool {
	s := m.Session

	if a != ActionShowDestinations {
		m.Highlights = nil
	}

	var acted bool
	switch a {
	case ActionCursorUp:
		s.MoveCursor(engine.DirUp)
		acted = true
	case ActionCursorDown:
		s.MoveCursor(engine.DirDown)
		acted = true
	case ActionCursorLeft:
		s.MoveCursor(engine.DirLeft)
		acted = true
	case ActionCursorRight:
		s.MoveCursor(engine.DirRight)
		acted = true
	case ActionSelect:
		acted = s.Select()
	case ActionPlace:
		acted = s.Place()
	case ActionCancel:
		s.Cancel()
		acted = true
	case ActionStock:
		acted = s.StockAction()
	case ActionUndo:
		acted = s.Undo()
	case ActionRestart:
		m.Restart()
		acted = true
	case ActionShowDestinations:
		m.Highlights = s.ComputeValidDestinations()
		acted = m.Highlights != nil
	default:
		return false
	}

	m.log.WithFields(logrus.Fields{
		"action":     a.String(),
		"move_count": s.MoveCount,
		"status":     s.Status,
	}).Debug("action handled")

	if s.Status != engine.StatusPlaying {
		m.Timer.Pause()
	}
	return acted
}

// Restart re-deals from a fresh clock seed and resets the timer.
func (m *Manager) Restart() {
	seed := uint64(time.Now().UnixNano())
	m.Session.Restart(seed)
	m.Highlights = nil
	m.Timer.Reset()
	m.Timer.Start()
	m.log.WithField("seed", seed).Info("game restarted")
}

// Save writes the session into the given slot.
func (m *Manager) Save(slot int) error {
	if m.saves == nil {
		return fmt.Errorf("no save store configured")
	}
	if err := m.saves.SaveGame(slot, m.Session.Record(m.Timer.Elapsed())); err != nil {
		return err
	}
	m.log.WithField("slot", slot).Info("game saved")
	return nil
}

// SaveNew writes the session into the lowest free slot and returns it.
func (m *Manager) SaveNew() (int, error) {
	if m.saves == nil {
		return 0, fmt.Errorf("no save store configured")
	}
	slot, ok := m.saves.NextFreeSlot()
	if !ok {
		return 0, fmt.Errorf("all %d save slots are full", save.MaxSlots)
	}
	return slot, m.Save(slot)
}

// Load replaces the running session with the save in the given slot and
// restores its play clock.
func (m *Manager) Load(slot int) error {
	if m.saves == nil {
		return fmt.Errorf("no save store configured")
	}
	rec, err := m.saves.LoadGame(slot)
	if err != nil {
		return err
	}
	sess, err := engine.RestoreSession(rec)
	if err != nil {
		return err
	}
	decider := m.Session.Decider
	sess.Decider = decider
	m.Session = sess
	m.Highlights = nil
	m.Timer.Reset()
	m.Timer.SetElapsed(rec.ElapsedSeconds)
	m.Timer.Start()
	m.log.WithField("slot", slot).Info("game loaded")
	return nil
}

// WinQualifies reports whether the finished game would make the
// leaderboard.
func (m *Manager) WinQualifies() bool {
	if m.board == nil || m.Session.Status != engine.StatusWon {
		return false
	}
	return m.board.Qualifies(m.Session.MoveCount, int(m.Timer.Elapsed()+0.5), m.cfg.DrawCount)
}

// RecordWin puts the finished game on the leaderboard and returns its
// 1-based position, or -1 when it did not place.
func (m *Manager) RecordWin(initials string) (int, error) {
	if m.board == nil {
		return -1, fmt.Errorf("no leaderboard configured")
	}
	if m.Session.Status != engine.StatusWon {
		return -1, fmt.Errorf("game is not won")
	}
	pos, err := m.board.AddEntry(initials, m.Session.MoveCount, int(m.Timer.Elapsed()+0.5), m.cfg.DrawCount)
	if err != nil {
		return -1, err
	}
	m.log.WithFields(logrus.Fields{
		"initials": initials,
		"position": pos,
	}).Info("win recorded")
	return pos, nil
}
