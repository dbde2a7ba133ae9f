// Command klondike is the interactive terminal front end.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"atomicgo.dev/keyboard/keys"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"

	"github.com/klondiketui/klondike/engine"
	"github.com/klondiketui/klondike/internal/config"
	"github.com/klondiketui/klondike/internal/game"
	"github.com/klondiketui/klondike/internal/leaderboard"
	"github.com/klondiketui/klondike/internal/save"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("configuration: %v", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		pterm.Error.Printfln("logging: %v", err)
		os.Exit(1)
	}

	saves, err := save.NewStore(cfg.DataDir)
	if err != nil {
		pterm.Error.Printfln("save store: %v", err)
		os.Exit(1)
	}
	board, err := leaderboard.New(cfg.DataDir)
	if err != nil {
		pterm.Error.Printfln("leaderboard: %v", err)
		os.Exit(1)
	}

	m, err := game.NewManager(cfg, saves, board, logger)
	if err != nil {
		pterm.Error.Printfln("new game: %v", err)
		os.Exit(1)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Klon", pterm.FgLightGreen.ToStyle()),
		putils.LettersFromStringWithStyle("dike", pterm.FgLightWhite.ToStyle()),
	).Render()

	keyCh := make(chan keys.Key, 8)
	stop := make(chan struct{})
	go listenKeys(keyCh, stop)
	defer close(stop)

	m.SetBuryDecider(func() bool { return promptBury(m, keyCh) })

	wonRecorded := false
	for {
		render(m)

		key := <-keyCh
		in := decodeKey(key)
		switch {
		case in.Cmd == cmdQuit:
			pterm.Println("Thanks for playing!")
			return
		case in.Cmd == cmdSave:
			saveGame(m)
		case in.Cmd == cmdLoad:
			loadGame(m, saves, keyCh)
			wonRecorded = false
		case in.Action != game.ActionNone:
			if in.Action == game.ActionRestart {
				wonRecorded = false
			}
			m.HandleAction(in.Action)
		}

		if m.Session.Status == engine.StatusWon && !wonRecorded {
			wonRecorded = true
			celebrateWin(m, keyCh)
		}
	}
}

// newLogger logs to a file in the data directory so log lines never tear
// the board.
func newLogger(cfg config.Config) (*logrus.Logger, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, "klondike.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(f)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger, nil
}

// promptBury runs the synchronous Draw-3 stall prompt. The game blocks
// until the player answers.
func promptBury(m *game.Manager, keyCh <-chan keys.Key) bool {
	render(m)
	pterm.Warning.Println("No progress this pass. Bury the top stock card and recycle? (y/n)")
	for key := range keyCh {
		switch strings.ToLower(key.String()) {
		case "y":
			return true
		case "n":
			return false
		}
		if key.Code == keys.Escape {
			return false
		}
	}
	return false
}

func saveGame(m *game.Manager) {
	slot, err := m.SaveNew()
	if err != nil {
		m.Session.Message = fmt.Sprintf("Save failed: %v", err)
		return
	}
	m.Session.Message = fmt.Sprintf("Saved to slot %d.", slot)
}

// loadGame lists the occupied slots and waits for a slot digit (0 = slot
// 10) or escape.
func loadGame(m *game.Manager, saves *save.Store, keyCh <-chan keys.Key) {
	summaries := saves.ListSaves()
	if len(summaries) == 0 {
		m.Session.Message = "No saved games."
		return
	}

	render(m)
	for _, s := range summaries {
		pterm.Printfln("  slot %2d: %d moves, %s, Draw-%d, saved %s",
			s.Slot, s.MoveCount, formatElapsed(s.ElapsedSeconds), s.DrawCount, s.SavedAt)
	}
	pterm.Info.Println("Press a slot number to load (0 = slot 10), esc to cancel.")

	for key := range keyCh {
		if key.Code == keys.Escape {
			m.Session.Message = "Load cancelled."
			return
		}
		slot, err := strconv.Atoi(key.String())
		if err != nil {
			continue
		}
		if slot == 0 {
			slot = 10
		}
		if err := m.Load(slot); err != nil {
			m.Session.Message = fmt.Sprintf("Load failed: %v", err)
		}
		return
	}
}

// celebrateWin shows the win and, when the game places, collects initials
// for the leaderboard.
func celebrateWin(m *game.Manager, keyCh <-chan keys.Key) {
	render(m)
	if !m.WinQualifies() {
		return
	}

	pterm.Success.Println("You made the leaderboard! Type your initials (3 letters, enter to confirm).")
	var initials strings.Builder
	for key := range keyCh {
		if key.Code == keys.Enter && initials.Len() > 0 {
			break
		}
		if key.Code == keys.Escape {
			return
		}
		s := key.String()
		if len(s) == 1 && initials.Len() < 3 {
			initials.WriteString(s)
			pterm.Print(strings.ToUpper(s))
		}
		if initials.Len() == 3 {
			break
		}
	}

	pos, err := m.RecordWin(initials.String())
	if err != nil || pos < 0 {
		return
	}
	pterm.Println()
	pterm.Success.Printfln("Leaderboard position: #%d", pos)
}
