// Package leaderboard keeps the best finished games per draw mode.
package leaderboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// MaxEntries is how many entries each draw mode's board retains.
const MaxEntries = 20

// FileName is the leaderboard file's name inside the data directory.
const FileName = "leaderboard.json"

// Entry is one finished game on the board.
type Entry struct {
	Initials    string `json:"initials"`
	Moves       int    `json:"moves"`
	TimeSeconds int    `json:"time_seconds"`
	DrawMode    int    `json:"draw_mode"`
}

type fileFormat struct {
	Draw1 []Entry `json:"draw1"`
	Draw3 []Entry `json:"draw3"`
}

// Board is the persistent leaderboard, one ranked list per draw mode.
// A corrupted file starts the board fresh.
type Board struct {
	mu    sync.Mutex
	path  string
	draw1 []Entry
	draw3 []Entry
}

// New loads the board from dataDir/leaderboard.json, creating dataDir as
// needed.
func New(dataDir string) (*Board, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	b := &Board{path: filepath.Join(dataDir, FileName)}
	b.load()
	return b, nil
}

func (b *Board) load() {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return
	}
	b.draw1 = f.Draw1
	b.draw3 = f.Draw3
}

func (b *Board) save() error {
	data, err := json.MarshalIndent(fileFormat{Draw1: b.draw1, Draw3: b.draw3}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0o644)
}

// normalizeInitials uppercases and forces exactly three characters,
// truncating or right-padding with spaces.
func normalizeInitials(initials string) string {
	s := strings.ToUpper(initials)
	if len(s) > 3 {
		s = s[:3]
	}
	for len(s) < 3 {
		s += " "
	}
	return s
}

func rankEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Moves != entries[j].Moves {
			return entries[i].Moves < entries[j].Moves
		}
		return entries[i].TimeSeconds < entries[j].TimeSeconds
	})
}

// AddEntry records a finished game and returns its 1-based position on the
// board, or -1 when it did not make the top entries. The board is persisted
// on every addition.
func (b *Board) AddEntry(initials string, moves, timeSeconds, drawMode int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := Entry{
		Initials:    normalizeInitials(initials),
		Moves:       moves,
		TimeSeconds: timeSeconds,
		DrawMode:    drawMode,
	}

	entries := b.entriesFor(drawMode)
	entries = append(entries, entry)
	rankEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	b.setEntriesFor(drawMode, entries)

	if err := b.save(); err != nil {
		return -1, err
	}
	for i, e := range entries {
		if e == entry {
			return i + 1, nil
		}
	}
	return -1, nil
}

// Qualifies reports whether a finished game would make the board without
// recording it.
func (b *Board) Qualifies(moves, timeSeconds, drawMode int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.entriesFor(drawMode)
	if len(entries) < MaxEntries {
		return true
	}
	last := entries[len(entries)-1]
	if moves != last.Moves {
		return moves < last.Moves
	}
	return timeSeconds < last.TimeSeconds
}

// Entries returns a copy of the ranked list for a draw mode.
func (b *Board) Entries(drawMode int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.entriesFor(drawMode)
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func (b *Board) entriesFor(drawMode int) []Entry {
	if drawMode == 1 {
		return b.draw1
	}
	return b.draw3
}

func (b *Board) setEntriesFor(drawMode int, entries []Entry) {
	if drawMode == 1 {
		b.draw1 = entries
	} else {
		b.draw3 = entries
	}
}
