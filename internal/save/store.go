// Package save persists games to a slot-based JSON save file.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/klondiketui/klondike/engine"
)

// MaxSlots is the number of save slots in the file.
const MaxSlots = 10

// FileName is the save file's name inside the data directory.
const FileName = "save.json"

// Entry is one occupied save slot: a full session record plus the save time.
type Entry struct {
	engine.SessionRecord
	SavedAt string `json:"saved_at"`
}

// Summary describes an occupied slot without its card state.
type Summary struct {
	Slot           int
	MoveCount      int
	ElapsedSeconds float64
	DrawCount      int
	SavedAt        string
}

// fileFormat is the on-disk shape. JSON object keys are strings, so slots
// are keyed "1".."10".
type fileFormat struct {
	Slots map[string]Entry `json:"slots"`
}

// Store reads and writes the slot file. An unreadable or corrupted file is
// treated as empty rather than an error; a save then starts the file over.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store over dataDir/save.json, creating dataDir as
// needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dataDir, FileName)}, nil
}

// loadSlots reads the slot map from disk. Missing or unparsable files yield
// an empty map. Saves in the old single-game format (a bare record with no
// "slots" key) are migrated into slot 1 and written back once.
func (s *Store) loadSlots() map[int]Entry {
	slots := make(map[int]Entry)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return slots
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return slots
	}

	if _, hasSlots := probe["slots"]; !hasSlots {
		if _, hasState := probe["state"]; hasState {
			return s.migrateLegacy(data)
		}
		return slots
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return slots
	}
	for key, entry := range f.Slots {
		slot, err := strconv.Atoi(key)
		if err != nil || slot < 1 || slot > MaxSlots {
			continue
		}
		slots[slot] = entry
	}
	return slots
}

// migrateLegacy converts an old single-game save into slot 1 and persists
// the new format so later reads skip this path.
func (s *Store) migrateLegacy(data []byte) map[int]Entry {
	slots := make(map[int]Entry)

	var rec engine.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return slots
	}
	rec.Normalize()
	slots[1] = Entry{SessionRecord: rec, SavedAt: timestamp()}
	_ = s.writeSlots(slots)
	return slots
}

func (s *Store) writeSlots(slots map[int]Entry) error {
	f := fileFormat{Slots: make(map[string]Entry, len(slots))}
	for slot, entry := range slots {
		f.Slots[strconv.Itoa(slot)] = entry
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func timestamp() string {
	return time.Now().Format("2006-01-02T15:04:05")
}

// HasSaves reports whether at least one slot is occupied.
func (s *Store) HasSaves() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadSlots()) > 0
}

// AllSlotsFull reports whether every slot is occupied.
func (s *Store) AllSlotsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadSlots()) >= MaxSlots
}

// NextFreeSlot returns the lowest-numbered free slot, or false when the
// file is full.
func (s *Store) NextFreeSlot() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := s.loadSlots()
	for slot := 1; slot <= MaxSlots; slot++ {
		if _, ok := slots[slot]; !ok {
			return slot, true
		}
	}
	return 0, false
}

// ListSaves returns a summary per occupied slot, in slot order. The card
// state is left out to keep the listing light.
func (s *Store) ListSaves() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := s.loadSlots()

	summaries := make([]Summary, 0, len(slots))
	for slot, entry := range slots {
		summaries = append(summaries, Summary{
			Slot:           slot,
			MoveCount:      entry.MoveCount,
			ElapsedSeconds: entry.ElapsedSeconds,
			DrawCount:      entry.DrawCount,
			SavedAt:        entry.SavedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slot < summaries[j].Slot })
	return summaries
}

// SaveGame writes a session record into the given slot, overwriting any
// existing save there.
func (s *Store) SaveGame(slot int, rec engine.SessionRecord) error {
	if slot < 1 || slot > MaxSlots {
		return fmt.Errorf("slot must be 1..%d, got %d", MaxSlots, slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := s.loadSlots()
	slots[slot] = Entry{SessionRecord: rec, SavedAt: timestamp()}
	return s.writeSlots(slots)
}

// LoadGame reads the record in the given slot. The record comes back
// normalized, so resuming a save written before stall tracking existed
// never fabricates a stall.
func (s *Store) LoadGame(slot int) (engine.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.loadSlots()[slot]
	if !ok {
		return engine.SessionRecord{}, fmt.Errorf("slot %d is empty", slot)
	}
	rec := entry.SessionRecord
	rec.Normalize()
	return rec, nil
}

// DeleteSave removes the save in the given slot. Deleting an empty slot is
// a no-op.
func (s *Store) DeleteSave(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := s.loadSlots()
	if _, ok := slots[slot]; !ok {
		return nil
	}
	delete(slots, slot)
	return s.writeSlots(slots)
}
