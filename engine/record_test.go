package engine

import (
	"encoding/json"
	"testing"
)

func TestSessionRecordRoundTrip(t *testing.T) {
	s := newTestSession(t, 3)
	s.StockAction() // draw
	s.MadeProgressSinceLastRecycle = false
	s.ConsecutiveBurials = 1

	rec := s.Record(127.5)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded SessionRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := RestoreSession(decoded)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	if !equalStates(&restored.State, &s.State) {
		t.Error("restored state differs from the saved one")
	}
	if restored.MoveCount != s.MoveCount {
		t.Errorf("MoveCount = %d, want %d", restored.MoveCount, s.MoveCount)
	}
	if restored.DrawCount != 3 {
		t.Errorf("DrawCount = %d, want 3", restored.DrawCount)
	}
	if restored.MadeProgressSinceLastRecycle {
		t.Error("progress flag lost in the round trip")
	}
	if restored.ConsecutiveBurials != 1 {
		t.Errorf("ConsecutiveBurials = %d, want 1", restored.ConsecutiveBurials)
	}
	assertConservation(t, &restored.State)
}

func TestRecordSuitNames(t *testing.T) {
	g := GameState{RNG: 1}
	setWaste(&g, faceUp(SuitHearts, RankAce), faceUp(SuitSpades, RankKing))

	rec := StateToRecord(&g)
	if rec.Waste[0].Suit != "hearts" || rec.Waste[1].Suit != "spades" {
		t.Errorf("suits = %q, %q", rec.Waste[0].Suit, rec.Waste[1].Suit)
	}
	if rec.Waste[1].Rank != 13 || !rec.Waste[1].FaceUp {
		t.Errorf("king record = %+v", rec.Waste[1])
	}
}

func TestNormalizeFillsMissingStallFields(t *testing.T) {
	// Older saves predate stall tracking and omit both fields. Normalize
	// must default towards "no stall in sight".
	var rec SessionRecord
	rec.Normalize()

	if rec.MadeProgress == nil || !*rec.MadeProgress {
		t.Error("missing progress flag must default to true")
	}
	if rec.ConsecutiveBurials == nil || *rec.ConsecutiveBurials != 0 {
		t.Error("missing burial counter must default to 0")
	}
}

func TestNormalizeKeepsPresentValues(t *testing.T) {
	progress := false
	burials := 2
	rec := SessionRecord{MadeProgress: &progress, ConsecutiveBurials: &burials}
	rec.Normalize()

	if *rec.MadeProgress || *rec.ConsecutiveBurials != 2 {
		t.Error("Normalize must never overwrite present values")
	}
}

func TestRestoreSessionLegacyRecord(t *testing.T) {
	s := newTestSession(t, 1)
	rec := s.Record(0)
	rec.MadeProgress = nil
	rec.ConsecutiveBurials = nil

	restored, err := RestoreSession(rec)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	if !restored.MadeProgressSinceLastRecycle || restored.ConsecutiveBurials != 0 {
		t.Error("legacy records resume with fresh stall tracking")
	}
}

func TestRestoreSessionRejectsBadDrawCount(t *testing.T) {
	s := newTestSession(t, 1)
	rec := s.Record(0)
	rec.DrawCount = 2

	if _, err := RestoreSession(rec); err == nil {
		t.Error("draw count 2 must be rejected")
	}
}

func TestStateFromRecordRejectsMalformedCards(t *testing.T) {
	base := func() StateRecord {
		g := GameState{RNG: 1}
		return StateToRecord(&g)
	}

	tests := []struct {
		name   string
		mutate func(*StateRecord)
	}{
		{"bad rank", func(r *StateRecord) {
			r.Stock = []CardRecord{{Rank: 14, Suit: "hearts"}}
		}},
		{"zero rank", func(r *StateRecord) {
			r.Stock = []CardRecord{{Rank: 0, Suit: "hearts"}}
		}},
		{"bad suit", func(r *StateRecord) {
			r.Waste = []CardRecord{{Rank: 5, Suit: "stars"}}
		}},
		{"oversized stock", func(r *StateRecord) {
			r.Stock = make([]CardRecord, StockMax+1)
			for i := range r.Stock {
				r.Stock[i] = CardRecord{Rank: 1, Suit: "hearts"}
			}
		}},
		{"missing foundation", func(r *StateRecord) {
			r.Foundations = r.Foundations[:3]
		}},
		{"extra tableau pile", func(r *StateRecord) {
			r.Tableau = append(r.Tableau, nil)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := base()
			tc.mutate(&rec)
			if _, err := StateFromRecord(rec); err == nil {
				t.Error("malformed record must be rejected")
			}
		})
	}
}

func TestStateFromRecordResetsRNG(t *testing.T) {
	g := DealGame(7)
	rec := StateToRecord(&g)

	restored, err := StateFromRecord(rec)
	if err != nil {
		t.Fatalf("StateFromRecord: %v", err)
	}
	if restored.RNG == 0 {
		t.Error("restored state needs a live RNG seed")
	}
	if !equalStates(&restored, &g) {
		t.Error("restored placement differs from the original")
	}
}
