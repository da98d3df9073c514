package models

import (
	"testing"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

func TestSummarizeProgressClamp(t *testing.T) {
	tests := []struct {
		name      string
		amounts   []int
		goal      int
		wantRatio float64
		wantMet   bool
		deficit   int
	}{
		{name: "empty", amounts: nil, goal: 2000, wantRatio: 0, deficit: 2000},
		{name: "partial", amounts: []int{500, 500}, goal: 2000, wantRatio: 0.5, deficit: 1000},
		{name: "one below goal", amounts: []int{1999}, goal: 2000, wantRatio: 0.9995, deficit: 1},
		{name: "exactly goal", amounts: []int{1000, 1000}, goal: 2000, wantRatio: 1, wantMet: true},
		{name: "over goal", amounts: []int{1500, 1500}, goal: 2000, wantRatio: 1, wantMet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log DailyLog
			for _, a := range tt.amounts {
				log = append(log, DrinkEvent{Time: "08:00", Amount: a})
			}
			s := Summarize("2024-01-01", log, tt.goal)

			if s.ProgressRatio < 0 || s.ProgressRatio > 1 {
				t.Fatalf("ProgressRatio = %v, out of [0,1]", s.ProgressRatio)
			}
			if s.ProgressRatio != tt.wantRatio {
				t.Errorf("ProgressRatio = %v, want %v", s.ProgressRatio, tt.wantRatio)
			}
			if s.GoalMet() != tt.wantMet {
				t.Errorf("GoalMet() = %v, want %v", s.GoalMet(), tt.wantMet)
			}
			if (s.ProgressRatio == 1) != tt.wantMet {
				t.Errorf("ProgressRatio == 1 should hold iff goal met (ratio %v, met %v)", s.ProgressRatio, tt.wantMet)
			}
			if s.Deficit != tt.deficit {
				t.Errorf("Deficit = %d, want %d", s.Deficit, tt.deficit)
			}
		})
	}
}

func TestSummarizeHistoryNewestFirst(t *testing.T) {
	log := DailyLog{
		{Time: "08:00", Amount: 100},
		{Time: "09:00", Amount: 300},
		{Time: "10:00", Amount: 500},
	}

	s := Summarize("2024-01-01", log, constants.DailyGoalML)

	if s.Total != 900 {
		t.Errorf("Total = %d, want 900", s.Total)
	}
	if s.Status != constants.StatusRemaining {
		t.Errorf("Status = %q, want %q", s.Status, constants.StatusRemaining)
	}
	if s.Deficit != 1100 {
		t.Errorf("Deficit = %d, want 1100", s.Deficit)
	}

	want := []HistoryEntry{
		{Time: "10:00", Amount: 500, OriginalIndex: 2},
		{Time: "09:00", Amount: 300, OriginalIndex: 1},
		{Time: "08:00", Amount: 100, OriginalIndex: 0},
	}
	if len(s.History) != len(want) {
		t.Fatalf("len(History) = %d, want %d", len(s.History), len(want))
	}
	for i := range want {
		if s.History[i] != want[i] {
			t.Errorf("History[%d] = %+v, want %+v", i, s.History[i], want[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := LogArchive{"2024-01-01": {{Time: "08:00", Amount: 100}}}
	b := a.Clone()
	b["2024-01-01"][0].Amount = 999
	b["2024-01-02"] = DailyLog{}

	if a["2024-01-01"][0].Amount != 100 {
		t.Error("Clone() shares backing array with original")
	}
	if _, ok := a["2024-01-02"]; ok {
		t.Error("Clone() shares map with original")
	}
}

func TestNormalize(t *testing.T) {
	var nilArchive LogArchive
	if got := nilArchive.Normalize(); got == nil {
		t.Error("Normalize() on nil archive returned nil")
	}

	a := LogArchive{"2024-01-01": nil}.Normalize()
	if a["2024-01-01"] == nil {
		t.Error("Normalize() left a nil daily log")
	}
}
