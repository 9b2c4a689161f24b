package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Population: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Population: 50})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}

	// Peak resets after a crash, so a flat follow-up window is quiet
	bookmarks = bd.Check(WindowStats{WindowEndTick: 3600, Population: 50})
	if hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("crash reported twice")
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 600, Population: 12})

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 1200}), BookmarkExtinction) {
		t.Error("expected extinction bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 1800}), BookmarkExtinction) {
		t.Error("extinction should be reported once")
	}
}

func TestBookmarkDetector_GenerationMilestone(t *testing.T) {
	bd := NewBookmarkDetector(10)

	tests := []struct {
		maxGen int
		want   bool
	}{
		{3, false},
		{10, true},
		{12, false},
		{25, true},
		{29, false},
		{30, true},
	}

	for i, tt := range tests {
		got := hasBookmark(bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Population:    20,
			MaxGeneration: tt.maxGen,
		}), BookmarkGenerationMilestone)
		if got != tt.want {
			t.Errorf("max generation %d: milestone = %v, want %v", tt.maxGen, got, tt.want)
		}
	}
}

func TestBookmarkDetector_BabyBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Population: 40, Births: 3})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Population: 40, Births: 9})
	if !hasBookmark(bookmarks, BookmarkBabyBoom) {
		t.Error("expected baby_boom bookmark")
	}
}

func TestBookmarkDetector_StablePopulation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 15; i++ {
		if hasBookmark(bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Population:    50 + i%2,
		}), BookmarkStablePopulation) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_population fired %d times, want 1", fired)
	}
}
