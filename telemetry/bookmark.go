package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction          BookmarkType = "extinction"
	BookmarkPopulationCrash     BookmarkType = "population_crash"
	BookmarkBabyBoom            BookmarkType = "baby_boom"
	BookmarkGenerationMilestone BookmarkType = "generation_milestone"
	BookmarkStablePopulation    BookmarkType = "stable_population"
)

// GenerationMilestoneStep is the spacing of generation milestones.
const GenerationMilestoneStep = 10

// Bookmark marks a notable moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	recentPeak      int // peak population since the last crash
	stableWindows   int // consecutive windows with low population variance
	nextMilestone   int
	extinctReported bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable population detection
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		nextMilestone: GenerationMilestoneStep,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkExtinction(stats))
	add(bd.checkMilestone(stats))
	if len(bd.getHistory()) > 0 {
		add(bd.checkCrash(stats))
		add(bd.checkBabyBoom(stats))
		add(bd.checkStable(stats))
	}

	bd.addToHistory(stats)
	bd.recentPeak = max(bd.recentPeak, stats.Population)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the held windows in storage order.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Population > 0 {
		bd.extinctReported = false
		return nil
	}
	if bd.extinctReported {
		return nil
	}
	bd.extinctReported = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population died out (peak %d)", max(bd.recentPeak, stats.Population)),
	}
}

func (bd *BookmarkDetector) checkMilestone(stats WindowStats) *Bookmark {
	if stats.MaxGeneration < bd.nextMilestone {
		return nil
	}
	reached := stats.MaxGeneration / GenerationMilestoneStep * GenerationMilestoneStep
	bd.nextMilestone = reached + GenerationMilestoneStep
	return &Bookmark{
		Type:        BookmarkGenerationMilestone,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Generation %d reached", reached),
	}
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 || stats.Population == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.30 && stats.Population < bd.recentPeak-10 {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkBabyBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Births
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Births) > avg*2 && stats.Births >= 5 {
		return &Bookmark{
			Type:        BookmarkBabyBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d births is %.1fx average (%.1f)", stats.Births, float64(stats.Births)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStable(stats WindowStats) *Bookmark {
	if stats.Population < 10 {
		bd.stableWindows = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	counts := make([]float64, 0, len(history)+1)
	for _, h := range history {
		counts = append(counts, float64(h.Population))
	}
	counts = append(counts, float64(stats.Population))
	mean, std := MeanStd(counts)

	// Coefficient of variation under 20%
	if mean > 0 && std/mean < 0.2 {
		bd.stableWindows++
	} else {
		bd.stableWindows = 0
	}

	if bd.stableWindows == 5 { // trigger exactly once per stable stretch
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population stable near %.0f over 5+ windows", mean),
		}
	}
	return nil
}
