// Package storage persists the per-game top-score lists. A Leaderboard keeps
// the table in memory and writes it through a Backend on every change;
// backend failures are logged and absorbed so that a broken store never
// interrupts play.
package storage

import (
	"io"
	"slices"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// MaxScores is the length of each title's list.
const MaxScores = 5

// Table maps a game title to its scores, highest first.
type Table map[string][]int

// Backend loads and saves the whole table.
type Backend interface {
	Load() (Table, error)
	Save(Table) error
	Close() error
}

// Leaderboard is the score store shared by every session of the process.
type Leaderboard struct {
	mu      sync.Mutex
	backend Backend
	titles  []string
	table   Table
	logger  *log.Logger
}

// NewLeaderboard loads the table for the known titles. A missing or
// unreadable store is reinitialized with an empty list per title.
func NewLeaderboard(backend Backend, titles []string, logger *log.Logger) *Leaderboard {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Leaderboard{
		backend: backend,
		titles:  slices.Clone(titles),
		logger:  logger,
	}

	table, err := backend.Load()
	if err != nil {
		logger.Warn("score store unreadable, starting fresh", "err", err)
		l.table = l.emptyTable()
		l.save()
		return l
	}
	l.table = l.normalize(table)
	return l
}

func (l *Leaderboard) emptyTable() Table {
	t := make(Table, len(l.titles))
	for _, title := range l.titles {
		t[title] = []int{}
	}
	return t
}

// normalize adds missing titles and restores the sorted, capped shape.
func (l *Leaderboard) normalize(t Table) Table {
	if t == nil {
		t = make(Table)
	}
	for _, title := range l.titles {
		if _, ok := t[title]; !ok {
			t[title] = []int{}
		}
	}
	for title, scores := range t {
		t[title] = topScores(scores)
	}
	return t
}

func topScores(scores []int) []int {
	out := slices.Clone(scores)
	if out == nil {
		out = []int{}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	if len(out) > MaxScores {
		out = out[:MaxScores]
	}
	return out
}

// HighScore returns the best score for a title, or 0.
func (l *Leaderboard) HighScore(title string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s := l.table[title]; len(s) > 0 {
		return s[0]
	}
	return 0
}

// AddScore inserts a score, keeps the top entries and saves. It returns the
// updated list.
func (l *Leaderboard) AddScore(title string, score int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.table[title] = topScores(append(l.table[title], score))
	l.save()
	return slices.Clone(l.table[title])
}

// Scores returns a copy of a title's list, highest first.
func (l *Leaderboard) Scores(title string) []int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.table[title])
}

// Titles returns every title in the table, sorted.
func (l *Leaderboard) Titles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	titles := make([]string, 0, len(l.table))
	for title := range l.table {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Reset empties every list, or only the given titles.
func (l *Leaderboard) Reset(titles ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(titles) == 0 {
		for title := range l.table {
			l.table[title] = []int{}
		}
	} else {
		for _, title := range titles {
			l.table[title] = []int{}
		}
	}
	l.save()
}

// Close releases the backend.
func (l *Leaderboard) Close() error {
	return l.backend.Close()
}

// save must be called with mu held.
func (l *Leaderboard) save() {
	if err := l.backend.Save(l.table); err != nil {
		l.logger.Warn("cannot save scores", "err", err)
	}
}

// entryLister is implemented by backends that keep score timestamps.
type entryLister interface {
	Entries(title string) ([]ScoreEntry, error)
}

// Entries returns a title's scores, with timestamps when the backend keeps
// them.
func (l *Leaderboard) Entries(title string) []ScoreEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if el, ok := l.backend.(entryLister); ok {
		entries, err := el.Entries(title)
		if err == nil {
			return entries
		}
		l.logger.Warn("cannot read score entries", "title", title, "err", err)
	}

	scores := l.table[title]
	entries := make([]ScoreEntry, len(scores))
	for i, s := range scores {
		entries[i] = ScoreEntry{Title: title, Score: s}
	}
	return entries
}
