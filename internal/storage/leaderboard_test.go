package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

var testTitles = []string{"Snake", "Pong", "Breakout"}

func newFileBoard(t *testing.T, path string) *Leaderboard {
	t.Helper()
	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend() failed: %v", err)
	}
	return NewLeaderboard(b, testTitles, nil)
}

func TestLeaderboardRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	lb := newFileBoard(t, path)

	for _, s := range []int{30, 10, 50, 20, 40} {
		lb.AddScore("Snake", s)
	}
	got := lb.AddScore("Snake", 35)

	want := []int{50, 40, 35, 30, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AddScore() = %v, expected %v", got, want)
	}

	reloaded := newFileBoard(t, path)
	if got := reloaded.Scores("Snake"); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded scores = %v, expected %v", got, want)
	}
	if hs := reloaded.HighScore("Snake"); hs != 50 {
		t.Errorf("HighScore() = %d, expected 50", hs)
	}

	// A score below the list does not rank.
	if got := reloaded.AddScore("Snake", 5); !reflect.DeepEqual(got, want) {
		t.Errorf("non-ranking score changed the list: %v", got)
	}
}

func TestLeaderboardMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "scores.yaml")
	lb := newFileBoard(t, path)

	for _, title := range testTitles {
		if hs := lb.HighScore(title); hs != 0 {
			t.Errorf("HighScore(%s) = %d, expected 0", title, hs)
		}
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store should be initialized on disk: %v", err)
	}
}

func TestLeaderboardCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	if err := os.WriteFile(path, []byte("{{ not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}

	lb := newFileBoard(t, path)
	if got := lb.Titles(); !reflect.DeepEqual(got, []string{"Breakout", "Pong", "Snake"}) {
		t.Errorf("Titles() = %v", got)
	}

	lb.AddScore("Pong", 3)
	if hs := newFileBoard(t, path).HighScore("Pong"); hs != 3 {
		t.Errorf("HighScore after recovery = %d, expected 3", hs)
	}
}

func TestLeaderboardReadsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	data := `{"Snake": [10, 70, 30], "Flappy Bird": [2]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	lb := newFileBoard(t, path)
	if got := lb.Scores("Snake"); !reflect.DeepEqual(got, []int{70, 30, 10}) {
		t.Errorf("Scores(Snake) = %v, expected sorted", got)
	}
	if hs := lb.HighScore("Flappy Bird"); hs != 2 {
		t.Errorf("HighScore(Flappy Bird) = %d, expected 2", hs)
	}
	if got := lb.Scores("Pong"); got == nil || len(got) != 0 {
		t.Errorf("known title should be initialized empty, got %v", got)
	}
}

func TestLeaderboardReset(t *testing.T) {
	lb := newFileBoard(t, filepath.Join(t.TempDir(), "scores.yaml"))
	lb.AddScore("Snake", 10)
	lb.AddScore("Pong", 4)

	lb.Reset("Snake")
	if lb.HighScore("Snake") != 0 || lb.HighScore("Pong") != 4 {
		t.Error("Reset(title) should clear only that title")
	}

	lb.Reset()
	for _, title := range testTitles {
		if s := lb.Scores(title); len(s) != 0 {
			t.Errorf("Scores(%s) = %v after Reset()", title, s)
		}
	}
}

type failingBackend struct{}

func (failingBackend) Load() (Table, error) { return nil, errors.New("boom") }
func (failingBackend) Save(Table) error     { return errors.New("disk full") }
func (failingBackend) Close() error         { return nil }

func TestLeaderboardAbsorbsBackendErrors(t *testing.T) {
	lb := NewLeaderboard(failingBackend{}, testTitles, nil)

	got := lb.AddScore("Snake", 12)
	if !reflect.DeepEqual(got, []int{12}) {
		t.Errorf("AddScore() = %v, expected in-memory update", got)
	}
	if hs := lb.HighScore("Snake"); hs != 12 {
		t.Errorf("HighScore() = %d, expected 12", hs)
	}
}

func TestLeaderboardConcurrentAdds(t *testing.T) {
	lb := newFileBoard(t, filepath.Join(t.TempDir(), "scores.yaml"))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			lb.AddScore("Snake", score)
		}(i)
	}
	wg.Wait()

	want := []int{20, 19, 18, 17, 16}
	if got := lb.Scores("Snake"); !reflect.DeepEqual(got, want) {
		t.Errorf("Scores() = %v, expected %v", got, want)
	}
}
