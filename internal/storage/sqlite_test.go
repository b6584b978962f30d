package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTopResults(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Result{
		{Player: "ann", LevelID: "classic", Score: 100, Gold: 10},
		{Player: "bob", LevelID: "classic", Score: 50},
		{Player: "ann", LevelID: "classic", Score: 200, Kills: 2},
		{Player: "cy", LevelID: "tower", Score: 500},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	results, err := store.TopResults("classic", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	// Should be sorted descending
	if results[0].Score != 200 || results[1].Score != 100 || results[2].Score != 50 {
		t.Errorf("Results not in expected order: %v", results)
	}
	if results[0].Kills != 2 || results[0].Player != "ann" {
		t.Errorf("Columns not round-tripped: %+v", results[0])
	}
	if results[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	all, err := store.TopResults("", 2)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(all) != 2 || all[0].LevelID != "tower" {
		t.Errorf("Expected the tower result first across levels, got %v", all)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an unplayed level, got %d", high)
	}

	store.SaveResult(Result{Player: "a", LevelID: "classic", Score: 100})
	store.SaveResult(Result{Player: "a", LevelID: "classic", Score: 300})
	store.SaveResult(Result{Player: "a", LevelID: "classic", Score: 200})

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStorePlayerHistory(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveResult(Result{Player: "ann", LevelID: "classic", Score: i * 10})
	}
	store.SaveResult(Result{Player: "bob", LevelID: "classic", Score: 999})

	history, err := store.PlayerHistory("ann", 3)
	if err != nil {
		t.Fatalf("PlayerHistory() failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(history))
	}
	// Most recent first
	if history[0].Score != 50 || history[2].Score != 30 {
		t.Errorf("History not newest first: %v", history)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{Player: "a", LevelID: "classic", Score: 100})
	store.SaveResult(Result{Player: "a", LevelID: "tower", Score: 300})

	if err := store.ClearResults("classic"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	classic, _ := store.TopResults("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic results after clear, got %d", len(classic))
	}
	tower, _ := store.TopResults("tower", 10)
	if len(tower) != 1 {
		t.Errorf("Tower results should not be affected by clearing classic")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("classic")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Rounds != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveResult(Result{Player: "ann", LevelID: "classic", Score: 100, Gold: 3, Kills: 1})
	store.SaveResult(Result{Player: "ann", LevelID: "classic", Score: 300, Gold: 5})
	store.SaveResult(Result{Player: "bob", LevelID: "classic", Score: 200, Kills: 2})
	store.SaveResult(Result{Player: "bob", LevelID: "tower", Score: 10})

	stats, err := store.GetLevelStats("classic")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Rounds != 3 || stats.Players != 2 || stats.HighScore != 300 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalGold != 8 || stats.TotalKills != 3 {
		t.Errorf("Unexpected aggregates: %+v", stats)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["tower"].Rounds != 1 {
		t.Errorf("Unexpected per-level stats: %v", all)
	}
}

func TestStoreSaveRoundResult(t *testing.T) {
	store := openTestStore(t)

	var saver multiplayer.ResultSaver = store
	err := saver.SaveRoundResult(multiplayer.RoundResult{
		RoomID:  "classic",
		LevelID: "classic",
		Player:  "ann",
		Score:   70,
		Gold:    2,
		Kills:   1,
	})
	if err != nil {
		t.Fatalf("SaveRoundResult() failed: %v", err)
	}

	results, _ := store.TopResults("classic", 1)
	if len(results) != 1 || results[0].Score != 70 || results[0].Gold != 2 {
		t.Errorf("Round result not stored: %v", results)
	}
}
