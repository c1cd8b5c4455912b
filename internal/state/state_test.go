package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// isolate points the package at a temp dir and restores globals afterwards.
func isolate(t *testing.T) string {
	t.Helper()
	originalPath := path
	originalCurrent := current
	t.Cleanup(func() {
		path = originalPath
		current = originalCurrent
	})

	dir := filepath.Join(t.TempDir(), ".config", "wcagcheck")
	if err := InitWithDir(dir); err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}
	return dir
}

func TestInit(t *testing.T) {
	isolate(t)

	if current == nil {
		t.Fatal("current state should be initialized")
	}
	if got := GetBrowseState(); got.FailingOnly || len(got.Sets) != 0 {
		t.Errorf("default browse state = %+v, want zero", got)
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	dir := isolate(t)

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"browse": {"failingOnly": true, "sets": ["proposed"]}}`)
	if err := os.WriteFile(filepath.Join(dir, "state.json"), data, 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	got := GetBrowseState()
	if !got.FailingOnly || len(got.Sets) != 1 || got.Sets[0] != "proposed" {
		t.Errorf("GetBrowseState() = %+v", got)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := isolate(t)

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSetBrowseState_Persists(t *testing.T) {
	dir := isolate(t)

	want := BrowseState{FailingOnly: true, Sets: []string{"current", "proposed"}}
	if err := SetBrowseState(want); err != nil {
		t.Fatalf("SetBrowseState() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	var onDisk State
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatal(err)
	}
	if !onDisk.Browse.FailingOnly || len(onDisk.Browse.Sets) != 2 {
		t.Errorf("on disk = %+v", onDisk.Browse)
	}

	// Reload from disk
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if got := GetBrowseState(); !got.FailingOnly || got.Sets[1] != "proposed" {
		t.Errorf("after reload = %+v", got)
	}
}

func TestGetBrowseState_NilCurrent(t *testing.T) {
	isolate(t)
	current = nil
	if got := GetBrowseState(); got.FailingOnly {
		t.Error("nil state should return defaults")
	}
}

func TestConcurrentAccess(t *testing.T) {
	isolate(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = SetBrowseState(BrowseState{FailingOnly: i%2 == 0})
		}(i)
		go func() {
			defer wg.Done()
			_ = GetBrowseState()
		}()
	}
	wg.Wait()
}
