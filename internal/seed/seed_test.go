package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwlee-dev/memopad/internal/models"
)

func TestDefaultEntries(t *testing.T) {
	entries := Default()
	if len(entries) != 6 {
		t.Fatalf("len = %d, want 6", len(entries))
	}
	pinned := 0
	for _, e := range entries {
		if e.Pinned {
			pinned++
		}
	}
	if pinned != 2 {
		t.Errorf("pinned = %d, want 2", pinned)
	}
}

func TestMaterialize(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	memos, err := Materialize(Default(), now)
	if err != nil {
		t.Fatal(err)
	}
	if len(memos) != 6 {
		t.Fatalf("len = %d", len(memos))
	}

	seen := map[string]bool{}
	for i, m := range memos {
		if seen[m.ID] {
			t.Errorf("duplicate id %q", m.ID)
		}
		seen[m.ID] = true
		if !m.Color.Valid() {
			t.Errorf("memo %d has invalid color %q", i, m.Color)
		}
		if !m.CreatedAt.Equal(m.UpdatedAt) {
			t.Errorf("memo %d createdAt != updatedAt", i)
		}
	}
	if !memos[0].CreatedAt.Equal(now) {
		t.Errorf("first memo createdAt = %v, want %v", memos[0].CreatedAt, now)
	}
	if got := memos[2].CreatedAt; !got.Equal(now.Add(-48 * time.Hour)) {
		t.Errorf("third memo createdAt = %v", got)
	}
}

func TestMaterializeRejectsInvalidColor(t *testing.T) {
	_, err := Materialize([]Entry{{Title: "x", Color: "plaid"}}, time.Now())
	if err == nil {
		t.Fatal("expected error for invalid color")
	}
}

func TestSourceFromFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	fixture := "- title: only\n  content: one memo\n  color: sky\n  pinned: true\n"
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}
	entries := src.Entries()
	if len(entries) != 1 || entries[0].Title != "only" || !entries[0].Pinned {
		t.Errorf("entries = %+v", entries)
	}

	memos, err := src.Memos(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(memos) != 1 || memos[0].Color != models.ColorSky {
		t.Errorf("memos = %+v", memos)
	}
}

func TestReloadKeepsPreviousOnBadContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte("- title: good\n  color: mint\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := src.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if entries := src.Entries(); len(entries) != 1 || entries[0].Title != "good" {
		t.Errorf("previous entries not kept: %+v", entries)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte("- title: before\n  color: mint\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan struct{}, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = src.Watch(ctx, logger, func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register, then rewrite the fixture.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("- title: after\n  color: rose\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
	if entries := src.Entries(); len(entries) != 1 || entries[0].Title != "after" {
		t.Errorf("entries after reload: %+v", entries)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
