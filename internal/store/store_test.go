package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/testutil"
)

func TestCreateAccountDuplicateEmail(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	testutil.TestAccount(t, db, "dup@example.com")

	err := db.CreateAccount(ctx, &models.Account{
		ID:        uuid.NewString(),
		Email:     "dup@example.com",
		Hash:      "y",
		CreatedAt: time.Now(),
	})
	if !errors.Is(err, apperr.ErrEmailTaken) {
		t.Fatalf("duplicate insert err = %v, want ErrEmailTaken", err)
	}
}

// Two concurrent inserts for the same email must not both succeed; the
// unique index, not the application-level check, resolves the race.
func TestCreateAccountConcurrentRace(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.CreateAccount(ctx, &models.Account{
				ID:        uuid.NewString(),
				Email:     "race@example.com",
				Hash:      "x",
				CreatedAt: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else if !errors.Is(err, apperr.ErrEmailTaken) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("%d inserts succeeded, want exactly 1", ok)
	}
}

func TestGetAccountByEmailCaseSensitive(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	testutil.TestAccount(t, db, "Case@example.com")

	if _, err := db.GetAccountByEmail(ctx, "Case@example.com"); err != nil {
		t.Fatalf("exact lookup: %v", err)
	}
	if _, err := db.GetAccountByEmail(ctx, "case@example.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("lowercased lookup err = %v, want ErrNotFound", err)
	}
}

func TestAccountNameNullable(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	withName := &models.Account{ID: uuid.NewString(), Email: "a@example.com", Hash: "x", Name: "지우", CreatedAt: time.Now()}
	noName := &models.Account{ID: uuid.NewString(), Email: "b@example.com", Hash: "x", CreatedAt: time.Now()}
	if err := db.CreateAccount(ctx, withName); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateAccount(ctx, noName); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetAccountByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "지우" {
		t.Errorf("name = %q", got.Name)
	}
	got, err = db.GetAccountByEmail(ctx, "b@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "" {
		t.Errorf("name = %q, want empty", got.Name)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	acc := testutil.TestAccount(t, db, "s@example.com")

	s := &models.Session{
		Token:     uuid.NewString(),
		AccountID: acc.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := db.CreateSession(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetSession(ctx, s.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccountID != acc.ID {
		t.Errorf("account id = %q, want %q", got.AccountID, acc.ID)
	}

	if err := db.DeleteSession(ctx, s.Token); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetSession(ctx, s.Token); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("deleted session err = %v, want ErrNotFound", err)
	}
	// Deleting again is a no-op.
	if err := db.DeleteSession(ctx, s.Token); err != nil {
		t.Fatal(err)
	}
}

func TestMemoRoundTrip(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	acc := testutil.TestAccount(t, db, "m@example.com")

	now := time.Now().Truncate(time.Second)
	older := models.Memo{
		ID: uuid.NewString(), Title: "old", Color: models.ColorMint,
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}
	newer := models.Memo{
		ID: uuid.NewString(), Title: "new", Color: models.ColorSky, IsPinned: true,
		CreatedAt: now, UpdatedAt: now,
	}
	for _, m := range []models.Memo{older, newer} {
		if err := db.SaveMemo(ctx, acc.ID, m); err != nil {
			t.Fatal(err)
		}
	}

	memos, err := db.ListMemos(ctx, acc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(memos) != 2 {
		t.Fatalf("len = %d, want 2", len(memos))
	}
	if memos[0].ID != newer.ID {
		t.Errorf("expected newest-first ordering, got %q first", memos[0].Title)
	}
	if !memos[0].IsPinned || memos[0].Color != models.ColorSky {
		t.Errorf("pin/color not preserved: %+v", memos[0])
	}

	// Upsert updates in place.
	newer.Title = "renamed"
	newer.UpdatedAt = now.Add(time.Minute)
	if err := db.SaveMemo(ctx, acc.ID, newer); err != nil {
		t.Fatal(err)
	}
	memos, err = db.ListMemos(ctx, acc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(memos) != 2 || memos[0].Title != "renamed" {
		t.Errorf("upsert not applied: %+v", memos)
	}

	if err := db.DeleteMemo(ctx, acc.ID, older.ID); err != nil {
		t.Fatal(err)
	}
	memos, _ = db.ListMemos(ctx, acc.ID)
	if len(memos) != 1 {
		t.Errorf("len after delete = %d, want 1", len(memos))
	}
	// Unknown id is a no-op.
	if err := db.DeleteMemo(ctx, acc.ID, "missing"); err != nil {
		t.Fatal(err)
	}
}

func TestMemosScopedByAccount(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	a := testutil.TestAccount(t, db, "a1@example.com")
	b := testutil.TestAccount(t, db, "b1@example.com")

	m := models.Memo{ID: uuid.NewString(), Title: "mine", Color: models.ColorPeach, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.SaveMemo(ctx, a.ID, m); err != nil {
		t.Fatal(err)
	}

	got, err := db.ListMemos(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("account b sees %d memos, want 0", len(got))
	}

	// Deleting through the wrong account must not touch the row.
	if err := db.DeleteMemo(ctx, b.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = db.ListMemos(ctx, a.ID)
	if len(got) != 1 {
		t.Errorf("cross-account delete removed the memo")
	}
}
