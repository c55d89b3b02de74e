package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jwlee-dev/memopad/internal/apperr"
	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/store"
	"github.com/jwlee-dev/memopad/internal/testutil"
)

// testService lowers the bcrypt cost so hashing does not dominate test time.
func testService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(testutil.TestDB(t), time.Hour)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantMsg  string
	}{
		{"valid", "me@example.com", "secret1", "", ""},
		{"valid with name", "me@example.com", "secret1", "지우", ""},
		{"empty email", "", "secret1", "", MsgInvalidEmail},
		{"malformed email", "not-an-email", "secret1", "", MsgInvalidEmail},
		{"short password", "me@example.com", "12345", "", MsgShortPassword},
		{"password exactly six", "me@example.com", "123456", "", ""},
		{"long name", "me@example.com", "secret1", strings.Repeat("가", 51), MsgLongName},
		{"name exactly fifty", "me@example.com", "secret1", strings.Repeat("가", 50), ""},
		// Both email and password invalid: the email rule is checked first.
		{"first failure wins", "nope", "123", "", MsgInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ValidateSignup(tt.email, tt.password, tt.userName)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if creds.Email != tt.email || creds.Password != tt.password || creds.Name != tt.userName {
					t.Errorf("credentials not normalized: %+v", creds)
				}
				return
			}
			msg, ok := apperr.ValidationMessage(err)
			if !ok {
				t.Fatalf("err = %v, want validation error", err)
			}
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
			if creds != (Credentials{}) {
				t.Errorf("partial normalization on failure: %+v", creds)
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	creds := Credentials{Email: "me@example.com", Password: "secret1", Name: "지우"}
	if err := svc.Register(ctx, creds); err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, acc, err := svc.Login(ctx, "me@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" || sess.AccountID != acc.ID {
		t.Errorf("session not bound to account: %+v", sess)
	}
	if acc.Hash == "secret1" {
		t.Error("password stored in plaintext")
	}
	if acc.Name != "지우" {
		t.Errorf("name = %q", acc.Name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	creds := Credentials{Email: "dup@example.com", Password: "secret1"}
	if err := svc.Register(ctx, creds); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(ctx, creds); !errors.Is(err, apperr.ErrEmailTaken) {
		t.Fatalf("second register err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, Credentials{Email: "me@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, _, errUnknown := svc.Login(ctx, "ghost@example.com", "secret1")
	_, _, errWrong := svc.Login(ctx, "me@example.com", "wrong-pass")
	if !errors.Is(errUnknown, apperr.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", errUnknown)
	}
	if !errors.Is(errWrong, apperr.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("enumeration leak: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthenticateSessionLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, Credentials{Email: "me@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	sess, acc, err := svc.Login(ctx, "me@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != acc.ID {
		t.Errorf("account = %q, want %q", got.ID, acc.ID)
	}

	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("after logout err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("empty token err = %v, want ErrUnauthorized", err)
	}
}

// goneAccountStore serves sessions normally but reports every account as gone.
type goneAccountStore struct {
	store.Store
}

func (goneAccountStore) GetAccount(context.Context, string) (*models.Account, error) {
	return nil, apperr.ErrNotFound
}

func TestAuthenticateDeletedAccount(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, Credentials{Email: "me@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	sess, _, err := svc.Login(ctx, "me@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	// The session row survives the account; it must not leak ErrNotFound.
	svc.store = goneAccountStore{Store: svc.store}
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("deleted account err = %v, want ErrUnauthorized", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, Credentials{Email: "me@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	sess, _, err := svc.Login(ctx, "me@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	// Advance the clock past the TTL.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expired session err = %v, want ErrUnauthorized", err)
	}
}
