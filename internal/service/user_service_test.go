package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestUserGet(t *testing.T) {
	f := newFixture(t)
	id := f.signUp(t, "a@x.com", "p1")

	user, err := f.user.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected email %q", user.Email)
	}

	for _, missing := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := f.user.Get(context.Background(), missing); !errors.Is(err, ErrNotFound) {
			t.Fatalf("get %q: expected ErrNotFound, got %v", missing, err)
		}
	}
}

func TestUserUpdateEmailAndPassword(t *testing.T) {
	f := newFixture(t)
	id := f.signUp(t, "a@x.com", "p1")
	ctx := context.Background()

	if _, err := f.user.Update(ctx, id, UserUpdateInput{Email: strPtr("b@x.com"), Password: strPtr("p2")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := f.auth.SignIn(ctx, "a@x.com", "p1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old credentials must stop working, got %v", err)
	}
	if _, err := f.auth.SignIn(ctx, "b@x.com", "p2"); err != nil {
		t.Fatalf("new credentials: %v", err)
	}
}

func TestUserUpdateRejectsTakenEmail(t *testing.T) {
	f := newFixture(t)
	id := f.signUp(t, "a@x.com", "p1")
	f.signUp(t, "b@x.com", "p2")

	_, err := f.user.Update(context.Background(), id, UserUpdateInput{Email: strPtr("b@x.com")})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	_, err = f.user.Update(context.Background(), id, UserUpdateInput{Password: strPtr("")})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for empty password, got %v", err)
	}
}

func TestUserActiveAndListActive(t *testing.T) {
	f := newFixture(t)
	ids := f.seedUsers(t, 3)
	f.users.setActive(ids[1], false)

	active, err := f.user.Active(context.Background(), ids[1])
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active {
		t.Fatal("expected deactivated user to report inactive")
	}

	users, err := f.user.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 active users, got %d", len(users))
	}
	for _, u := range users {
		if u.ID == ids[1] {
			t.Fatal("inactive user listed")
		}
	}
}
