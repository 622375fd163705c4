// README: User service tests covering register, login, and token parsing.
package user

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func newTestService(ttl time.Duration) *Service {
	return NewService(NewMemoryStore(), "test-secret", ttl, slog.Default())
}

func registerCmd() RegisterCommand {
	return RegisterCommand{
		Name:     "Rae",
		Email:    "rae@example.com",
		Phone:    "555-0100",
		Password: "hunter22",
		Roles:    Roles{Rider: true},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(time.Hour)
	ctx := context.Background()

	cmd := registerCmd()
	cmd.Roles = Roles{Rider: true, Driver: true}
	u, err := svc.Register(ctx, cmd)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}

	token, got, err := svc.Login(ctx, "rae@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("login returned user %q, want %q", got.ID, u.ID)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "rae@example.com" || claims.Name != "Rae" || claims.Phone != "555-0100" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.Roles.Rider || !claims.Roles.Driver {
		t.Errorf("claims roles = %+v, want both set", claims.Roles)
	}
	if claims.Subject != string(u.ID) {
		t.Errorf("subject = %q, want %q", claims.Subject, u.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(time.Hour)
	ctx := context.Background()
	mutations := []func(*RegisterCommand){
		func(c *RegisterCommand) { c.Name = "" },
		func(c *RegisterCommand) { c.Email = "  " },
		func(c *RegisterCommand) { c.Email = "not-an-email" },
		func(c *RegisterCommand) { c.Phone = "" },
		func(c *RegisterCommand) { c.Password = "short" },
		func(c *RegisterCommand) { c.Roles = Roles{} },
	}
	for i, mutate := range mutations {
		cmd := registerCmd()
		mutate(&cmd)
		if _, err := svc.Register(ctx, cmd); !errors.Is(err, ErrBadRequest) {
			t.Errorf("case %d: expected ErrBadRequest, got %v", i, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(time.Hour)
	ctx := context.Background()
	if _, err := svc.Register(ctx, registerCmd()); err != nil {
		t.Fatalf("register: %v", err)
	}
	dup := registerCmd()
	dup.Name = "Ray"
	dup.Phone = "555-0999"
	dup.Email = "RAE@example.com"
	if _, err := svc.Register(ctx, dup); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(time.Hour)
	ctx := context.Background()
	if _, err := svc.Register(ctx, registerCmd()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "rae@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", "hunter22"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("blank email: expected ErrBadRequest, got %v", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)
	ctx := context.Background()
	if _, err := svc.Register(ctx, registerCmd()); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(ctx, "rae@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewService(NewMemoryStore(), "different-secret", time.Hour, slog.Default())
	ctx := context.Background()
	if _, err := other.Register(ctx, registerCmd()); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := other.Login(ctx, "rae@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}
