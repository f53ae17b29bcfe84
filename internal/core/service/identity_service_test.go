package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/ports"
)

func newIdentityFixture() (*IdentityService, *stubUserRepo, *stubCustomerRepo, *stubSessionStore) {
	users := newStubUserRepo()
	customers := newStubCustomerRepo()
	sessions := newStubSessionStore()
	svc := NewIdentityService(users, customers, sessions, stubTx{}, "secret", time.Hour, zerolog.Nop())
	return svc, users, customers, sessions
}

func customerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Password: "pw1",
		Role:     "customer",
		Name:     "Alice",
		Email:    username + "@x.com",
		Address:  "1 Main St",
	}
}

func TestRegister_CustomerCreatesLinkedProfile(t *testing.T) {
	svc, users, customers, _ := newIdentityFixture()

	res, err := svc.Register(context.Background(), customerInput("alice"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.Role != domain.RoleCustomer || res.Username != "alice" {
		t.Fatalf("unexpected result: %+v", res)
	}

	user, err := users.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	profile, err := customers.FindByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("linked customer not created: %v", err)
	}
	if profile.Email != "alice@x.com" || profile.Address != "1 Main St" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestRegister_AdminHasNoProfile(t *testing.T) {
	svc, _, customers, _ := newIdentityFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "root", Password: "pw", Role: "ADMIN",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(customers.customers) != 0 {
		t.Fatalf("admin registration must not create a customer")
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	svc, _, _, _ := newIdentityFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "eve", Password: "pw", Role: "superuser",
	}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegister_DuplicateUsernameLeavesFirstIntact(t *testing.T) {
	svc, users, _, _ := newIdentityFixture()

	if _, err := svc.Register(context.Background(), customerInput("alice")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	first, _ := users.FindByUsername(context.Background(), "alice")

	in := customerInput("alice")
	in.Email = "other@x.com"
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	again, _ := users.FindByUsername(context.Background(), "alice")
	if again.ID != first.ID || again.PasswordHash != first.PasswordHash {
		t.Fatalf("first registration was disturbed: %+v vs %+v", first, again)
	}
}

func TestRegister_CustomerRequiresProfileFields(t *testing.T) {
	svc, _, _, _ := newIdentityFixture()

	for _, mutate := range []func(*ports.RegisterInput){
		func(in *ports.RegisterInput) { in.Name = " " },
		func(in *ports.RegisterInput) { in.Email = "" },
		func(in *ports.RegisterInput) { in.Address = "" },
	} {
		in := customerInput("bob")
		mutate(&in)
		if _, err := svc.Register(context.Background(), in); err != domain.ErrProfileIncomplete {
			t.Fatalf("expected ErrProfileIncomplete, got %v", err)
		}
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _, _, _ := newIdentityFixture()

	if _, err := svc.Register(context.Background(), customerInput("alice")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in := customerInput("bob")
	in.Email = "alice@x.com"
	if _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_EstablishesSession(t *testing.T) {
	svc, _, _, sessions := newIdentityFixture()

	if _, err := svc.Register(context.Background(), customerInput("alice")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, res, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", res.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		t.Fatalf("token carries no session id")
	}
	sess, err := sessions.Find(context.Background(), sid)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if sess.Username != "alice" || sess.Role != domain.RoleCustomer || sess.UserID == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _, _ := newIdentityFixture()

	_, _ = svc.Register(context.Background(), customerInput("alice"))

	// Unknown user and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost", "pw1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestLogout_DestroysSessionAndIsIdempotent(t *testing.T) {
	svc, _, _, sessions := newIdentityFixture()

	_, _ = svc.Register(context.Background(), customerInput("alice"))
	token, _, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	_, _ = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	sid := claims["sid"].(string)

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := sessions.Find(context.Background(), sid); err != domain.ErrSessionNotFound {
		t.Fatalf("session survived logout: %v", err)
	}

	// Second logout, and logout with no session at all, both succeed.
	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without session failed: %v", err)
	}
}

func TestCheckSession(t *testing.T) {
	svc, _, _, _ := newIdentityFixture()

	if _, err := svc.CheckSession(nil); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	info, err := svc.CheckSession(&domain.Session{ID: "s1", UserID: "u1", Username: "alice", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !info.LoggedIn || info.Username != "alice" || info.Role != domain.RoleCustomer {
		t.Fatalf("unexpected info: %+v", info)
	}
}
