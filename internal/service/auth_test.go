package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/limiter"
	"leadsdesk/internal/model"
)

const testFrontendURL = "https://app.example.com"

func newTestAuthService(t *testing.T, users *fakeUserRepo, mail *fakeMailer, attempts *limiter.LoginLimiter) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	return NewAuthService(users, tokens, mail, attempts, time.Hour, testFrontendURL)
}

func TestRegister_IssuesUsableToken(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newTestAuthService(t, users, &fakeMailer{}, nil)

	res, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", res.User.Email)
	}
	if res.User.Role != auth.RoleCSR {
		t.Fatalf("default role = %q, want csr", res.User.Role)
	}
	if res.User.PasswordHash == "secret123" || res.User.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}

	login, err := svc.Login(context.Background(), "alice@example.com", "secret123", "10.0.0.1")
	if err != nil {
		t.Fatalf("login after register: %v", err)
	}
	if login.Token == "" {
		t.Fatalf("login returned empty token")
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newTestAuthService(t, users, &fakeMailer{}, nil)

	if _, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "dup@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "B", Email: "DUP@example.com", Password: "secret123"})
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("duplicate register err = %v, want ErrAlreadyExists", err)
	}
}

func TestRegister_RejectsShortPasswordAndUnknownRole(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, newFakeUserRepo(), &fakeMailer{}, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("short password err = %v, want ErrInvalidInput", err)
	}
	_, err = svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "superuser"})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("unknown role err = %v, want ErrInvalidInput", err)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordFailIdentically(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newTestAuthService(t, users, &fakeMailer{}, nil)
	if _, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "secret123", "10.0.0.1")
	_, wrongErr := svc.Login(context.Background(), "a@example.com", "wrongpass", "10.0.0.1")
	if !errors.Is(unknownErr, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newTestAuthService(t, users, &fakeMailer{}, limiter.New(1, 2))

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "a@example.com", "whatever", "10.0.0.1"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("attempt %d err = %v, want ErrInvalidCredentials", i+1, err)
		}
	}
	if _, err := svc.Login(context.Background(), "a@example.com", "whatever", "10.0.0.1"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("attempt beyond burst err = %v, want ErrRateLimited", err)
	}
}

func TestForgotPassword_StoresDigestNotPlaintext(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := newTestAuthService(t, users, mail, nil)
	res, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mail.sent))
	}

	plain := strings.TrimPrefix(mail.lastURL, testFrontendURL+"/reset-password/")
	if plain == mail.lastURL || plain == "" {
		t.Fatalf("reset url %q does not carry a token", mail.lastURL)
	}
	stored := users.users[res.User.ID]
	if stored.ResetTokenHash == "" {
		t.Fatalf("no digest stored")
	}
	if stored.ResetTokenHash == plain {
		t.Fatalf("plaintext token stored instead of digest")
	}
	if !stored.ResetTokenExpiry.After(time.Now()) {
		t.Fatalf("stored token already expired")
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()

	mail := &fakeMailer{}
	svc := newTestAuthService(t, newFakeUserRepo(), mail, nil)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("mail sent for unknown email")
	}
}

func TestForgotPassword_MailFailureRollsTokenBack(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	mail := &fakeMailer{err: errSMTPDown}
	svc := newTestAuthService(t, users, mail, nil)
	res, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ForgotPassword(context.Background(), "a@example.com")
	if !errors.Is(err, errs.ErrDeliveryFailed) {
		t.Fatalf("err = %v, want ErrDeliveryFailed", err)
	}
	stored := users.users[res.User.ID]
	if stored.ResetTokenHash != "" || !stored.ResetTokenExpiry.IsZero() {
		t.Fatalf("reset token survived mail failure")
	}
}

func TestResetPassword_RoundTripAndSingleUse(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := newTestAuthService(t, users, mail, nil)
	if _, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "oldsecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	plain := strings.TrimPrefix(mail.lastURL, testFrontendURL+"/reset-password/")

	res, err := svc.ResetPassword(context.Background(), plain, "newsecret")
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("reset did not issue a session token")
	}

	if _, err := svc.Login(context.Background(), "a@example.com", "newsecret", "10.0.0.1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@example.com", "oldsecret", "10.0.0.1"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}

	// Consumed tokens are indistinguishable from never-issued ones.
	if _, err := svc.ResetPassword(context.Background(), plain, "thirdsecret"); !errors.Is(err, auth.ErrInvalidResetToken) {
		t.Fatalf("replayed token err = %v, want ErrInvalidResetToken", err)
	}
}

func TestResetPassword_ExpiredAndGarbageTokens(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := newTestAuthService(t, users, mail, nil)
	res, err := svc.Register(context.Background(), &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.ResetPassword(context.Background(), "not-a-token", "newsecret"); !errors.Is(err, auth.ErrInvalidResetToken) {
		t.Fatalf("garbage token err = %v, want ErrInvalidResetToken", err)
	}

	if err := svc.ForgotPassword(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	users.users[res.User.ID].ResetTokenExpiry = time.Now().Add(-time.Minute)

	plain := strings.TrimPrefix(mail.lastURL, testFrontendURL+"/reset-password/")
	if _, err := svc.ResetPassword(context.Background(), plain, "newsecret"); !errors.Is(err, auth.ErrInvalidResetToken) {
		t.Fatalf("expired token err = %v, want ErrInvalidResetToken", err)
	}
}
