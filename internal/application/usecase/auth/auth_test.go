package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

type fixture struct {
	store    *usecasetest.Store
	tokens   *usecasetest.TokenService
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
}

func newFixture() *fixture {
	store := usecasetest.NewStore()
	tokens := usecasetest.NewTokenService()
	passwords := usecasetest.PasswordService{}
	return &fixture{
		store:    store,
		tokens:   tokens,
		register: NewRegisterUserUseCase(store.Users, passwords, tokens),
		login:    NewLoginUserUseCase(store.Users, passwords, tokens),
		refresh:  NewRefreshTokenUseCase(store.Users, tokens),
		logout:   NewLogoutUserUseCase(tokens),
	}
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user and issues tokens", func(t *testing.T) {
		f := newFixture()
		out, err := f.register.Execute(ctx, RegisterUserInput{Email: " Ann@Example.com ", Name: "Ann", Password: "secret123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Email != "ann@example.com" {
			t.Errorf("expected normalized email, got %q", out.User.Email)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Error("expected tokens")
		}
		if out.User.PasswordHash != "hashed:secret123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			input RegisterUserInput
			want  domainerror.AuthErrorCode
		}{
			{"missing name", RegisterUserInput{Email: "a@b.co", Password: "secret123"}, domainerror.ErrCodeMissingFields},
			{"bad email", RegisterUserInput{Email: "nope", Name: "A", Password: "secret123"}, domainerror.ErrCodeInvalidEmail},
			{"weak password", RegisterUserInput{Email: "a@b.co", Name: "A", Password: "short"}, domainerror.ErrCodeWeakPassword},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := newFixture().register.Execute(ctx, tt.input)
				if got := authCode(err); got != tt.want {
					t.Errorf("expected %s, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture()
		input := RegisterUserInput{Email: "ann@example.com", Name: "Ann", Password: "secret123"}
		if _, err := f.register.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		input.Email = "ANN@example.com"
		if _, err := f.register.Execute(ctx, input); !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestLoginUserUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if _, err := f.register.Execute(ctx, RegisterUserInput{Email: "ann@example.com", Name: "Ann", Password: "secret123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.login.Execute(ctx, LoginUserInput{Email: "Ann@example.com", Password: "secret123"}); err != nil {
		t.Errorf("expected login to succeed, got %v", err)
	}

	_, wrongPassword := f.login.Execute(ctx, LoginUserInput{Email: "ann@example.com", Password: "nope"})
	_, unknownEmail := f.login.Execute(ctx, LoginUserInput{Email: "bob@example.com", Password: "secret123"})
	for _, err := range []error{wrongPassword, unknownEmail} {
		if authCode(err) != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected invalid credentials, got %v", err)
		}
	}
}

func TestRefreshTokenUseCase_RotatesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	out, err := f.register.Execute(ctx, RegisterUserInput{Email: "ann@example.com", Name: "Ann", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotated, err := f.refresh.Execute(ctx, out.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.RefreshToken == out.RefreshToken {
		t.Error("expected a new refresh token")
	}

	if _, err := f.refresh.Execute(ctx, out.RefreshToken); authCode(err) != domainerror.ErrCodeInvalidToken {
		t.Errorf("expected reused token to be rejected, got %v", err)
	}

	f.logout.Execute(ctx, rotated.RefreshToken)
	if _, err := f.refresh.Execute(ctx, rotated.RefreshToken); authCode(err) != domainerror.ErrCodeInvalidToken {
		t.Errorf("expected logged out token to be rejected, got %v", err)
	}

	if _, err := f.refresh.Execute(ctx, "garbage"); authCode(err) != domainerror.ErrCodeInvalidToken {
		t.Errorf("expected unknown token to be rejected, got %v", err)
	}
}

func TestUpdateProfileUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	out, err := f.register.Execute(ctx, RegisterUserInput{Email: "ann@example.com", Name: "Ann", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc := NewUpdateProfileUseCase(f.store.Users)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	phone := "48123456789"
	birth := time.Date(1990, 7, 14, 15, 0, 0, 0, time.UTC)
	off := false
	updated, err := uc.Execute(ctx, UpdateProfileInput{UserID: out.User.ID, PhoneNumber: &phone, BirthDate: &birth, EmailNotifications: &off})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PhoneNumber != phone || updated.EmailNotifications {
		t.Errorf("unexpected user: %+v", updated)
	}
	if want := time.Date(1990, 7, 14, 0, 0, 0, 0, time.UTC); updated.BirthDate == nil || !updated.BirthDate.Equal(want) {
		t.Errorf("expected birth date %s, got %v", want, updated.BirthDate)
	}

	bad := "+48 123"
	if _, err := uc.Execute(ctx, UpdateProfileInput{UserID: out.User.ID, PhoneNumber: &bad}); !errors.Is(err, domainerror.ErrInvalidPhoneNumber) {
		t.Errorf("expected ErrInvalidPhoneNumber, got %v", err)
	}
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := uc.Execute(ctx, UpdateProfileInput{UserID: out.User.ID, BirthDate: &future}); !errors.Is(err, domainerror.ErrInvalidBirthDate) {
		t.Errorf("expected ErrInvalidBirthDate, got %v", err)
	}

	if _, err := NewGetProfileUseCase(f.store.Users).Execute(ctx, uuid.New()); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
