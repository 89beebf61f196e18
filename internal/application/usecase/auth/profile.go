package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// MaxPhoneNumberLength is the maximum number of digits in a phone number.
const MaxPhoneNumberLength = 15

// GetProfileUseCase loads the signed-in user.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the user.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return findUser(ctx, uc.userRepo, userID)
}

// UpdateProfileInput represents a partial profile update. An empty phone
// number clears it; ClearBirthDate removes the birth date.
type UpdateProfileInput struct {
	UserID             uuid.UUID
	Name               *string
	PhoneNumber        *string
	BirthDate          *time.Time
	ClearBirthDate     bool
	EmailNotifications *bool
}

// UpdateProfileUseCase changes the user's settings.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
	now      func() time.Time
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Execute validates and applies the update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "name must not be empty", nil)
		}
		user.Name = name
	}
	if input.PhoneNumber != nil {
		phone := strings.TrimSpace(*input.PhoneNumber)
		if !isDigits(phone) || len(phone) > MaxPhoneNumberLength {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidPhoneNumber,
				fmt.Sprintf("phone number may contain up to %d digits only", MaxPhoneNumberLength),
				domainerror.ErrInvalidPhoneNumber,
			)
		}
		user.PhoneNumber = phone
	}
	switch {
	case input.ClearBirthDate:
		user.BirthDate = nil
	case input.BirthDate != nil:
		birthDate := input.BirthDate.UTC().Truncate(24 * time.Hour)
		if birthDate.After(now) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidBirthDate,
				"birth date must not be in the future",
				domainerror.ErrInvalidBirthDate,
			)
		}
		user.BirthDate = &birthDate
	}
	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}

	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func findUser(ctx context.Context, userRepo adapter.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
