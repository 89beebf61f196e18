package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

// UserController handles profile endpoints.
type UserController struct {
	getProfileUseCase    *auth.GetProfileUseCase
	updateProfileUseCase *auth.UpdateProfileUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *auth.GetProfileUseCase,
	updateProfileUseCase *auth.UpdateProfileUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	user, err := c.getProfileUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PATCH /users/me requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields), err)
		return
	}

	input := auth.UpdateProfileInput{
		UserID:             userID,
		Name:               req.Name,
		PhoneNumber:        req.PhoneNumber,
		EmailNotifications: req.EmailNotifications,
	}
	if req.BirthDate != nil {
		birthDate, err := dto.ParseOptionalDate(*req.BirthDate)
		if err != nil {
			badRequest(ctx, "Invalid birth date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidBirthDate), nil)
			return
		}
		input.BirthDate = birthDate
		input.ClearBirthDate = birthDate == nil
	}

	user, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (c *UserController) handleProfileError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(authErrorStatus(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Profile request failed", "error", err)
	internalError(ctx)
}
