package handler

import (
	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// EmptyRequest is the payload type for endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// CreateAccountRequest is the payload for account creation.
//
// Balance is a string on the wire; the service parses it as a decimal and
// rejects non-numeric values before anything is written.
type CreateAccountRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Type      string `json:"type" validate:"required,oneof=CURRENT SAVINGS"`
	Balance   string `json:"balance" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (r *CreateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// AccountsHandler serves the account endpoints.
type AccountsHandler struct {
	Handler
	services *service.Services
}

func NewAccountsHandler(s *server.Server, services *service.Services) *AccountsHandler {
	return &AccountsHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// List returns the caller's accounts, newest-created first.
func (h *AccountsHandler) List(c echo.Context, req *EmptyRequest) ([]models.AccountResponse, error) {
	clerkUserID := middleware.GetUserID(c)
	if clerkUserID == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return h.services.Accounts.List(c.Request().Context(), clerkUserID)
}

// Create creates a new account for the caller.
func (h *AccountsHandler) Create(c echo.Context, req *CreateAccountRequest) (*models.AccountResponse, error) {
	clerkUserID := middleware.GetUserID(c)
	if clerkUserID == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return h.services.Accounts.Create(c.Request().Context(), clerkUserID, service.CreateAccountInput{
		Name:      req.Name,
		Type:      models.AccountType(req.Type),
		Balance:   req.Balance,
		IsDefault: req.IsDefault,
	})
}
