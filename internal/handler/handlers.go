package handler

import (
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health    *HealthHandler    // liveness/readiness endpoint
	Accounts  *AccountsHandler  // account listing and creation
	Dashboard *DashboardHandler // dashboard aggregation
	Webhooks  *WebhooksHandler  // identity-provider user provisioning
}

// NewHandlers constructs the handler container from the application
// container and the business layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Accounts:  NewAccountsHandler(s, services),
		Dashboard: NewDashboardHandler(s, services),
		Webhooks:  NewWebhooksHandler(s, services),
	}
}
