package handler

import (
	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard aggregation endpoint.
type DashboardHandler struct {
	Handler
	services *service.Services
}

func NewDashboardHandler(s *server.Server, services *service.Services) *DashboardHandler {
	return &DashboardHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// Get returns the caller's dashboard data: all transactions ordered by date
// descending with serialized amounts, served from cache when fresh.
func (h *DashboardHandler) Get(c echo.Context, req *EmptyRequest) (*service.DashboardResponse, error) {
	clerkUserID := middleware.GetUserID(c)
	if clerkUserID == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return h.services.Dashboard.Get(c.Request().Context(), clerkUserID)
}
