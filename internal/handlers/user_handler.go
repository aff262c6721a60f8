package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-scheduler/internal/audit"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/vet-scheduler/internal/identity"
	"github.com/BruksfildServices01/vet-scheduler/internal/middleware"
)

// UserActivator toggles a user's access.
type UserActivator interface {
	SetActive(ctx context.Context, userID uuid.UUID, active bool) (*identity.Identity, error)
}

type UserHandler struct {
	users UserActivator
	audit *audit.Dispatcher
}

func NewUserHandler(users UserActivator, dispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{users: users, audit: dispatcher}
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actor := middleware.Actor(c)
	if !active && id == actor.UserID {
		httperr.BadRequest(c, "cannot_deactivate_self")
		return
	}

	out, err := h.users.SetActive(c.Request.Context(), id, active)
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			httperr.Respond(c, httperr.NotFound("user_not_found"))
			return
		}
		httperr.Respond(c, httperr.Store("set_user_active", err))
		return
	}

	action := "user_deactivated"
	if active {
		action = "user_activated"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "user",
		EntityID: &out.UserID,
	})

	httpresp.OK(c, out)
}
