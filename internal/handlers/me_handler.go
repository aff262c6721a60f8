package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/vet-scheduler/internal/identity"
	"github.com/BruksfildServices01/vet-scheduler/internal/middleware"
)

type MeHandler struct {
	repo domain.Repository
}

func NewMeHandler(repo domain.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

// GetMe returns the resolved identity plus the clinic profile tied to the
// role, if any.
func (h *MeHandler) GetMe(c *gin.Context) {
	val, exists := c.Get(middleware.ContextIdentity)
	id, ok := val.(*identity.Identity)
	if !exists || !ok {
		httperr.Unauthorized(c, "invalid_token")
		return
	}

	out := gin.H{"user": id}
	ctx := c.Request.Context()

	switch domain.Role(id.Role) {
	case domain.RoleGuardian:
		g, err := h.repo.GetGuardianByUserID(ctx, id.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, httperr.Store("get_guardian", err))
			return
		}
		if g != nil {
			out["tutor_id"] = g.ID
		}
	case domain.RoleVeterinarian, domain.RoleAdmin:
		p, err := h.repo.GetProfessionalByUserID(ctx, id.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, httperr.Store("get_professional", err))
			return
		}
		if p != nil {
			out["profesional_id"] = p.ID
		}
	}

	httpresp.OK(c, out)
}
