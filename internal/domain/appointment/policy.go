package appointment

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

// ===============================
// Actors
// ===============================

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVeterinarian Role = "medico"
	RoleFrontDesk    Role = "recepcion"
	RoleGuardian     Role = "tutor"
)

func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleVeterinarian || r == RoleFrontDesk
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionCreate         Action = "create"
	ActionConfirm        Action = "confirm"
	ActionCancel         Action = "cancel"
	ActionCheckIn        Action = "check_in"
	ActionBeginTreatment Action = "begin_treatment"
	ActionEndTreatment   Action = "end_treatment"
	ActionReschedule     Action = "reschedule"
)

type rule struct {
	roles       []Role
	ownerMayAct bool
}

var policy = map[Action]rule{
	ActionCreate:         {roles: []Role{RoleAdmin, RoleVeterinarian, RoleFrontDesk}, ownerMayAct: true},
	ActionConfirm:        {roles: []Role{RoleFrontDesk, RoleAdmin}},
	ActionCheckIn:        {roles: []Role{RoleFrontDesk, RoleAdmin}},
	ActionBeginTreatment: {roles: []Role{RoleVeterinarian, RoleAdmin}},
	ActionEndTreatment:   {roles: []Role{RoleVeterinarian, RoleAdmin}},
	ActionCancel:         {roles: []Role{RoleAdmin, RoleVeterinarian, RoleFrontDesk}, ownerMayAct: true},
	ActionReschedule:     {roles: []Role{RoleAdmin, RoleVeterinarian, RoleFrontDesk}, ownerMayAct: true},
}

// Authorize checks the capability set of actor for action. isOwner tells
// whether the actor is the guardian owning the pet or appointment.
func Authorize(action Action, actor Actor, isOwner bool) error {
	r, ok := policy[action]
	if !ok {
		return httperr.Forbidden("forbidden_role")
	}

	for _, role := range r.roles {
		if role == actor.Role {
			return nil
		}
	}

	if r.ownerMayAct && actor.Role == RoleGuardian {
		if isOwner {
			return nil
		}
		return httperr.Forbidden("not_owner")
	}

	return httperr.Forbidden("forbidden_role")
}
