// Package policy decides whether an acting identity may perform an action.
// Every rule is a pure function of the actor and the target.
package policy

import (
	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
)

// Action names used in authorization errors
const (
	ActionViewProfile        = "view this profile"
	ActionEditProfile        = "edit this profile"
	ActionEditAccount        = "edit this account"
	ActionManageHospitals    = "manage hospitals"
	ActionSubmitApplication  = "submit a donor application"
	ActionReviewApplications = "review donor applications"
)

// RequireAuthenticated rejects the anonymous actor
func RequireAuthenticated(actor models.Actor, action string) error {
	if !actor.IsAuthenticated() {
		return &apperrors.AuthorizationError{Action: action, Unauthenticated: true}
	}
	return nil
}

// CanViewProfile allows the owner of the profile and administrators
func CanViewProfile(actor models.Actor, ownerID string) error {
	return ownerOrAdmin(actor, ownerID, ActionViewProfile)
}

// CanEditProfile allows the owner of the profile and administrators
func CanEditProfile(actor models.Actor, ownerID string) error {
	return ownerOrAdmin(actor, ownerID, ActionEditProfile)
}

// CanManageHospitals allows administrators only
func CanManageHospitals(actor models.Actor) error {
	return adminOnly(actor, ActionManageHospitals)
}

// CanReviewApplications allows administrators only
func CanReviewApplications(actor models.Actor) error {
	return adminOnly(actor, ActionReviewApplications)
}

func ownerOrAdmin(actor models.Actor, ownerID, action string) error {
	if err := RequireAuthenticated(actor, action); err != nil {
		return err
	}
	if actor.IsAdmin || (ownerID != "" && actor.UserID == ownerID) {
		return nil
	}
	return &apperrors.AuthorizationError{Action: action}
}

func adminOnly(actor models.Actor, action string) error {
	if err := RequireAuthenticated(actor, action); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return &apperrors.AuthorizationError{Action: action}
	}
	return nil
}
