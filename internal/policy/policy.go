// Package policy implements the ownership rule applied to every financial
// resource: a resource is visible and mutable by its creating user, or by any
// user holding the administrator role.
package policy

import (
	"errors"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// Action is the operation being attempted against a resource. Creation is not
// listed: creating is always allowed and the owner is forced to the actor
// server-side.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var (
	// ErrForbidden means the resource exists but the actor has no rights
	// over it. Kept distinct from ErrNotFound so callers can answer 403
	// for "exists but not yours" and 404 for "never existed".
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

// Owned is implemented by every financial resource carrying an owner.
type Owned interface {
	OwnerID() uint
}

// Authorize decides whether actor may perform action on a resource owned by
// ownerID. Admins may act on all resources.
func Authorize(actor *models.User, ownerID uint, _ Action) error {
	if actor.IsAdmin() || actor.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// Check loads the resource with the given id into dest and authorizes the
// action against it. A missing row yields ErrNotFound; an existing row the
// actor does not own yields ErrForbidden. Any other load error is returned
// as-is.
func Check(db *gorm.DB, actor *models.User, dest Owned, id uint, action Action) error {
	if err := db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return Authorize(actor, dest.OwnerID(), action)
}

// ScopeToOwner restricts a list query to rows the actor owns. Admins see all
// rows. The filter is applied at query time, never in memory.
func ScopeToOwner(actor *models.User) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if actor.IsAdmin() {
			return tx
		}
		return tx.Where("user_id = ?", actor.ID)
	}
}
