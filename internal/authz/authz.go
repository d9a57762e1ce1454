// Package authz holds the pure access-control rules for owned, visibility-
// gated resources. The functions do no I/O; callers load the resource and
// pass its ownership and visibility flags in.
package authz

import (
	"errors"

	"github.com/google/uuid"
	"github.com/prompthub/api/internal/authtoken"
)

// Resource is the slice of a record the guard decides on.
type Resource struct {
	OwnerID  uuid.UUID
	IsPublic bool
}

var (
	ErrNotOwner     = errors.New("not owner")
	ErrPrivate      = errors.New("access denied: template is private")
	ErrPrivateUsage = errors.New("cannot record usage for a private template")
	ErrPrivateClone = errors.New("cannot clone a private template you do not own")
)

// CanRead permits owners and anyone on public resources.
func CanRead(r Resource, p authtoken.Principal) error {
	if r.IsPublic || r.OwnerID == p.UserID {
		return nil
	}
	return ErrPrivate
}

// CanWrite permits only the owner, regardless of visibility.
func CanWrite(r Resource, p authtoken.Principal) error {
	if r.OwnerID == p.UserID {
		return nil
	}
	return ErrNotOwner
}

// CanRecordUsage uses the same predicate as CanRead: non-owners must not be
// able to inflate a private resource's counter. Kept as its own rule because
// the usage policy may diverge from the read policy.
func CanRecordUsage(r Resource, p authtoken.Principal) error {
	if r.IsPublic || r.OwnerID == p.UserID {
		return nil
	}
	return ErrPrivateUsage
}

// CanClone denies cloning anything the principal cannot read.
func CanClone(r Resource, p authtoken.Principal) error {
	if r.IsPublic || r.OwnerID == p.UserID {
		return nil
	}
	return ErrPrivateClone
}
