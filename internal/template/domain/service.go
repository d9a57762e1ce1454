package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/prompthub/api/internal/authtoken"
)

// ListFilter selects which templates a listing returns.
type ListFilter string

const (
	FilterMine   ListFilter = "mine"
	FilterPublic ListFilter = "public"
	FilterAll    ListFilter = "all"
)

// ParseFilter normalizes a raw filter value. Empty means all; anything else
// must match one of the known filters, case-insensitively.
func ParseFilter(raw string) (ListFilter, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "":
		return FilterAll, nil
	case string(FilterMine), string(FilterPublic), string(FilterAll):
		return ListFilter(normalized), nil
	default:
		return "", ErrInvalidFilter
	}
}

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type Service interface {
	List(ctx context.Context, principal authtoken.Principal, filter string) ([]Template, error)
	GetByID(ctx context.Context, principal authtoken.Principal, id string) (Template, error)
	Create(ctx context.Context, principal authtoken.Principal, req CreateRequest) (Template, error)
	Update(ctx context.Context, principal authtoken.Principal, id string, req UpdateRequest) (Template, error)
	Delete(ctx context.Context, principal authtoken.Principal, id string) error
	Clone(ctx context.Context, principal authtoken.Principal, id string) (Template, error)
}

var (
	ErrNotFound           = errors.New("template not found")
	ErrInvalidID          = errors.New("invalid template id")
	ErrInvalidFilter      = errors.New("filter must be one of: mine, public, all")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be 200 characters or less")
	ErrDescriptionTooLong = errors.New("description must be 1000 characters or less")
)
