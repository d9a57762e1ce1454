package domain

import (
	"context"
	"errors"

	"github.com/prompthub/api/internal/authtoken"
)

type RecordRequest struct {
	TemplateID string `json:"template_id"`
}

type Service interface {
	Record(ctx context.Context, principal authtoken.Principal, req RecordRequest) (UsageEvent, error)
}

var ErrInvalidTemplateID = errors.New("template_id is required")
