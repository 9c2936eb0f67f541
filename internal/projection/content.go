package projection

import "context"

// Context keys attached to content fetch registrations.
const (
	ContextReviewID = "reviewId"
	ContextDataID   = "id"
)

// ContentRegistry schedules off-chain content for retrieval.
type ContentRegistry interface {
	RegisterForFetch(ctx context.Context, cid string, context map[string]string) error
}

// Registration is a content fetch request raised while projecting an event.
type Registration struct {
	CID     string            `json:"cid"`
	Context map[string]string `json:"context"`
}

type nopRegistry struct{}

func (nopRegistry) RegisterForFetch(context.Context, string, map[string]string) error { return nil }
