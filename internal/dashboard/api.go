package dashboard

import (
	"context"
	"errors"

	"github.com/agenthands/eventlens/internal/client"
	"github.com/agenthands/eventlens/internal/core/model"
)

// API is the part of the REST client the surfaces use.
type API interface {
	AllEvents(ctx context.Context) ([]*model.EventRecord, error)
	Stats(ctx context.Context) (*model.Stats, error)
	SubmitTweet(ctx context.Context, tweet string) (*client.SubmitResponse, error)
	AdminEvents(ctx context.Context) ([]*model.EventRecord, error)
	UpdateEvent(ctx context.Context, id string, patch *model.EventRecord) (*client.MutationResponse, error)
	DeleteEvent(ctx context.Context, id string) (*client.MutationResponse, error)
	MergeEvents(ctx context.Context, ids []string, mergeData *model.EventRecord) (*client.MutationResponse, error)
	BulkDelete(ctx context.Context, ids []string) (*client.MutationResponse, error)
}

// Publisher announces that event data changed.
type Publisher interface {
	Refresh(source string) int
}

func apiMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
