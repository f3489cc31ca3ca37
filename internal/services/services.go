// package services defines the collaborators topix talks to over HTTP
//
// LMS backend (create topics)
package services

import (
	"context"

	"github.com/desertthunder/topix/internal/models"
)

// TopicCreator sends a batch of topic records to the LMS backend.
//
// A nil error means the backend accepted the whole batch; there is no partial success.
type TopicCreator interface {
	CreateTopics(ctx context.Context, records []models.TopicRecord) (*APIResponse, error)
}

// TopicCreatorFunc adapts an ordinary function to [TopicCreator].
type TopicCreatorFunc func(ctx context.Context, records []models.TopicRecord) (*APIResponse, error)

// CreateTopics calls f(ctx, records).
func (f TopicCreatorFunc) CreateTopics(ctx context.Context, records []models.TopicRecord) (*APIResponse, error) {
	return f(ctx, records)
}
