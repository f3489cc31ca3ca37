package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/shared"
)

// CreateTopicsPath is the batch endpoint under the API base URL.
const CreateTopicsPath = "/topic/multiple"

// TopicService implements [TopicCreator] against the LMS backend.
type TopicService struct {
	api *APIService
}

var _ TopicCreator = (*TopicService)(nil)

// NewTopicService creates a TopicService rooted at baseURL.
func NewTopicService(baseURL string, client *http.Client) *TopicService {
	return &TopicService{api: NewAPIService(baseURL, client)}
}

// BaseURL returns the base URL batches are posted under.
func (s *TopicService) BaseURL() string { return s.api.BaseURL() }

// CreateTopics posts records as one JSON array to [CreateTopicsPath].
//
// Transport failures and non-2xx responses are returned wrapped in [shared.ErrAPIRequest];
// the response is still returned for non-2xx statuses so callers can log the body.
func (s *TopicService) CreateTopics(ctx context.Context, records []models.TopicRecord) (*APIResponse, error) {
	if records == nil {
		records = []models.TopicRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode topics: %v", shared.ErrInvalidInput, err)
	}

	resp, err := s.api.Post(ctx, CreateTopicsPath, data)
	if err != nil {
		return nil, requestError(err)
	}

	if !resp.OK() {
		return resp, fmt.Errorf("%w: create topics returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return resp, nil
}

// ListTopics fetches the topics the backend holds for courseID, in stored order.
func (s *TopicService) ListTopics(ctx context.Context, courseID int64) ([]models.TopicRecord, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("%s?courseID=%d", CreateTopicsPath, courseID))
	if err != nil {
		return nil, requestError(err)
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: list topics returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var records []models.TopicRecord
	if err := json.Unmarshal(resp.Body, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode topics: %v", shared.ErrAPIRequest, err)
	}
	return records, nil
}

// requestError wraps a transport failure in [shared.ErrAPIRequest], adding [shared.ErrTimeout] when the
// request ran out of time.
func requestError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w: %v", shared.ErrAPIRequest, shared.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
}
