package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/shared"
	tu "github.com/desertthunder/topix/internal/testing"
)

func TestTopicService(t *testing.T) {
	payload := models.BuildPayload(models.TopicListOf(
		models.TopicEntry{TopicName: "A", Description: "d1"},
		models.TopicEntry{TopicName: "B", Description: "d2"},
	), 7)

	t.Run("CreateTopics posts the batch", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/api/topic/multiple" {
				t.Errorf("expected /api/topic/multiple, got %s", r.URL.Path)
			}

			body, _ := io.ReadAll(r.Body)
			var got []models.TopicRecord
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if !reflect.DeepEqual(got, payload) {
				t.Errorf("payload = %+v, want %+v", got, payload)
			}

			w.WriteHeader(http.StatusCreated)
			w.Write(body)
		}))
		defer server.Close()

		svc := NewTopicService(server.URL+"/api/", nil)
		resp, err := svc.CreateTopics(context.Background(), payload)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected exactly one call, got %d", calls)
		}
		if !resp.IsJSON {
			t.Error("expected JSON echo")
		}
	})

	t.Run("CreateTopics sends an empty array for nil records", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			if string(body) != "[]" {
				t.Errorf("expected [], got %s", body)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		if _, err := NewTopicService(server.URL, nil).CreateTopics(context.Background(), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("CreateTopics non-2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"course not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		resp, err := NewTopicService(server.URL, nil).CreateTopics(context.Background(), payload)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 response to be returned, got %+v", resp)
		}
	})

	t.Run("CreateTopics transport failure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

		resp, err := NewTopicService("http://lms.invalid", client).CreateTopics(context.Background(), payload)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if resp != nil {
			t.Errorf("expected nil response, got %+v", resp)
		}
	})

	t.Run("CreateTopics timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := NewTopicService(server.URL, nil).CreateTopics(ctx, payload)
		if !errors.Is(err, shared.ErrTimeout) || !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrTimeout wrapped in ErrAPIRequest, got %v", err)
		}
	})

	t.Run("ListTopics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			if r.URL.Path != "/topic/multiple" || r.URL.Query().Get("courseID") != "7" {
				t.Errorf("unexpected request %s", r.URL.String())
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(payload)
		}))
		defer server.Close()

		got, err := NewTopicService(server.URL, nil).ListTopics(context.Background(), 7)
		if err != nil {
			t.Fatalf("ListTopics failed: %v", err)
		}
		if !reflect.DeepEqual(got, payload) {
			t.Errorf("expected %+v, got %+v", payload, got)
		}
	})

	t.Run("ListTopics failures", func(t *testing.T) {
		tests := []struct {
			name    string
			handler http.HandlerFunc
		}{
			{
				name: "non-2xx",
				handler: func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "nope", http.StatusInternalServerError)
				},
			},
			{
				name: "non-JSON body",
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte("plain text"))
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(tt.handler)
				defer server.Close()

				if _, err := NewTopicService(server.URL, nil).ListTopics(context.Background(), 7); !errors.Is(err, shared.ErrAPIRequest) {
					t.Errorf("expected ErrAPIRequest, got %v", err)
				}
			})
		}
	})
}
