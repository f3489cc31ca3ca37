package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/topix/internal/formatter"
	"github.com/desertthunder/topix/internal/models"
	"github.com/desertthunder/topix/internal/server"
	"github.com/desertthunder/topix/internal/services"
	"github.com/desertthunder/topix/internal/shared"
	tu "github.com/desertthunder/topix/internal/testing"
	"github.com/urfave/cli/v3"
)

type countingCreator struct {
	calls   int
	records []models.TopicRecord
	err     error
}

func (c *countingCreator) CreateTopics(ctx context.Context, records []models.TopicRecord) (*services.APIResponse, error) {
	c.calls++
	c.records = records
	if c.err != nil {
		return nil, c.err
	}
	return &services.APIResponse{StatusCode: http.StatusCreated}, nil
}

func newTestRunner(t *testing.T, creator services.TopicCreator) (*Runner, *bytes.Buffer) {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "topix.db")

	output := &bytes.Buffer{}
	return NewRunner(RunnerOpts{
		Config:  config,
		Creator: creator,
		Logger:  shared.NewLogger(io.Discard),
		Output:  output,
	}), output
}

func runCLI(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:      "topix",
		Commands:  r.register(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
	}
	return app.Run(context.Background(), append([]string{"topix"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			creator := &countingCreator{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Creator:    creator,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.creator != creator {
				t.Error("expected creator to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient.Timeout != runner.config.API.Timeout() {
				t.Errorf("expected client timeout %v, got %v", runner.config.API.Timeout(), runner.httpClient.Timeout)
			}
		})

		t.Run("default creator targets configured base URL", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.BaseURL = "http://lms.test/api/"

			runner := NewRunner(RunnerOpts{Config: config})

			svc, ok := runner.creator.(*services.TopicService)
			if !ok {
				t.Fatalf("expected *services.TopicService, got %T", runner.creator)
			}
			if svc.BaseURL() != "http://lms.test/api" {
				t.Errorf("unexpected base URL %s", svc.BaseURL())
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline error, got %v", err)
			}
		})
	})
}

func TestSubmit(t *testing.T) {
	t.Run("dry run prints payload without sending", func(t *testing.T) {
		creator := &countingCreator{}
		runner, output := newTestRunner(t, creator)

		err := runCLI(runner, "submit", "--course", "7", "--topic", "Intro:Basics", "--topic", "Loops", "--dry-run")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creator.calls != 0 {
			t.Errorf("expected no requests, got %d", creator.calls)
		}

		var records []models.TopicRecord
		if err := json.Unmarshal(output.Bytes(), &records); err != nil {
			t.Fatalf("expected JSON payload, got %s: %v", output.String(), err)
		}
		if len(records) != 2 || records[1].TopicID != 1 || records[1].Description != "" || records[0].Course.CourseID != 7 {
			t.Errorf("unexpected payload: %+v", records)
		}
	})

	t.Run("dry run markdown", func(t *testing.T) {
		runner, output := newTestRunner(t, &countingCreator{})

		if err := runCLI(runner, "submit", "-c", "3", "-t", "Intro:Basics", "--dry-run", "--format", "markdown"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "1. **Intro** - Basics") {
			t.Errorf("unexpected markdown: %s", output.String())
		}
	})

	t.Run("sends and journals", func(t *testing.T) {
		creator := &countingCreator{}
		runner, output := newTestRunner(t, creator)

		if err := runCLI(runner, "submit", "--course", "7", "--topic", "Intro:Basics"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creator.calls != 1 || creator.records[0].TopicName != "Intro" {
			t.Errorf("expected one request with Intro, got %d %+v", creator.calls, creator.records)
		}

		out := output.String()
		for _, want := range []string{"[1/3]", "[3/3]", "Topics Added Successfully", "Submission: "} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got %s", want, out)
			}
		}
	})

	t.Run("missing course", func(t *testing.T) {
		runner, _ := newTestRunner(t, &countingCreator{})

		err := runCLI(runner, "submit", "--topic", "Intro")
		if !errors.Is(err, shared.ErrMissingCourse) {
			t.Errorf("expected ErrMissingCourse, got %v", err)
		}
	})

	t.Run("no topics", func(t *testing.T) {
		creator := &countingCreator{}
		runner, _ := newTestRunner(t, creator)

		for _, args := range [][]string{
			{"submit", "--course", "7"},
			{"submit", "--course", "7", "--dry-run"},
		} {
			if err := runCLI(runner, args...); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("%v: expected ErrMissingArgument, got %v", args, err)
			}
		}
		if creator.calls != 0 {
			t.Errorf("expected no requests, got %d", creator.calls)
		}
	})

	t.Run("first topic without a name", func(t *testing.T) {
		creator := &countingCreator{}
		runner, _ := newTestRunner(t, creator)

		err := runCLI(runner, "submit", "--course", "7", "--topic", ":only description", "--topic", "Second")
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if creator.calls != 0 {
			t.Errorf("expected no requests, got %d", creator.calls)
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		creator := &countingCreator{err: shared.ErrAPIRequest}
		runner, _ := newTestRunner(t, creator)

		err := runCLI(runner, "submit", "--course", "7", "--topic", "Intro", "--no-journal")
		if !errors.Is(err, shared.ErrSubmissionFailed) {
			t.Errorf("expected ErrSubmissionFailed, got %v", err)
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topics.csv")
		if err := os.WriteFile(path, []byte("name,description\nIntro,Basics\n"), 0644); err != nil {
			t.Fatal(err)
		}
		creator := &countingCreator{}
		runner, _ := newTestRunner(t, creator)

		if err := runCLI(runner, "submit", "--course", "7", "--file", path, "--topic", "Extra"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(creator.records) != 2 || creator.records[1].TopicName != "Extra" {
			t.Errorf("expected file rows then flags, got %+v", creator.records)
		}
	})
}

func TestHistory(t *testing.T) {
	creator := &countingCreator{}
	runner, output := newTestRunner(t, creator)

	if err := runCLI(runner, "submit", "--course", "7", "--topic", "A", "--topic", "B"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	creator.err = errors.New("boom")
	runCLI(runner, "submit", "--course", "8", "--topic", "C")

	t.Run("table", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "history"); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %q", output.String())
		}
		if !strings.Contains(lines[1], "failed") || !strings.Contains(lines[2], "succeeded") {
			t.Errorf("expected newest first, got %q", lines)
		}
	})

	t.Run("json with topics filtered by course", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "history", "--course", "7", "--json", "--topics"); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		var views []map[string]any
		if err := json.Unmarshal(output.Bytes(), &views); err != nil {
			t.Fatalf("invalid JSON %s: %v", output.String(), err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 submission, got %d", len(views))
		}
		topics := views[0]["topics"].([]any)
		if len(topics) != 2 || topics[1].(map[string]any)["topicName"] != "B" {
			t.Errorf("unexpected topics: %v", topics)
		}
	})

	t.Run("json without topics reports only the count", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "history", "--course", "7", "--json"); err != nil {
			t.Fatalf("history failed: %v", err)
		}

		var views []map[string]any
		if err := json.Unmarshal(output.Bytes(), &views); err != nil {
			t.Fatalf("invalid JSON %s: %v", output.String(), err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 submission, got %d", len(views))
		}
		if _, ok := views[0]["topics"]; ok {
			t.Errorf("expected no topics without --topics, got %v", views[0]["topics"])
		}
		if views[0]["topicCount"] != float64(2) {
			t.Errorf("expected topicCount 2, got %v", views[0]["topicCount"])
		}
	})

	t.Run("xlsx export reloads as a topic list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topics.xlsx")
		if err := runCLI(runner, "history", "--course", "7", "--xlsx", path); err != nil {
			t.Fatalf("history --xlsx failed: %v", err)
		}

		list, err := formatter.ImportTopicsFile(path)
		if err != nil {
			t.Fatalf("ImportTopicsFile failed: %v", err)
		}
		want := models.TopicListOf(models.TopicEntry{TopicName: "A"}, models.TopicEntry{TopicName: "B"})
		if !list.Equal(want) {
			t.Errorf("expected %+v, got %+v", want.Entries(), list.Entries())
		}
	})

	t.Run("xlsx export with no match", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "none.xlsx")
		err := runCLI(runner, "history", "--course", "99", "--xlsx", path)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		err := runCLI(runner, "history", "--status", "pending")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestRemote(t *testing.T) {
	backend := httptest.NewServer(server.NewTopicsHandler())
	defer backend.Close()

	config := shared.DefaultConfig()
	config.API.BaseURL = backend.URL
	config.Database.Path = filepath.Join(t.TempDir(), "topix.db")
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard), Output: output})

	if err := runCLI(runner, "submit", "--course", "7", "--topic", "Intro:Basics", "--topic", "Loops"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "remote", "--course", "7", "--json"); err != nil {
			t.Fatalf("remote failed: %v", err)
		}

		var records []models.TopicRecord
		if err := json.Unmarshal(output.Bytes(), &records); err != nil {
			t.Fatalf("invalid JSON %s: %v", output.String(), err)
		}
		if len(records) != 2 || records[0].TopicName != "Intro" || records[1].TopicID != 1 {
			t.Errorf("unexpected records: %+v", records)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "remote", "--course", "7"); err != nil {
			t.Fatalf("remote failed: %v", err)
		}
		if !strings.Contains(output.String(), "Intro") || !strings.Contains(output.String(), "Loops") {
			t.Errorf("expected both topics, got %q", output.String())
		}
	})

	t.Run("empty course", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "remote", "--course", "8"); err != nil {
			t.Fatalf("remote failed: %v", err)
		}
		if !strings.Contains(output.String(), "No topics stored for course 8") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("missing course", func(t *testing.T) {
		if err := runCLI(runner, "remote"); !errors.Is(err, shared.ErrMissingCourse) {
			t.Errorf("expected ErrMissingCourse, got %v", err)
		}
	})

	t.Run("backend unavailable", func(t *testing.T) {
		down := shared.DefaultConfig()
		down.API.BaseURL = "http://lms.invalid"
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		r := NewRunner(RunnerOpts{Config: down, HTTPClient: client, Logger: shared.NewLogger(io.Discard), Output: io.Discard})

		if err := runCLI(r, "remote", "--course", "7"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestSetupAndConfig(t *testing.T) {
	wd := tu.MustGetwd(t)
	dir := t.TempDir()
	tu.MustChdir(t, dir)
	defer tu.MustChdir(t, wd)

	runner, output := newTestRunner(t, &countingCreator{})

	t.Run("setup creates config and database", func(t *testing.T) {
		if err := runCLI(runner, "setup", "--config", "config.toml"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
		tu.AssertFileExists(t, filepath.Join(dir, shared.DefaultConfig().Database.Path))
		if !strings.Contains(output.String(), "Journal ready") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("setup rollback", func(t *testing.T) {
		if err := runCLI(runner, "setup", "--rollback"); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}
	})

	t.Run("config init refuses to overwrite", func(t *testing.T) {
		if err := runCLI(runner, "config", "init", "--path", "other.toml"); err != nil {
			t.Fatalf("config init failed: %v", err)
		}
		content := tu.MustReadFile(t, filepath.Join(dir, "other.toml"))
		if !strings.Contains(content, "[feedback]") {
			t.Errorf("expected template content, got %s", content)
		}

		err := runCLI(runner, "config", "init", "--path", "other.toml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("config show", func(t *testing.T) {
		output.Reset()
		runner.config.API.BaseURL = "http://override.test"
		if err := runCLI(runner, "config", "show"); err != nil {
			t.Fatalf("config show failed: %v", err)
		}
		if !strings.Contains(output.String(), `base_url = "http://override.test"`) {
			t.Errorf("expected effective config, got %s", output.String())
		}
	})
}

func TestTUIRequiresCourse(t *testing.T) {
	runner, _ := newTestRunner(t, &countingCreator{})

	err := runCLI(runner, "tui")
	if !errors.Is(err, shared.ErrMissingCourse) {
		t.Errorf("expected ErrMissingCourse, got %v", err)
	}
}

func TestCollectTopics(t *testing.T) {
	list, err := collectTopics("", []string{"Intro: Basics", "Loops", "Maps:key:value"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.TopicListOf(
		models.TopicEntry{TopicName: "Intro", Description: "Basics"},
		models.TopicEntry{TopicName: "Loops"},
		models.TopicEntry{TopicName: "Maps", Description: "key:value"},
	)
	if !list.Equal(want) {
		t.Errorf("got %+v, want %+v", list.Entries(), want.Entries())
	}

	if _, err := collectTopics("missing.csv", nil); err == nil {
		t.Error("expected error for missing file")
	}
}
