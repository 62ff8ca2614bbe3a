package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fakeGeminiServer(t *testing.T, failures int, text string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + text + `}]}}]}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func quickRetryClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		RetryConfig: &RetryConfig{
			MaxRetries:     2,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     5 * time.Millisecond,
		},
	})
}

func TestChatRetriesTransientFailures(t *testing.T) {
	server, calls := fakeGeminiServer(t, 1, `"Hello! How can I help?"`)
	client := quickRetryClient(server.URL)

	reply, err := client.Chat(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "Hello! How can I help?" {
		t.Errorf("unexpected reply: %q", reply)
	}
	if *calls != 2 {
		t.Errorf("expected 2 calls (1 failure + 1 success), got %d", *calls)
	}
}

func TestChatGivesUpAfterMaxRetries(t *testing.T) {
	server, calls := fakeGeminiServer(t, 10, `""`)
	client := quickRetryClient(server.URL)

	if _, err := client.Chat(context.Background(), "hi", nil); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	// initial attempt + 2 retries
	if *calls != 3 {
		t.Errorf("expected 3 calls, got %d", *calls)
	}
}

func TestUnconfiguredClientFailsFast(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Chat(context.Background(), "hi", nil); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAnalyzeProjectFileDecodesSchema(t *testing.T) {
	server, _ := fakeGeminiServer(t, 0,
		`"{\"title\":\"Drone Swarm\",\"description\":\"Autonomous delivery drones\",\"complexity\":72,\"tags\":[\"Robotics\",\"Go\"]}"`)
	client := quickRetryClient(server.URL)

	analysis, err := client.AnalyzeProjectFile(context.Background(), "drone.pdf", 2048, "")
	if err != nil {
		t.Fatalf("AnalyzeProjectFile failed: %v", err)
	}
	if analysis.Title != "Drone Swarm" {
		t.Errorf("unexpected title: %q", analysis.Title)
	}
	if analysis.Complexity != 72 {
		t.Errorf("unexpected complexity: %d", analysis.Complexity)
	}
	if len(analysis.Tags) != 2 {
		t.Errorf("unexpected tags: %v", analysis.Tags)
	}
}
