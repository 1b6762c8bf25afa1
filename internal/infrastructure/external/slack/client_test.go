package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.SlackConfig{BotToken: "xoxb-test", BaseURL: baseURL})
}

func TestPostMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postMessage" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["channel"] != "C1" || payload["thread_ts"] != "100.1" {
			t.Fatalf("payload wrong: %v", payload)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "ts": "200.2"})
	}))
	defer ts.Close()

	got, err := newTestClient(ts.URL).PostMessage(context.Background(), "C1", "hello", "100.1")
	if err != nil {
		t.Fatalf("PostMessage failed: %v", err)
	}
	if got != "200.2" {
		t.Fatalf("unexpected ts %s", got)
	}
}

func TestPostMessageNoToken(t *testing.T) {
	c := NewClient(&config.SlackConfig{})
	if _, err := c.PostMessage(context.Background(), "C1", "x", ""); err != ErrNoToken {
		t.Fatalf("want ErrNoToken, got %v", err)
	}
}

func TestLookupUserIDByEmailNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "error": "users_not_found"})
	}))
	defer ts.Close()

	id, err := newTestClient(ts.URL).LookupUserIDByEmail(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("not-found must not error: %v", err)
	}
	if id != "" {
		t.Fatalf("want empty id, got %s", id)
	}
}

func TestFetchThreadRepliesPagination(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			if r.URL.Query().Get("cursor") != "" {
				t.Fatalf("first call must not carry a cursor")
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":                true,
				"messages":          []map[string]string{{"ts": "1.0", "user": "U1", "text": "a"}},
				"response_metadata": map[string]string{"next_cursor": "page2"},
			})
			return
		}
		if r.URL.Query().Get("cursor") != "page2" {
			t.Fatalf("second call missing cursor")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":       true,
			"messages": []map[string]string{{"ts": "2.0", "user": "U2", "text": "b"}},
		})
	}))
	defer ts.Close()

	msgs, err := newTestClient(ts.URL).FetchThreadReplies(context.Background(), "C1", "1.0")
	if err != nil {
		t.Fatalf("FetchThreadReplies failed: %v", err)
	}
	if len(msgs) != 2 || msgs[0].User != "U1" || msgs[1].User != "U2" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
