package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"
)

const testKey = "test-anon-key-0123456789abcdef"

func TestIsConfigured(t *testing.T) {
	if New(Params{}).IsConfigured() {
		t.Fatal("empty params reported as configured")
	}
	if New(Params{URL: "https://x.test", AnonKey: "short"}).IsConfigured() {
		t.Fatal("trivially short key reported as configured")
	}
	if !New(Params{URL: "https://x.test", AnonKey: testKey}).IsConfigured() {
		t.Fatal("valid params reported as unconfigured")
	}
}

func TestSelectSendsAuthAndQuery(t *testing.T) {
	var gotPath, gotKey, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Row{{"id": "t1", "title": "hello"}})
	}))
	defer server.Close()

	c := New(Params{URL: server.URL, AnonKey: testKey})
	rows, err := c.Select(context.Background(), "tasks", SelectOptions{OrderBy: "created_at", Descending: true, Limit: 10})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["title"] != "hello" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if gotKey != testKey || gotAuth != "Bearer "+testKey {
		t.Fatalf("auth headers missing: apikey=%q auth=%q", gotKey, gotAuth)
	}
	wantPath := "/rest/v1/tasks?limit=10&order=created_at.desc&select=%2A"
	if gotPath != wantPath {
		t.Fatalf("unexpected path: got %q want %q", gotPath, wantPath)
	}
}

func TestSelectErrors(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		c := New(Params{})
		_, err := c.Select(context.Background(), "tasks", SelectOptions{})
		if !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		c := New(Params{URL: server.URL, AnonKey: testKey})
		_, err := c.Select(context.Background(), "tasks", SelectOptions{})
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such table", http.StatusNotFound)
		}))
		defer server.Close()

		c := New(Params{URL: server.URL, AnonKey: testKey})
		_, err := c.Select(context.Background(), "tasks", SelectOptions{})
		if err == nil {
			t.Fatal("expected error for 404")
		}
	})
}

func TestUpdateAndDeleteTargetRow(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.String()})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(Params{URL: server.URL, AnonKey: testKey})
	ctx := context.Background()
	if err := c.UpdateByID(ctx, "tasks", "t1", Row{"is_completed": true}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := c.DeleteByID(ctx, "tasks", "t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].method != http.MethodPatch || calls[0].path != "/rest/v1/tasks?id=eq.t1" {
		t.Fatalf("unexpected update call: %+v", calls[0])
	}
	if calls[1].method != http.MethodDelete || calls[1].path != "/rest/v1/tasks?id=eq.t1" {
		t.Fatalf("unexpected delete call: %+v", calls[1])
	}
}

func TestReconfigureBumpsGeneration(t *testing.T) {
	c := New(Params{})
	if c.Generation() != 0 {
		t.Fatalf("fresh client generation = %d", c.Generation())
	}
	c.Reconfigure(Params{URL: "https://x.test/", AnonKey: testKey})
	if c.Generation() != 1 {
		t.Fatalf("generation after reconfigure = %d", c.Generation())
	}
	if !c.IsConfigured() {
		t.Fatal("reconfigured client reports unconfigured")
	}
}

func TestObjectName(t *testing.T) {
	name := ObjectName("scan of ktp.PDF")
	if !regexp.MustCompile(`^\d+_[0-9a-f]+\.PDF$`).MatchString(name) {
		t.Fatalf("unexpected object name: %q", name)
	}
}

func TestUploadReturnsPublicURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Params{URL: server.URL, AnonKey: testKey})
	url, err := c.Upload(context.Background(), "123_abc.png", []byte("data"), "image/png")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	want := server.URL + "/storage/v1/object/public/attachments/123_abc.png"
	if url != want {
		t.Fatalf("unexpected public url: got %q want %q", url, want)
	}
}

func TestWatchEmitsDiffs(t *testing.T) {
	var mu sync.Mutex
	rows := []Row{{"id": "t1", "title": "one"}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		json.NewEncoder(w).Encode(rows)
	}))
	defer server.Close()

	c := New(Params{URL: server.URL, AnonKey: testKey})

	events := make(chan Event, 16)
	sub := c.Watch(context.Background(), []string{"tasks"}, 20*time.Millisecond, func(e Event) {
		events <- e
	})
	defer sub.Close()

	// Let the watcher seed its snapshot, then mutate the table.
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	rows = []Row{{"id": "t1", "title": "renamed"}, {"id": "t2", "title": "two"}}
	mu.Unlock()

	seen := map[string]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case e := <-events:
			seen[e.Type] = true
		case <-deadline:
			t.Fatalf("timed out waiting for events, saw %v", seen)
		}
	}
	if !seen[EventInsert] || !seen[EventUpdate] {
		t.Fatalf("expected insert and update events, saw %v", seen)
	}

	mu.Lock()
	rows = []Row{{"id": "t2", "title": "two"}}
	mu.Unlock()

	deadline = time.After(2 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Type == EventDelete {
				if e.Row["id"] != "t1" {
					t.Fatalf("unexpected deleted row: %+v", e.Row)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for delete event")
		}
	}
}

func TestWatchCloseIsIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Row{})
	}))
	defer server.Close()

	c := New(Params{URL: server.URL, AnonKey: testKey})
	sub := c.Watch(context.Background(), []string{"tasks"}, 20*time.Millisecond, func(Event) {})
	sub.Close()
	sub.Close()
}
