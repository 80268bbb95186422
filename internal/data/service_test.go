package data

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stitbu/satupintu/internal/model"
	"github.com/stitbu/satupintu/internal/remote"
	"github.com/stitbu/satupintu/internal/store"
)

const testKey = "test-anon-key-0123456789abcdef"

func newLocalOnlyService(t *testing.T) *Service {
	t.Helper()
	local, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init store failed: %v", err)
	}
	t.Cleanup(func() { local.Close() })
	return NewService(local, remote.New(remote.Params{}))
}

func newOutageService(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "total outage", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	local, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init store failed: %v", err)
	}
	t.Cleanup(func() { local.Close() })
	return NewService(local, remote.New(remote.Params{URL: server.URL, AnonKey: testKey})), server
}

func TestAddTaskRoundTripWithoutRemote(t *testing.T) {
	s := newLocalOnlyService(t)
	ctx := context.Background()

	created, err := s.AddTask(ctx, model.Task{Title: "Draft contract", Priority: model.PriorityHigh, CreatorID: "u1"})
	if err != nil {
		t.Fatalf("add task failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("task id was not assigned")
	}
	if created.IsCompleted {
		t.Fatal("new task must start incomplete")
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		t.Fatalf("get tasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected exactly one task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Title != "Draft contract" || got.Priority != model.PriorityHigh || got.CreatorID != "u1" {
		t.Fatalf("task did not round-trip: %+v", got)
	}
	if s.LastFetch() != FetchUnconfigured {
		t.Fatalf("expected unconfigured fallback, got %s", s.LastFetch())
	}
}

func TestUpdateTaskShallowMerge(t *testing.T) {
	s := newLocalOnlyService(t)
	ctx := context.Background()

	created, err := s.AddTask(ctx, model.Task{
		Title:       "Close ledger",
		Description: "monthly",
		Priority:    model.PriorityMedium,
		CreatorID:   "u1",
		AssigneeID:  "u2",
	})
	if err != nil {
		t.Fatalf("add task failed: %v", err)
	}

	title := "Close Q3 ledger"
	completed := true
	if err := s.UpdateTask(ctx, created.ID, model.TaskUpdate{Title: &title, IsCompleted: &completed}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	tasks, _ := s.Tasks(ctx)
	got := tasks[0]
	if got.Title != title || !got.IsCompleted {
		t.Fatalf("updated fields not applied: %+v", got)
	}
	if got.Description != "monthly" || got.AssigneeID != "u2" || got.Priority != model.PriorityMedium {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestCompletingTaskDoesNotCascadeToSubtasks(t *testing.T) {
	s := newLocalOnlyService(t)
	ctx := context.Background()

	created, err := s.AddTask(ctx, model.Task{
		Title:     "Prepare audit",
		CreatorID: "u1",
		Subtasks: []model.Subtask{
			{ID: "s1", Title: "Gather documents"},
			{ID: "s2", Title: "Book meeting room"},
		},
	})
	if err != nil {
		t.Fatalf("add task failed: %v", err)
	}

	completed := true
	if err := s.UpdateTask(ctx, created.ID, model.TaskUpdate{IsCompleted: &completed}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	tasks, _ := s.Tasks(ctx)
	got := tasks[0]
	if !got.IsCompleted {
		t.Fatal("completion flag not set")
	}
	for _, sub := range got.Subtasks {
		if sub.IsCompleted {
			t.Fatalf("subtask %s was cascaded to complete", sub.ID)
		}
	}
}

func TestUpdateAndDeleteAbsentIDAreNoOps(t *testing.T) {
	s := newLocalOnlyService(t)
	ctx := context.Background()

	if _, err := s.AddTask(ctx, model.Task{Title: "Keep me", CreatorID: "u1"}); err != nil {
		t.Fatalf("add task failed: %v", err)
	}

	title := "ghost"
	if err := s.UpdateTask(ctx, "no-such-id", model.TaskUpdate{Title: &title}); err != nil {
		t.Fatalf("updating an absent id must not error: %v", err)
	}
	if err := s.DeleteTask(ctx, "no-such-id"); err != nil {
		t.Fatalf("deleting an absent id must not error: %v", err)
	}

	tasks, _ := s.Tasks(ctx)
	if len(tasks) != 1 || tasks[0].Title != "Keep me" {
		t.Fatalf("no-op mutations altered state: %+v", tasks)
	}
}

func TestDeleteTaskRemovesRecord(t *testing.T) {
	s := newLocalOnlyService(t)
	ctx := context.Background()

	created, _ := s.AddTask(ctx, model.Task{Title: "Temporary", CreatorID: "u1"})
	if err := s.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	tasks, _ := s.Tasks(ctx)
	for _, task := range tasks {
		if task.ID == created.ID {
			t.Fatal("deleted task still present")
		}
	}
}

func TestReadsFallBackDuringTotalOutage(t *testing.T) {
	s, _ := newOutageService(t)
	ctx := context.Background()

	// Writes must still succeed against the local mirror.
	created, err := s.AddTask(ctx, model.Task{Title: "Offline work", CreatorID: "u1"})
	if err != nil {
		t.Fatalf("add task during outage failed: %v", err)
	}
	msg, err := s.SendMessage(ctx, model.ChatMessage{SenderID: "u1", SenderName: "Ana", ChannelID: model.GeneralChannelID, Content: "hi"})
	if err != nil {
		t.Fatalf("send message during outage failed: %v", err)
	}
	group, err := s.CreateChatGroup(ctx, model.ChatGroup{Name: "ops", CreatorID: "u1", MemberIDs: []string{"u1"}})
	if err != nil {
		t.Fatalf("create group during outage failed: %v", err)
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		t.Fatalf("tasks read during outage failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Fatalf("outage read did not return local mirror: %+v", tasks)
	}
	if s.LastFetch() != FetchNetwork {
		t.Fatalf("expected network fallback, got %s", s.LastFetch())
	}

	messages, err := s.Messages(ctx)
	if err != nil {
		t.Fatalf("messages read during outage failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != msg.ID {
		t.Fatalf("outage read did not return local messages: %+v", messages)
	}

	groups, err := s.ChatGroups(ctx)
	if err != nil {
		t.Fatalf("groups read during outage failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Fatalf("outage read did not return local groups: %+v", groups)
	}
}

func TestDecodeFailureClassifiedAndFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error page</html>"))
	}))
	defer server.Close()

	local, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init store failed: %v", err)
	}
	defer local.Close()
	s := NewService(local, remote.New(remote.Params{URL: server.URL, AnonKey: testKey}))

	tasks, err := s.Tasks(context.Background())
	if err != nil {
		t.Fatalf("decode failure must fall back, not error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty local mirror, got %+v", tasks)
	}
	if s.LastFetch() != FetchDecode {
		t.Fatalf("expected decode fallback, got %s", s.LastFetch())
	}
}

// A successful remote read must not refresh the local mirror: the local store
// reflects this session's own writes only.
func TestRemoteReadDoesNotRefreshLocalMirror(t *testing.T) {
	remoteRows := []remote.Row{{
		"id": "remote-1", "title": "From remote", "creator_id": "u9",
		"is_completed": false, "priority": "low", "created_at": "2026-01-05T10:00:00Z",
	}}
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(remoteRows)
	}))
	defer server.Close()

	local, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init store failed: %v", err)
	}
	defer local.Close()
	s := NewService(local, remote.New(remote.Params{URL: server.URL, AnonKey: testKey}))
	ctx := context.Background()

	tasks, err := s.Tasks(ctx)
	if err != nil {
		t.Fatalf("remote read failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "remote-1" || tasks[0].Priority != model.PriorityLow {
		t.Fatalf("remote rows not translated: %+v", tasks)
	}
	if s.LastFetch() != FetchRemote {
		t.Fatalf("expected remote fetch, got %s", s.LastFetch())
	}

	healthy = false
	tasks, err = s.Tasks(ctx)
	if err != nil {
		t.Fatalf("fallback read failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("local mirror was refreshed by a remote read: %+v", tasks)
	}
}

func TestUploadAttachmentRequiresRemote(t *testing.T) {
	s := newLocalOnlyService(t)

	url, err := s.UploadAttachment(context.Background(), "scan.png", []byte("png"), "image/png")
	if !errors.Is(err, remote.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if url != "" {
		t.Fatalf("failed upload must return no url, got %q", url)
	}
}

func TestActivityLogAppendAndReadBack(t *testing.T) {
	s := newLocalOnlyService(t)

	if err := s.LogActivity("task.created", "u1 created a task"); err != nil {
		t.Fatalf("log activity failed: %v", err)
	}
	if err := s.LogActivity("task.deleted", "u1 deleted a task"); err != nil {
		t.Fatalf("log activity failed: %v", err)
	}

	entries, err := s.ActivityLog()
	if err != nil {
		t.Fatalf("read activity failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "task.created" || entries[1].Action != "task.deleted" {
		t.Fatalf("entries out of insertion order: %+v", entries)
	}
	if entries[0].ID == "" || entries[0].Timestamp.IsZero() {
		t.Fatalf("entry not stamped: %+v", entries[0])
	}
}

func TestSubscribeWithoutRemoteReturnsNilHandle(t *testing.T) {
	s := newLocalOnlyService(t)
	sub := s.Subscribe(context.Background(), 0, RealtimeCallbacks{})
	if sub != nil {
		t.Fatal("expected nil handle with remote unconfigured")
	}
}

func TestReconfigureRemotePersistsOverride(t *testing.T) {
	local, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init store failed: %v", err)
	}
	defer local.Close()
	client := remote.New(remote.Params{})
	s := NewService(local, client)

	if _, found := LoadRemoteOverride(local); found {
		t.Fatal("fresh store must hold no override")
	}

	params := remote.Params{URL: "https://backend.test", AnonKey: testKey}
	if err := s.ReconfigureRemote(params); err != nil {
		t.Fatalf("reconfigure failed: %v", err)
	}
	if !client.IsConfigured() {
		t.Fatal("client not swapped to new params")
	}
	saved, found := LoadRemoteOverride(local)
	if !found || saved.URL != params.URL || saved.AnonKey != params.AnonKey {
		t.Fatalf("override not persisted: %+v found=%v", saved, found)
	}

	// Clearing reverts to defaults on next start.
	if err := s.ReconfigureRemote(remote.Params{}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := LoadRemoteOverride(local); found {
		t.Fatal("override not cleared")
	}
}
