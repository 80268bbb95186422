package data

import (
	"context"
	"time"

	"github.com/stitbu/satupintu/internal/model"
	"github.com/stitbu/satupintu/internal/remote"
)

// RealtimeCallbacks receive push-style updates from the remote store. Task
// and group changes arrive as re-fetch signals; new chat messages are pushed
// directly so the caller avoids a round trip.
type RealtimeCallbacks struct {
	OnTasksChanged  func()
	OnMessage       func(model.ChatMessage)
	OnGroupsChanged func()
}

// Subscribe wires the three change streams into the callbacks and returns a
// disposable handle covering all of them. With the remote unconfigured it
// returns nil; callers must treat that as "no realtime available", not as an
// error.
func (s *Service) Subscribe(ctx context.Context, interval time.Duration, callbacks RealtimeCallbacks) *remote.Subscription {
	if !s.remote.IsConfigured() {
		return nil
	}

	tables := []string{TableTasks, TableMessages, TableGroups}
	return s.remote.Watch(ctx, tables, interval, func(event remote.Event) {
		switch event.Table {
		case TableTasks:
			if callbacks.OnTasksChanged != nil {
				callbacks.OnTasksChanged()
			}
		case TableMessages:
			if event.Type == remote.EventInsert && callbacks.OnMessage != nil {
				callbacks.OnMessage(rowToMessage(event.Row))
			}
		case TableGroups:
			if callbacks.OnGroupsChanged != nil {
				callbacks.OnGroupsChanged()
			}
		}
	})
}
