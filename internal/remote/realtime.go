package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Event types delivered by Watch.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event is one observed change on a watched table.
type Event struct {
	Table string
	Type  string
	Row   Row
}

// Subscription is the disposable handle returned by Watch. Close stops the
// watcher; it is safe to call more than once.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// Watch polls the named tables and invokes handler for every insert, update,
// or delete it observes. The hosted push channel is replaced by interval
// polling; delivery stays at-most-once best-effort, and a failed poll is
// skipped rather than surfaced. The first poll seeds the snapshot without
// emitting events.
func (c *Client) Watch(ctx context.Context, tables []string, interval time.Duration, handler func(Event)) *Subscription {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)

		snapshots := make(map[string]map[string]string, len(tables))
		for _, table := range tables {
			if snap, err := c.pollTable(ctx, table); err == nil {
				snapshots[table] = snap
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			for _, table := range tables {
				current, err := c.pollTable(ctx, table)
				if err != nil {
					continue
				}
				previous, seeded := snapshots[table]
				snapshots[table] = current
				if !seeded {
					continue
				}
				c.diff(table, previous, current, handler)
			}
		}
	}()

	return sub
}

func (c *Client) pollTable(ctx context.Context, table string) (map[string]string, error) {
	rows, err := c.Select(ctx, table, SelectOptions{})
	if err != nil {
		return nil, err
	}
	snap := make(map[string]string, len(rows))
	for _, row := range rows {
		id, ok := row["id"].(string)
		if !ok {
			id = fmt.Sprintf("%v", row["id"])
		}
		encoded, err := json.Marshal(row)
		if err != nil {
			log.Printf("Skipping unencodable row in %s: %v", table, err)
			continue
		}
		snap[id] = string(encoded)
	}
	return snap, nil
}

func (c *Client) diff(table string, previous, current map[string]string, handler func(Event)) {
	for id, encoded := range current {
		prev, existed := previous[id]
		if !existed {
			handler(Event{Table: table, Type: EventInsert, Row: decodeRow(encoded)})
		} else if prev != encoded {
			handler(Event{Table: table, Type: EventUpdate, Row: decodeRow(encoded)})
		}
	}
	for id, encoded := range previous {
		if _, still := current[id]; !still {
			handler(Event{Table: table, Type: EventDelete, Row: decodeRow(encoded)})
		}
	}
}

func decodeRow(encoded string) Row {
	var row Row
	if err := json.Unmarshal([]byte(encoded), &row); err != nil {
		return Row{}
	}
	return row
}
