package data

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stitbu/satupintu/internal/model"
	"github.com/stitbu/satupintu/internal/remote"
)

// Tasks returns all tasks, preferring the remote store. Any remote failure
// falls back to the local mirror; a successful remote read does not refresh
// the local copy (the local store is a write-mirror, not a read cache).
func (s *Service) Tasks(ctx context.Context) ([]model.Task, error) {
	if !s.remote.IsConfigured() {
		s.setFetch(FetchUnconfigured)
		return s.local.GetTasks()
	}

	rows, err := s.remote.Select(ctx, TableTasks, remote.SelectOptions{OrderBy: "created_at", Descending: true})
	if err != nil {
		s.setFetch(classify(err))
		return s.local.GetTasks()
	}

	s.setFetch(FetchRemote)
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, rowToTask(row))
	}
	return tasks, nil
}

// AddTask writes the task locally and best-effort mirrors it to the remote
// store. Missing id, timestamp, and priority are filled in here.
func (s *Service) AddTask(ctx context.Context, task model.Task) (model.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	tasks, err := s.local.GetTasks()
	if err != nil {
		return model.Task{}, err
	}
	tasks = append(tasks, task)
	if err := s.local.SaveTasks(tasks); err != nil {
		return model.Task{}, err
	}

	if s.remote.IsConfigured() {
		mirror("addTask", s.remote.Insert(ctx, TableTasks, taskToRow(task)))
	}
	return task, nil
}

// UpdateTask shallow-merges the provided fields onto the stored task and
// mirrors only those fields remotely. Updating an absent id is a no-op.
func (s *Service) UpdateTask(ctx context.Context, id string, update model.TaskUpdate) error {
	tasks, err := s.local.GetTasks()
	if err != nil {
		return err
	}
	found := false
	for i := range tasks {
		if tasks[i].ID == id {
			applyUpdate(&tasks[i], update)
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := s.local.SaveTasks(tasks); err != nil {
		return err
	}

	if s.remote.IsConfigured() {
		if patch := updateToPatch(update); len(patch) > 0 {
			mirror("updateTask", s.remote.UpdateByID(ctx, TableTasks, id, patch))
		}
	}
	return nil
}

// DeleteTask removes the task locally and remotely. Deleting an absent id is
// a no-op, not an error.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	tasks, err := s.local.GetTasks()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := s.local.SaveTasks(kept); err != nil {
		return err
	}

	if s.remote.IsConfigured() {
		mirror("deleteTask", s.remote.DeleteByID(ctx, TableTasks, id))
	}
	return nil
}

func applyUpdate(task *model.Task, u model.TaskUpdate) {
	if u.Title != nil {
		task.Title = *u.Title
	}
	if u.Description != nil {
		task.Description = *u.Description
	}
	if u.AssigneeID != nil {
		task.AssigneeID = *u.AssigneeID
	}
	if u.IsCompleted != nil {
		task.IsCompleted = *u.IsCompleted
	}
	if u.Priority != nil {
		task.Priority = *u.Priority
	}
	if u.DueDate != nil {
		task.DueDate = *u.DueDate
	}
	if u.TargetDivision != nil {
		task.TargetDivision = *u.TargetDivision
	}
	if u.ReminderAt != nil {
		task.ReminderAt = u.ReminderAt
	}
	if u.Reminded != nil {
		task.Reminded = *u.Reminded
	}
	if u.AttachmentURL != nil {
		task.AttachmentURL = *u.AttachmentURL
	}
	if u.Subtasks != nil {
		task.Subtasks = *u.Subtasks
	}
}
