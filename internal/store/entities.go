package store

import "github.com/stitbu/satupintu/internal/model"

// Getters never return a nil slice for a missing bucket, so callers serialize
// an empty list rather than null regardless of which backend answered.

func (s *Store) GetTasks() ([]model.Task, error) {
	var tasks []model.Task
	if err := s.GetBucket(BucketTasks, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *Store) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return s.SaveBucket(BucketTasks, tasks)
}

func (s *Store) GetMessages() ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := s.GetBucket(BucketMessages, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return messages, nil
}

func (s *Store) SaveMessages(messages []model.ChatMessage) error {
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return s.SaveBucket(BucketMessages, messages)
}

func (s *Store) GetGroups() ([]model.ChatGroup, error) {
	var groups []model.ChatGroup
	if err := s.GetBucket(BucketGroups, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []model.ChatGroup{}
	}
	return groups, nil
}

func (s *Store) SaveGroups(groups []model.ChatGroup) error {
	if groups == nil {
		groups = []model.ChatGroup{}
	}
	return s.SaveBucket(BucketGroups, groups)
}

func (s *Store) GetUsers() ([]model.User, error) {
	var users []model.User
	if err := s.GetBucket(BucketUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *Store) SaveUsers(users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	return s.SaveBucket(BucketUsers, users)
}

// GetPreferences returns the stored preferences, or sensible defaults when
// none have been saved yet.
func (s *Store) GetPreferences() (model.UserPreferences, error) {
	prefs := model.UserPreferences{
		Theme:         "light",
		Notifications: true,
		Language:      "id",
	}
	if err := s.GetBucket(BucketPreferences, &prefs); err != nil {
		return model.UserPreferences{}, err
	}
	return prefs, nil
}

func (s *Store) SavePreferences(prefs model.UserPreferences) error {
	return s.SaveBucket(BucketPreferences, prefs)
}

func (s *Store) GetActivityLog() ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	if err := s.GetBucket(BucketActivityLog, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	return entries, nil
}

func (s *Store) SaveActivityLog(entries []model.ActivityLog) error {
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	return s.SaveBucket(BucketActivityLog, entries)
}
