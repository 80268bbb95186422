package data

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stitbu/satupintu/internal/model"
)

// Users are sourced from the local store only; there is no remote sync for
// the user directory.

func (s *Service) Users() ([]model.User, error) {
	return s.local.GetUsers()
}

// UserByUsername returns nil when no such user exists.
func (s *Service) UserByUsername(username string) (*model.User, error) {
	users, err := s.local.GetUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *Service) UserByID(id string) (*model.User, error) {
	users, err := s.local.GetUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *Service) CreateUser(user model.User) (model.User, error) {
	existing, err := s.UserByUsername(user.Username)
	if err != nil {
		return model.User{}, err
	}
	if existing != nil {
		return model.User{}, fmt.Errorf("username %s is taken", user.Username)
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.RoleStaff
	}

	users, err := s.local.GetUsers()
	if err != nil {
		return model.User{}, err
	}
	users = append(users, user)
	if err := s.local.SaveUsers(users); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateStickyNote replaces the user's free-text note. Unknown ids are a
// no-op.
func (s *Service) UpdateStickyNote(id, note string) error {
	users, err := s.local.GetUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].StickyNote = note
			return s.local.SaveUsers(users)
		}
	}
	return nil
}

func (s *Service) Preferences() (model.UserPreferences, error) {
	return s.local.GetPreferences()
}

func (s *Service) SavePreferences(prefs model.UserPreferences) error {
	return s.local.SavePreferences(prefs)
}
