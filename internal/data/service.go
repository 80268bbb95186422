// Package data is the unified access layer the rest of the portal calls.
// Every write lands on the local store first and is then best-effort mirrored
// to the remote backend; every read prefers the remote and falls back to the
// local copy on any failure. Nothing below this package is allowed to escape
// as an unhandled error.
package data

import (
	"errors"
	"log"
	"sync"

	"github.com/stitbu/satupintu/internal/remote"
	"github.com/stitbu/satupintu/internal/store"
)

// Remote table names.
const (
	TableTasks    = "tasks"
	TableMessages = "chat_messages"
	TableGroups   = "chat_groups"
)

// FetchKind classifies why the most recent read fell back to the local copy.
type FetchKind int

const (
	FetchRemote FetchKind = iota // remote read succeeded
	FetchUnconfigured
	FetchNetwork
	FetchDecode
	FetchLocalOnly // entity has no remote table
)

func (k FetchKind) String() string {
	switch k {
	case FetchRemote:
		return "remote"
	case FetchUnconfigured:
		return "unconfigured"
	case FetchNetwork:
		return "network"
	case FetchDecode:
		return "decode"
	case FetchLocalOnly:
		return "local-only"
	}
	return "unknown"
}

// Service mediates between the local store and the remote client.
type Service struct {
	local  *store.Store
	remote *remote.Client

	mu        sync.Mutex
	lastFetch FetchKind
}

func NewService(local *store.Store, remoteClient *remote.Client) *Service {
	return &Service{local: local, remote: remoteClient, lastFetch: FetchLocalOnly}
}

// LastFetch reports why the most recent read resolved the way it did, so
// callers and tests can distinguish "remote answered" from the fallback paths.
func (s *Service) LastFetch() FetchKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetch
}

func (s *Service) setFetch(kind FetchKind) {
	s.mu.Lock()
	s.lastFetch = kind
	s.mu.Unlock()
}

// RemoteGeneration increments whenever the remote connection is swapped.
// Long-lived subscribers compare it against the value they started with and
// resubscribe when it moves.
func (s *Service) RemoteGeneration() uint64 {
	return s.remote.Generation()
}

// classify maps a remote error onto the fetch taxonomy. Schema mismatches and
// connectivity failures are deliberately indistinguishable to callers.
func classify(err error) FetchKind {
	switch {
	case errors.Is(err, remote.ErrNotConfigured):
		return FetchUnconfigured
	case errors.Is(err, remote.ErrDecode):
		return FetchDecode
	default:
		return FetchNetwork
	}
}

// mirror logs a failed remote write and moves on. The write already succeeded
// locally, which is the durability contract.
func mirror(op string, err error) {
	if err != nil {
		log.Printf("Remote mirror failed for %s (local write kept): %v", op, err)
	}
}

// ReconfigureRemote swaps the active remote connection and persists the
// override so the next start picks it up. Empty parameters clear the override
// and revert to the built-in defaults on restart.
func (s *Service) ReconfigureRemote(params remote.Params) error {
	if params.URL == "" && params.AnonKey == "" {
		if err := s.local.DeleteSetting(store.SettingRemoteURL); err != nil {
			return err
		}
		if err := s.local.DeleteSetting(store.SettingRemoteKey); err != nil {
			return err
		}
	} else {
		if err := s.local.SetSetting(store.SettingRemoteURL, params.URL); err != nil {
			return err
		}
		if err := s.local.SetSetting(store.SettingRemoteKey, params.AnonKey); err != nil {
			return err
		}
	}
	s.remote.Reconfigure(params)
	return nil
}

// LoadRemoteOverride reads the persisted connection override; found is false
// when no override has been stored.
func LoadRemoteOverride(local *store.Store) (remote.Params, bool) {
	url, err := local.GetSetting(store.SettingRemoteURL)
	if err != nil || url == "" {
		return remote.Params{}, false
	}
	key, err := local.GetSetting(store.SettingRemoteKey)
	if err != nil || key == "" {
		return remote.Params{}, false
	}
	return remote.Params{URL: url, AnonKey: key}, true
}
