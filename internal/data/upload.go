package data

import (
	"context"
	"fmt"

	"github.com/stitbu/satupintu/internal/remote"
)

// UploadAttachment stores a file in the remote bucket and returns its public
// URL. There is no local fallback for binary blobs: with the remote
// unconfigured or failing, the caller gets an error and must leave prior
// state unchanged.
func (s *Service) UploadAttachment(ctx context.Context, originalName string, content []byte, contentType string) (string, error) {
	if !s.remote.IsConfigured() {
		return "", remote.ErrNotConfigured
	}
	url, err := s.remote.Upload(ctx, remote.ObjectName(originalName), content, contentType)
	if err != nil {
		return "", fmt.Errorf("attachment upload failed: %w", err)
	}
	return url, nil
}
