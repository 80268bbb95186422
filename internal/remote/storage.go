package remote

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttachmentBucket is the public-read bucket holding task attachments.
const AttachmentBucket = "attachments"

// ObjectName builds a collision-resistant object name for an uploaded file,
// preserving the original extension.
func ObjectName(originalName string) string {
	ext := path.Ext(originalName)
	token := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), token, ext)
}

// Upload stores data under the attachment bucket and returns the durable
// public URL for the object.
func (c *Client) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectPath := "/storage/v1/object/" + AttachmentBucket + "/" + objectName
	if _, err := c.do(ctx, http.MethodPost, objectPath, data, contentType); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	params := c.snapshot()
	return params.URL + "/storage/v1/object/public/" + AttachmentBucket + "/" + objectName, nil
}
