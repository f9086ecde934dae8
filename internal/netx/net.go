// Package netx holds small HTTP helpers used next to the gRPC client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient is replaced in tests.
var HTTPClient = &http.Client{}

// UploadToPresignedURL streams body to a presigned PUT URL. size is sent
// as Content-Length; S3 rejects chunked uploads to presigned URLs.
func UploadToPresignedURL(ctx context.Context, url, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
