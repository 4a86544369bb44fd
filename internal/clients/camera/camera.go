package cameraclient

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/config"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
)

const defaultContentType = "video/mp4"

// Client pulls clip streams from capture sources. The source address is
// derived from the report location: http://{location}.{hostSuffix}/videos.
type Client struct {
	httpClient  *http.Client
	hostSuffix  string
	clipSeconds int
}

func New(cfg config.Capture) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		hostSuffix:  cfg.HostSuffix,
		clipSeconds: cfg.ClipSeconds,
	}
}

// Fetch opens a clip stream from the source at location. The whole
// exchange, connect through the final body byte, is bounded by the
// configured capture timeout. The caller owns closing the stream.
func (c *Client) Fetch(location string) (io.ReadCloser, string, error) {
	const op = "clients.camera.Fetch"

	captureURL := fmt.Sprintf("http://%s.%s/videos?time=%d", location, c.hostSuffix, c.clipSeconds)

	resp, err := c.httpClient.Get(captureURL)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w: %s: %v", op, errs.ErrCaptureUnavailable, captureURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()

		return nil, "", fmt.Errorf("%s: %w: %s returned %s", op, errs.ErrCaptureUnavailable, captureURL, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return resp.Body, contentType, nil
}
