package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/persoshop/persoshop-api/internal/core/domain"
)

// HTTPFeed implements Feed against the notifications API. The rolling
// session token returned in the X-Session-Token response header is
// forwarded to OnRefresh so callers can persist it.
type HTTPFeed struct {
	baseURL string
	client  *http.Client
	session func() string
	// OnRefresh, when set, receives each refreshed session token.
	OnRefresh func(token string)
}

// NewHTTPFeed creates an HTTPFeed for the API at baseURL. session
// reports the current session token per request.
func NewHTTPFeed(baseURL string, session func() string) *HTTPFeed {
	return &HTTPFeed{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
}

type feedResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}

// Fetch retrieves the requester's feed, newest first.
func (f *HTTPFeed) Fetch(ctx context.Context) ([]*domain.Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/notifications", nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.session())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	if refreshed := resp.Header.Get("X-Session-Token"); refreshed != "" && f.OnRefresh != nil {
		f.OnRefresh(refreshed)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	return body.Notifications, nil
}
