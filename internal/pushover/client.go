package pushover

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const apiURL = "https://api.pushover.net/1/messages.json"

// Client sends plain text push notifications through the Pushover API. It is
// used as a fire-and-forget sink: callers log a failed push and move on.
type Client struct {
	token      string
	user       string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(token, user string, logger *zap.Logger) *Client {
	return &Client{
		token:  token,
		user:   user,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIURL: apiURL,
	}
}

// Push delivers one message. The API response body is not inspected beyond
// the status code; Pushover acks with 200 on accepted messages.
func (c *Client) Push(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errors.New("message must not be empty")
	}

	form := url.Values{}
	form.Set("token", c.token)
	form.Set("user", c.user)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug("pushing notification", zap.Int("message_length", len(message)))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return nil
}
