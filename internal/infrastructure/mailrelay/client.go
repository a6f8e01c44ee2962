// Package mailrelay sends transactional mail through the external HTTP
// relay. The relay owns SMTP delivery; this client only POSTs the message.
package mailrelay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"stockbook/internal/domain/auth"
)

// Compile-time check that Client implements auth.Mailer.
var _ auth.Mailer = (*Client)(nil)

// Client is a resty-backed mail relay client.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a relay client for the given endpoint and API key.
func NewClient(baseURL, apiKey string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// sendRequest is the relay's message payload.
type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// apiError is the relay's error payload.
type apiError struct {
	Error string `json:"error"`
}

// Send posts one message to the relay.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(sendRequest{To: to, Subject: subject, HTML: htmlBody}).
		SetError(apiErr).
		Post("/send")
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("mail relay error: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}

	return nil
}
