// Package gateway talks to the messaging backend over HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/config"
)

const (
	phoneNumbersPath = "/get-phone-numbers"
	sendMessagePath  = "/send-message"

	maxBody = 1 << 20
)

// Client is a thin JSON client for the two gateway endpoints.
type Client struct {
	Base string
	HTTP *http.Client
	Log  zerolog.Logger
}

// New builds a client from config. A zero timeout keeps the transport default.
func New(cfg config.GatewayConfig, log zerolog.Logger) *Client {
	return &Client{
		Base: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Log:  log.With().Str("component", "gateway").Logger(),
	}
}

// ListPhoneNumbers returns the sender numbers in backend order.
func (c *Client) ListPhoneNumbers(ctx context.Context) ([]string, error) {
	var out phoneNumbersResponse
	if err := c.do(ctx, "list phone numbers", http.MethodGet, phoneNumbersPath, nil, &out.envelope, &out); err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(out.PhoneNumbers))
	for _, p := range out.PhoneNumbers {
		numbers = append(numbers, p.PhoneNumber)
	}
	c.Log.Debug().Int("count", len(numbers)).Msg("phone numbers listed")
	return numbers, nil
}

// SendMessage posts one payload. It never retries.
func (c *Client) SendMessage(ctx context.Context, p compose.Payload) error {
	c.Log.Debug().
		Str("from", p.FromPhoneNumber).
		Str("to", p.ToPhoneNumber).
		Str("message_type", p.MessageType).
		Str("selected_option", p.SelectedOption).
		Msg("sending message")

	var out sendMessageResponse
	if err := c.do(ctx, "send message", http.MethodPost, sendMessagePath, p, &out.envelope, &out); err != nil {
		return err
	}
	c.Log.Debug().Str("to", p.ToPhoneNumber).Msg("message accepted")
	return nil
}

// do performs one request and decodes the envelope. A body that parses as an
// envelope decides the result even on non-2xx statuses.
func (c *Client) do(ctx context.Context, op, method, path string, in any, env *envelope, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s: %w", op, err)
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warn().Err(err).Str("op", op).Msg("gateway unreachable")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil || env.Success == nil {
		if err == nil {
			err = errors.New("response has no success field")
		}
		if resp.StatusCode/100 != 2 {
			err = errors.New(resp.Status)
		}
		c.Log.Warn().Err(err).Str("op", op).Int("status", resp.StatusCode).Msg("unreadable gateway response")
		return &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if !env.ok() {
		c.Log.Warn().Str("op", op).Str("reason", env.Error).Msg("gateway rejected request")
		return &RejectionError{Op: op, Reason: env.Error}
	}
	return nil
}
