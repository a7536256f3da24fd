package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"event-slot-wizard/internal/wizard"
)

const slotsPath = "/events/slots"

// EventsAPI 外部活動 API，送出時段規劃
type EventsAPI interface {
	SubmitSlots(ctx context.Context, payload wizard.Payload) error
}

type EventsAPIClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewEventsAPIClient(baseURL, token string, timeout time.Duration) *EventsAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EventsAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError 外部 API 錯誤回應，兩種欄位名稱都可能出現
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// UpstreamError 非 2xx 回應
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("events api responded %d: %s", e.StatusCode, e.Message)
}

func (c *EventsAPIClient) SubmitSlots(ctx context.Context, payload wizard.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+slotsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", slotsPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var apiErr apiError
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &apiErr) == nil {
		switch {
		case apiErr.Message != "":
			msg = apiErr.Message
		case apiErr.Error != "":
			msg = apiErr.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
}
