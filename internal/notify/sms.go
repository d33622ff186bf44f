package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSService sends text messages through the Africa's Talking messaging API,
// the same gateway that delivers the USSD dialogue.
type SMSService struct {
	client   *http.Client
	baseURL  string
	username string
	apiKey   string
	enabled  bool
}

// NewSMSService creates a new SMS service. If credentials are missing the
// service is disabled: sends are logged and skipped instead of failing.
func NewSMSService(baseURL, username, apiKey string) *SMSService {
	if username == "" || apiKey == "" {
		log.Println("SMS service disabled: AT_USERNAME or AT_API_KEY not configured")
		return &SMSService{enabled: false}
	}

	log.Printf("SMS service enabled: username=%s", username)
	return &SMSService{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		apiKey:   apiKey,
		enabled:  true,
	}
}

// IsEnabled returns whether the SMS service is enabled.
func (s *SMSService) IsEnabled() bool {
	return s.enabled
}

// smsResponse is the subset of the gateway response we care about.
type smsResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			Number string `json:"number"`
			Status string `json:"status"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Send delivers one message to one phone number.
func (s *SMSService) Send(ctx context.Context, phone, message string) error {
	if !s.enabled {
		log.Printf("Skipping SMS send (service disabled): to=%s", phone)
		return nil
	}

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", phone)
	form.Set("message", message)

	endpoint := s.baseURL + "/version1/messaging"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", phone, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed smsResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.SMSMessageData.Recipients) > 0 {
		log.Printf("SMS sent: to=%s, status=%s", phone, parsed.SMSMessageData.Recipients[0].Status)
	} else {
		log.Printf("SMS sent: to=%s", phone)
	}

	return nil
}
