package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultSMSBaseURL = "https://api.twilio.com"

// SMSClient sends text messages through the Twilio Messages REST API.
type SMSClient struct {
	AccountSID string
	AuthToken  string
	From       string // sender number in E.164
	DryRun     bool   // log instead of sending

	BaseURL    string
	HTTPClient *http.Client
	Log        *logrus.Logger
}

type SendSMSResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type smsAPIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

func NewSMSClient(accountSID, authToken, from string, opts ...func(*SMSClient)) *SMSClient {
	c := &SMSClient{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		BaseURL:    defaultSMSBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithSMSBaseURL(baseURL string) func(*SMSClient) {
	return func(c *SMSClient) {
		if strings.TrimSpace(baseURL) != "" {
			c.BaseURL = baseURL
		}
	}
}

func WithSMSDryRun(dryRun bool) func(*SMSClient) {
	return func(c *SMSClient) { c.DryRun = dryRun }
}

func WithSMSLogger(log *logrus.Logger) func(*SMSClient) {
	return func(c *SMSClient) {
		if log != nil {
			c.Log = log
		}
	}
}

// Configured reports whether credentials and a sender are present.
func (c *SMSClient) Configured() bool {
	return c != nil &&
		strings.TrimSpace(c.AccountSID) != "" &&
		strings.TrimSpace(c.AuthToken) != "" &&
		strings.TrimSpace(c.From) != ""
}

// SendSMS sends text to the E.164 number `to`, or only logs it in dry-run mode.
func (c *SMSClient) SendSMS(ctx context.Context, to, text string) (*SendSMSResponse, error) {
	if c.DryRun {
		c.Log.WithFields(logrus.Fields{"to": to, "from": c.From}).Infof("[sms][dry-run] text=%q", text)
		return &SendSMSResponse{Status: "dry-run"}, nil
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(c.BaseURL, "/"), url.PathEscape(c.AccountSID))

	form := url.Values{
		"To":   {to},
		"From": {c.From},
		"Body": {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build SMS request: %w", err)
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode/100 != 2 {
		var apiErr smsAPIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("sms provider returned %d: code=%d %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	var result SendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
