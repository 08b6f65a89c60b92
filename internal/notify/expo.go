package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"belakoo-backend-go/internal/logger"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

const DefaultExpoHost = "https://exp.host"

type ExpoConfig struct {
	Host        string
	AccessToken string
	Timeout     time.Duration
}

type ExpoClient struct {
	log    *logger.Logger
	client *expo.PushClient
}

func NewExpo(log *logger.Logger, cfg ExpoConfig) (*ExpoClient, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Host) == "" {
		cfg.Host = DefaultExpoHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.AccessToken != "" {
		httpClient.Transport = bearerTransport{token: cfg.AccessToken, next: http.DefaultTransport}
	}
	return &ExpoClient{
		log: log.With("client", "ExpoPushClient"),
		client: expo.NewPushClient(&expo.ClientConfig{
			Host:       strings.TrimRight(cfg.Host, "/"),
			HTTPClient: httpClient,
		}),
	}, nil
}

// bearerTransport adds the Expo access token to every push request.
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.next.RoundTrip(req)
}

// Notify publishes one message. The SDK has no context support, so ctx only
// short-circuits a cancelled caller.
func (c *ExpoClient) Notify(ctx context.Context, n Notification) error {
	if strings.TrimSpace(n.Token) == "" {
		return errors.New("push token required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	token, err := expo.NewExponentPushToken(n.Token)
	if err != nil {
		return fmt.Errorf("expo push: %w", err)
	}
	resp, err := c.client.Publish(&expo.PushMessage{
		To:    []expo.ExponentPushToken{token},
		Title: n.Title,
		Body:  n.Body,
		Data:  stringData(n.Data),
		Sound: "default",
	})
	if err != nil {
		return fmt.Errorf("expo push: %w", err)
	}
	if err := resp.ValidateResponse(); err != nil {
		return fmt.Errorf("expo push: %w", err)
	}
	c.log.Debug("push sent", "user_id", n.UserID, "ticket", resp.ID)
	return nil
}

func stringData(data map[string]any) map[string]string {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out
}
