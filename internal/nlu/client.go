// internal/nlu/client.go

// Package nlu relays free-text user messages to the NLU runtime. The edge
// never interprets text itself; intent classification and slot elicitation
// prompts belong to the runtime.
package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dining-concierge/internal/common/errors"
	commonhttp "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
)

// fallbackReply is returned when the runtime answers without any message.
const fallbackReply = "Sorry, I didn't get your message."

// Config identifies the bot to relay to.
type Config struct {
	BaseURL   string
	BotID     string
	BotAlias  string
	LocaleID  string
	AuthToken string
	Timeout   time.Duration
}

// Recognition is the runtime's answer for one utterance.
type Recognition struct {
	IntentName string
	Messages   []string
}

type Client struct {
	config Config
	http   *commonhttp.Client
	logger logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	return &Client{
		config: cfg,
		http:   commonhttp.NewClient(cfg.Timeout),
		logger: log,
	}
}

type recognizeRequest struct {
	Text string `json:"text"`
}

type recognizeResponse struct {
	SessionState struct {
		Intent struct {
			Name string `json:"name"`
		} `json:"intent"`
	} `json:"sessionState"`
	Messages []struct {
		Content string `json:"content"`
	} `json:"messages"`
}

// RecognizeText relays one utterance under the given session and returns the
// runtime's reply messages. An unreachable runtime is a retryable error; an
// empty reply set degrades to the fallback line.
func (c *Client) RecognizeText(ctx context.Context, sessionID, text string) (*Recognition, error) {
	url := fmt.Sprintf("%s/bots/%s/botAliases/%s/botLocales/%s/sessions/%s/text",
		c.config.BaseURL, c.config.BotID, c.config.BotAlias, c.config.LocaleID, sessionID)

	body, err := json.Marshal(recognizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode recognize request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewNLUUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNLUUnavailableError(fmt.Errorf("runtime returned %s", resp.Status))
	}

	var parsed recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.NewNLUUnavailableError(fmt.Errorf("decode runtime response: %w", err))
	}

	messages := make([]string, 0, len(parsed.Messages))
	for _, m := range parsed.Messages {
		messages = append(messages, m.Content)
	}
	if len(messages) == 0 {
		c.logger.Warn("runtime replied without messages", map[string]interface{}{
			"session_id": sessionID,
		})
		messages = []string{fallbackReply}
	}

	return &Recognition{
		IntentName: parsed.SessionState.Intent.Name,
		Messages:   messages,
	}, nil
}
