package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/conowcast/nowcast/internal/logger"
	"github.com/conowcast/nowcast/internal/retry"
)

const telegramMessageLimit = 4096

// TelegramSender posts messages to a Telegram chat or channel via the
// Bot API.
type TelegramSender struct {
	token      string
	chatID     string
	httpClient *http.Client
	apiBase    string
}

func NewTelegramSender(token, chatID string) *TelegramSender {
	return &TelegramSender{
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    "https://api.telegram.org",
	}
}

// Send delivers text as one or more messages, splitting on the Bot API
// length limit. Parse mode is HTML.
func (t *TelegramSender) Send(ctx context.Context, text string) error {
	for _, chunk := range splitMessage(text, telegramMessageLimit) {
		err := retry.Do(ctx, retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true}, func() error {
			return t.sendOnce(ctx, chunk)
		})
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	logger.Info("telegram message sent", "chat_id", t.chatID, "length", len(text))
	return nil
}

func (t *TelegramSender) sendOnce(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)

	payload := map[string]interface{}{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API error: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit characters,
// breaking on newlines when possible. The Bot API limit counts
// characters, so indexing is by rune to never cut inside one.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
