package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CommandHandler is called when a user command is received. A non-empty
// reply is sent back to the chat.
type CommandHandler func(ctx context.Context, command string) string

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string       `json:"text"`
		Chat telegramChat `json:"chat"`
	} `json:"message"`
}

type telegramChat struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// fromChat reports whether chat is the configured chat, given either as a
// numeric id or as an @username.
func (t *TelegramNotifier) fromChat(chat telegramChat) bool {
	want := strings.TrimSpace(t.ChatID)
	if strings.HasPrefix(want, "@") {
		return chat.Username != "" && strings.EqualFold(want[1:], chat.Username)
	}
	return want == strconv.FormatInt(chat.ID, 10)
}

// StartPolling begins long-polling for Telegram commands. Only messages from
// the configured chat are dispatched. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	pause := func() bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(5 * time.Second):
			return true
		}
	}

	for {
		select {
		case <-ctx.Done():
			t.log.Info().Msg("telegram polling stopped")
			return
		default:
		}

		apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.endpoint("getUpdates"), offset)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			t.log.Error().Err(err).Msg("create polling request")
			if !pause() {
				return
			}
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.log.Warn().Err(err).Msg("polling request failed")
			if !pause() {
				return
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.log.Warn().Err(err).Msg("read polling response")
			continue
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			t.log.Warn().Err(err).Msg("decode polling response")
			if !pause() {
				return
			}
			continue
		}

		for _, update := range result.Result {
			offset = update.UpdateID + 1
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			if !t.fromChat(update.Message.Chat) {
				t.log.Debug().Int64("chat_id", update.Message.Chat.ID).Msg("ignoring update from another chat")
				continue
			}
			text := strings.TrimSpace(update.Message.Text)
			t.log.Info().Str("command", text).Msg("received command")
			if reply := handler(ctx, text); reply != "" {
				if err := t.Send(ctx, reply); err != nil {
					t.log.Error().Err(err).Msg("send reply")
				}
			}
		}
	}
}
