package telegram

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Mavwarf/moonicon/internal/httputil"
)

// Send posts a message to a Telegram chat via the Bot API. A quiet
// message is delivered without a notification sound.
func Send(token, chatID, message string, quiet bool) error {
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	return sendTo(endpoint, chatID, message, quiet)
}

// sendTo posts a message to the given endpoint. Extracted for testing.
func sendTo(endpoint, chatID, message string, quiet bool) error {
	resp, err := httputil.PostForm(endpoint, url.Values{
		"chat_id":              {chatID},
		"text":                 {message},
		"disable_notification": {strconv.FormatBool(quiet)},
	})
	if err != nil {
		// The error text embeds the URL, which carries the bot token.
		return fmt.Errorf("telegram: post: %w", redact(err))
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "telegram: API")
}

// redact drops the request URL from a *url.Error.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
