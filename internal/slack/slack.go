package slack

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Mavwarf/moonicon/internal/httputil"
)

// Message is a headline plus a coloured attachment with the details.
type Message struct {
	Text   string
	Detail string
	Failed bool
}

type attachment struct {
	Color string `json:"color"`
	Text  string `json:"text"`
}

type payload struct {
	Text        string       `json:"text"`
	Attachments []attachment `json:"attachments,omitempty"`
}

// Send posts m to a Slack channel via incoming webhook URL.
func Send(webhookURL string, m Message) error {
	p := payload{Text: m.Text}
	if m.Detail != "" {
		color := "good"
		if m.Failed {
			color = "danger"
		}
		p.Attachments = []attachment{{Color: color, Text: m.Detail}}
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("slack: marshal: %w", err)
	}

	resp, err := httputil.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "slack: webhook")
}
