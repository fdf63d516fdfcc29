package discord

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Mavwarf/moonicon/internal/httputil"
)

// Embed colours.
const (
	ColorOK     = 0x2ECC71
	ColorFailed = 0xE74C3C
	ColorDryRun = 0x3498DB
)

// Embed is a Discord rich embed.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
}

type payload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Send posts content and an optional embed to a Discord channel via
// webhook URL.
func Send(webhookURL, content string, embed *Embed) error {
	p := payload{Content: content}
	if embed != nil {
		p.Embeds = []Embed{*embed}
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("discord: marshal: %w", err)
	}

	resp, err := httputil.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "discord: webhook")
}
