// Package publish fans a run summary out to the configured webhook, MQTT
// and chat targets.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Mavwarf/moonicon/internal/config"
	"github.com/Mavwarf/moonicon/internal/discord"
	"github.com/Mavwarf/moonicon/internal/eventlog"
	"github.com/Mavwarf/moonicon/internal/mqtt"
	"github.com/Mavwarf/moonicon/internal/slack"
	"github.com/Mavwarf/moonicon/internal/telegram"
	"github.com/Mavwarf/moonicon/internal/webhook"
)

// Summary is the JSON document sent after an export run.
type Summary struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version"`
	Root      string   `json:"root"`
	Sets      []string `json:"sets"`
	Files     int      `json:"files"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

// NewSummary builds the summary for a ledger record.
func NewSummary(version string, r eventlog.Run) Summary {
	sets := r.Sets
	if sets == nil {
		sets = []string{}
	}
	return Summary{
		Tool:      "moonicon",
		Version:   version,
		Root:      r.Root,
		Sets:      sets,
		Files:     r.FileCount,
		Status:    r.Status,
		Error:     r.Error,
		ElapsedMS: r.Elapsed.Milliseconds(),
	}
}

// Text is the one-line chat message for s.
func (s Summary) Text() string {
	switch s.Status {
	case eventlog.StatusFailed:
		return fmt.Sprintf("moonicon %s: export failed in %s after %d files", s.Version, s.Root, s.Files)
	case eventlog.StatusDryRun:
		return fmt.Sprintf("moonicon %s: dry run planned %d files in %s", s.Version, s.Files, s.Root)
	}
	return fmt.Sprintf("moonicon %s: exported %d files to %s", s.Version, s.Files, s.Root)
}

// Detail lists the sets, the elapsed time and the error, one per line.
func (s Summary) Detail() string {
	lines := []string{
		"sets: " + strings.Join(s.Sets, ", "),
		"elapsed: " + (time.Duration(s.ElapsedMS) * time.Millisecond).String(),
	}
	if s.Error != "" {
		lines = append(lines, "error: "+s.Error)
	}
	return strings.Join(lines, "\n")
}

// Enabled reports whether any target is configured.
func Enabled(p config.Publish) bool {
	return p.Webhook != nil || p.MQTT != nil || p.Slack != nil || p.Discord != nil || p.Telegram != nil
}

// Send delivers s to every configured target concurrently and returns the
// joined errors of the targets that failed.
func Send(p config.Publish, s Summary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("publish: encode summary: %w", err)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fire := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	if w := p.Webhook; w != nil {
		fire(func() error { return webhook.Send(w.URL, payload, w.Headers) })
	}
	if m := p.MQTT; m != nil {
		fire(func() error { return mqtt.Publish(Target(*m), payload) })
	}
	if c := p.Slack; c != nil {
		msg := slack.Message{Text: s.Text(), Detail: s.Detail(), Failed: s.Status == eventlog.StatusFailed}
		fire(func() error { return slack.Send(os.ExpandEnv(c.WebhookURL), msg) })
	}
	if c := p.Discord; c != nil {
		embed := &discord.Embed{Title: "moonicon " + s.Status, Description: s.Detail(), Color: embedColor(s.Status)}
		fire(func() error { return discord.Send(os.ExpandEnv(c.WebhookURL), s.Text(), embed) })
	}
	if tg := p.Telegram; tg != nil {
		text := s.Text() + "\n" + s.Detail()
		quiet := s.Status != eventlog.StatusFailed
		fire(func() error { return telegram.Send(os.ExpandEnv(tg.Token), os.ExpandEnv(tg.ChatID), text, quiet) })
	}
	wg.Wait()
	return errors.Join(errs...)
}

func embedColor(status string) int {
	switch status {
	case eventlog.StatusFailed:
		return discord.ColorFailed
	case eventlog.StatusDryRun:
		return discord.ColorDryRun
	}
	return discord.ColorOK
}

// Target converts an MQTT config block to a publish target.
func Target(m config.MQTTConfig) mqtt.Target {
	return mqtt.Target{
		Broker:   m.Broker,
		Topic:    m.Topic,
		ClientID: m.ClientID,
		QoS:      byte(m.QoS),
		Retain:   m.Retain,
		Username: m.Username,
		Password: m.Password,
	}
}
