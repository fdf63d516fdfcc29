package webhook

import (
	"bytes"
	"fmt"
	"net/http"
	"os"

	"github.com/Mavwarf/moonicon/internal/httputil"
)

// Send posts body to url as application/json. Custom headers are applied
// after the default Content-Type, so callers can override it. Header values
// are expanded with os.ExpandEnv to support $VAR secrets.
func Send(url string, body []byte, headers map[string]string) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "moonicon")
	for k, v := range headers {
		req.Header.Set(k, os.ExpandEnv(v))
	}

	resp, err := httputil.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "webhook")
}
