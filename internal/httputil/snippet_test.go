package httputil

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestReadSnippetEmpty(t *testing.T) {
	got := ReadSnippet(strings.NewReader(""))
	if got != "(empty body)" {
		t.Errorf("got %q, want %q", got, "(empty body)")
	}
}

func TestReadSnippetShort(t *testing.T) {
	got := ReadSnippet(strings.NewReader("hello"))
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestReadSnippetTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := ReadSnippet(strings.NewReader(long))
	if !strings.HasSuffix(got, "...") {
		t.Error("expected trailing ellipsis for long input")
	}
	if len(got) != 203 { // 200 bytes + "..."
		t.Errorf("got length %d, want 203", len(got))
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code    int
		body    string
		wantErr string
	}{
		{200, "", ""},
		{204, "", ""},
		{299, "", ""},
		{301, "moved", "hook returned 301: moved"},
		{404, "", "hook returned 404: (empty body)"},
		{503, "busy", "hook returned 503: busy"},
	}
	for _, tt := range tests {
		resp := &http.Response{StatusCode: tt.code, Body: io.NopCloser(strings.NewReader(tt.body))}
		err := CheckStatus(resp, "hook")
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%d: unexpected error %v", tt.code, err)
			}
			continue
		}
		if err == nil || err.Error() != tt.wantErr {
			t.Errorf("%d: err = %v, want %q", tt.code, err, tt.wantErr)
		}
	}
}
