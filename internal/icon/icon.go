// Package icon draws the app and notification icons procedurally. Both
// renderers are pure functions of the icon edge length.
package icon

import (
	"fmt"
	"image"
	"strings"
)

// Kind names one of the icon renderers.
type Kind string

const (
	KindApp          Kind = "app"
	KindNotification Kind = "notification"
)

// Kinds lists every renderer in a stable order.
func Kinds() []Kind {
	return []Kind{KindApp, KindNotification}
}

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindApp, KindNotification:
		return k, nil
	}
	return "", fmt.Errorf("unknown icon kind %q (want app or notification)", s)
}

// Render draws the icon of kind k at size×size pixels.
func Render(k Kind, size int) (*image.RGBA, error) {
	var (
		img *image.RGBA
		err error
	)
	switch k {
	case KindApp:
		img, err = drawApp(size)
	case KindNotification:
		img, err = drawNotification(size)
	default:
		return nil, fmt.Errorf("icon: unknown kind %q", k)
	}
	if err != nil {
		return nil, fmt.Errorf("icon: render %s %d: %w", k, size, err)
	}
	return img, nil
}

func must(img *image.RGBA, err error) *image.RGBA {
	if err != nil {
		panic(fmt.Sprintf("icon: %v", err))
	}
	return img
}
