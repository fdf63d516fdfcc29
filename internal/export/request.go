package export

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Mavwarf/moonicon/internal/icon"
	"github.com/Mavwarf/moonicon/internal/paths"
)

// Request is one icon file rendered outside the set tables.
type Request struct {
	Kind icon.Kind
	Size int
	Out  string
}

// ParseRequest reads <kind> <size> <out.png> from command-line arguments.
func ParseRequest(args []string) (Request, error) {
	if len(args) != 3 {
		return Request{}, errors.New("expected <kind> <size> <out.png>")
	}
	kind, err := icon.ParseKind(args[0])
	if err != nil {
		return Request{}, err
	}
	size, err := ParseSize(args[1])
	if err != nil {
		return Request{}, err
	}
	return Request{Kind: kind, Size: size, Out: args[2]}, nil
}

// ParseSize accepts a positive pixel count.
func ParseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("size must be a positive integer, got %q", s)
	}
	return n, nil
}

// Write renders the icon and writes it atomically to r.Out. It returns the
// encoded size in bytes.
func (r Request) Write() (int, error) {
	data, err := EncodePNG(r.Kind, r.Size)
	if err != nil {
		return 0, err
	}
	if err := paths.AtomicWrite(r.Out, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
