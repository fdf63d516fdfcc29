// mkicon renders a single icon PNG, the same way as `moonicon render`
// but without config or history.
// Usage: go run ./cmd/mkicon <app|notification> <size> <output.png>
package main

import (
	"fmt"
	"os"

	"github.com/Mavwarf/moonicon/internal/export"
)

const usage = "Usage: mkicon <app|notification> <size> <output.png>"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatal(err)
	}
}

func run(args []string) error {
	req, err := export.ParseRequest(args)
	if err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}
	_, err = req.Write()
	return err
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
