// Package export writes the icon assets of a Flutter project: fixed tables
// of sizes and paths for the iOS and Android trees, rendered with package
// icon and written atomically below a project root.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/png"
	"path/filepath"
	"time"

	"github.com/Mavwarf/moonicon/internal/icon"
	"github.com/Mavwarf/moonicon/internal/paths"
)

// Item is one planned output: a PNG entry or, when Manifest is set, a
// Contents.json.
type Item struct {
	Set      string
	Kind     icon.Kind
	Size     int
	Path     string
	Manifest *Manifest
}

// Plan flattens sets into the ordered list of files Run will write. Each
// set's entries come first, then its manifest.
func Plan(sets []Set) []Item {
	var items []Item
	for _, s := range sets {
		for _, e := range s.Entries {
			items = append(items, Item{Set: s.Name, Kind: s.Kind, Size: e.Size, Path: e.Path})
		}
		if s.Manifest != nil {
			items = append(items, Item{Set: s.Name, Path: s.Manifest.Path, Manifest: s.Manifest})
		}
	}
	return items
}

// Options controls Run.
type Options struct {
	DryRun   bool       // plan only; nothing is rendered or written
	Progress func(File) // called after each file, may be nil
}

// File describes one file produced by Run. Bytes and SHA256 are zero in a
// dry run.
type File struct {
	Set    string
	Path   string // relative to Result.Root, forward slashes
	Size   int    // icon edge in pixels, 0 for manifests
	Bytes  int
	SHA256 string
}

// Result summarises a run, complete or not.
type Result struct {
	Root    string
	Files   []File
	Started time.Time
	Elapsed time.Duration
}

type renderKey struct {
	kind icon.Kind
	size int
}

// Run renders and writes every planned item below root, in plan order.
// The first failure stops the run; the returned Result then holds the files
// written so far. Nothing already written is removed.
func Run(root string, sets []Set, opts Options) (Result, error) {
	res := Result{Root: root, Started: time.Now()}
	err := run(&res, sets, opts)
	res.Elapsed = time.Since(res.Started)
	return res, err
}

func run(res *Result, sets []Set, opts Options) error {
	encoded := make(map[renderKey][]byte)

	for _, it := range Plan(sets) {
		f := File{Set: it.Set, Path: it.Path, Size: it.Size}

		if !opts.DryRun {
			data, err := itemBytes(it, encoded)
			if err != nil {
				return err
			}
			dst := filepath.Join(res.Root, filepath.FromSlash(it.Path))
			if err := paths.AtomicWrite(dst, data); err != nil {
				return fmt.Errorf("export: write %s: %w", it.Path, err)
			}
			sum := sha256.Sum256(data)
			f.Bytes = len(data)
			f.SHA256 = hex.EncodeToString(sum[:])
		}

		res.Files = append(res.Files, f)
		if opts.Progress != nil {
			opts.Progress(f)
		}
	}
	return nil
}

// itemBytes returns the file content for it. PNGs are rendered once per
// kind and size within a run; several entries share a size.
func itemBytes(it Item, encoded map[renderKey][]byte) ([]byte, error) {
	if it.Manifest != nil {
		return it.Manifest.JSON()
	}
	key := renderKey{it.Kind, it.Size}
	if data, ok := encoded[key]; ok {
		return data, nil
	}
	data, err := EncodePNG(it.Kind, it.Size)
	if err != nil {
		return nil, err
	}
	encoded[key] = data
	return data, nil
}

// EncodePNG renders an icon and returns it PNG-encoded.
func EncodePNG(kind icon.Kind, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("export: invalid size %d for %s icon", size, kind)
	}
	img, err := icon.Render(kind, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("export: encode %s %d: %w", kind, size, err)
	}
	return buf.Bytes(), nil
}

// Count returns the number of PNG entries and manifests in sets.
func Count(sets []Set) (pngs, manifests int) {
	for _, s := range sets {
		pngs += len(s.Entries)
		if s.Manifest != nil {
			manifests++
		}
	}
	return pngs, manifests
}
