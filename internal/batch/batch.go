// Package batch converts a directory of saved embed snippets into
// rendered embed files.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/geoembed/geoembed/internal/embed"
	"github.com/geoembed/geoembed/internal/render"
)

// Options controls a batch run. Width and Height are the raw field values
// applied to every snippet and go through the same validation as the dialog.
type Options struct {
	Root        string
	OutDir      string // empty: write next to each snippet
	Extensions  []string
	OutputExt   string
	Format      string
	Width       string
	Height      string
	ShowToolbar bool
}

// Outcome describes what happened to one snippet file.
type Outcome struct {
	Path   string // relative to Options.Root
	Output string // path written, empty on failure
	Err    error
}

// Summary totals a batch run.
type Summary struct {
	Converted int
	Failed    int
	Outcomes  []Outcome
}

func (o Options) validate() error {
	if o.Root == "" {
		return errors.New("batch: root directory is required")
	}
	if len(o.Extensions) == 0 {
		return errors.New("batch: no snippet extensions configured")
	}
	if o.OutputExt == "" {
		return errors.New("batch: output extension is required")
	}
	if slices.Contains(o.Extensions, o.OutputExt) {
		return fmt.Errorf("batch: output extension %q would overwrite snippets", o.OutputExt)
	}
	if _, ok := render.Get(o.Format); !ok {
		return fmt.Errorf("batch: unknown format %q; valid formats: %s",
			o.Format, strings.Join(render.ValidFormats(), ", "))
	}
	return nil
}

// Discover lists snippet files under opts.Root, relative to it, in walk order.
func Discover(opts Options) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("batch: resolve root: %w", err)
	}
	outDir := ""
	if opts.OutDir != "" {
		outDir, _ = filepath.Abs(opts.OutDir)
	}
	ignore := NewIgnoreMatcher(root)

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if HardIgnore(d.Name()) || path == outDir || ignore.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(opts.Extensions, filepath.Ext(d.Name())) {
			return nil
		}
		if ignore.Match(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", root, err)
	}
	return files, nil
}

// Convert renders every file listed by Discover. A failing file is recorded
// in the summary and the run continues. A snippet whose output was already
// written earlier in the run fails instead of overwriting it. onFile, if
// set, is called after each file.
func Convert(opts Options, files []string, onFile func(Outcome)) (Summary, error) {
	if err := opts.validate(); err != nil {
		return Summary{}, err
	}
	renderer, _ := render.Get(opts.Format)

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Summary{}, fmt.Errorf("batch: resolve root: %w", err)
	}

	var sum Summary
	written := make(map[string]string, len(files)) // destination -> source
	for _, rel := range files {
		var out Outcome
		dest := OutputPath(root, rel, opts)
		if prev, ok := written[dest]; ok {
			out = Outcome{Path: rel, Err: fmt.Errorf("output %s already written by %s", dest, prev)}
		} else {
			out = convertOne(root, rel, opts, renderer)
			if out.Err == nil {
				written[dest] = rel
			}
		}
		if out.Err != nil {
			sum.Failed++
		} else {
			sum.Converted++
		}
		sum.Outcomes = append(sum.Outcomes, out)
		if onFile != nil {
			onFile(out)
		}
	}
	return sum, nil
}

func convertOne(root, rel string, opts Options, renderer render.Renderer) Outcome {
	out := Outcome{Path: rel}

	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		out.Err = fmt.Errorf("read: %w", err)
		return out
	}

	in := embed.FormInput{
		Snippet:     string(data),
		Width:       opts.Width,
		Height:      opts.Height,
		ShowToolbar: opts.ShowToolbar,
	}
	req, err := embed.ParseForm(in)
	if err != nil {
		out.Err = err
		return out
	}
	res, err := embed.Build(req)
	if err != nil {
		out.Err = &embed.FieldError{Field: "snippet", Err: err}
		return out
	}
	text, err := renderer.Render(res, req)
	if err != nil {
		out.Err = fmt.Errorf("render: %w", err)
		return out
	}

	dest := OutputPath(root, rel, opts)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		out.Err = fmt.Errorf("mkdir: %w", err)
		return out
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		out.Err = fmt.Errorf("write: %w", err)
		return out
	}
	out.Output = dest
	return out
}

// OutputPath returns where the rendered embed for rel is written.
func OutputPath(root, rel string, opts Options) string {
	name := strings.TrimSuffix(rel, filepath.Ext(rel)) + opts.OutputExt
	if opts.OutDir != "" {
		return filepath.Join(opts.OutDir, name)
	}
	return filepath.Join(root, name)
}
