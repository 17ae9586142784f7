package binder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Runner executes the full generation pipeline for one config file:
// load config, inspect the target package, generate, write.
type Runner struct {
	// configPath is the funcast.yaml location.
	configPath string

	// castImport overrides the cast package import path (for tests).
	castImport string

	// dryRun skips writing; the generated source is only returned.
	dryRun bool

	// log receives progress output, or is nil for silence.
	log io.Writer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDryRun makes Run return the generated source without writing it.
func WithDryRun() RunnerOption {
	return func(r *Runner) { r.dryRun = true }
}

// WithLog directs progress output to w.
func WithLog(w io.Writer) RunnerOption {
	return func(r *Runner) { r.log = w }
}

// WithCastImport overrides the import path of the cast package in generated
// code.
func WithCastImport(path string) RunnerOption {
	return func(r *Runner) { r.castImport = path }
}

// NewRunner creates a Runner for the given funcast.yaml path.
func NewRunner(configPath string, opts ...RunnerOption) *Runner {
	r := &Runner{configPath: configPath}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunResult reports what the pipeline produced.
type RunResult struct {
	// Path is the output file location.
	Path string

	// Content is the generated Go source.
	Content string

	// Wrote reports whether the file was written. False on dry runs and
	// when the on-disk content was already identical, so repeated runs
	// leave build timestamps alone.
	Wrote bool
}

// Run executes the pipeline.
func (r *Runner) Run() (*RunResult, error) {
	cfg, err := LoadConfig(r.configPath)
	if err != nil {
		return nil, err
	}

	dir := cfg.PackageDir(filepath.Dir(r.configPath))
	r.logf("inspecting package in %s", dir)

	result, err := NewInspector(dir).Inspect(cfg)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", dir, err)
	}
	r.logf("resolved %d container(s), %d binding(s)", len(result.Containers), len(cfg.Bindings))

	file, err := NewCodeGenerator(r.castImport).Generate(result, cfg.Output)
	if err != nil {
		return nil, err
	}

	out := &RunResult{
		Path:    filepath.Join(dir, file.Filename),
		Content: file.Content,
	}
	if r.dryRun {
		r.logf("dry run, not writing %s", out.Path)
		return out, nil
	}

	wrote, err := writeIfChanged(out.Path, file.Content)
	if err != nil {
		return nil, err
	}
	out.Wrote = wrote
	if wrote {
		r.logf("wrote %s", out.Path)
	} else {
		r.logf("%s is up to date", out.Path)
	}
	return out, nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.log != nil {
		fmt.Fprintf(r.log, format+"\n", args...)
	}
}

// writeIfChanged writes content to path unless the file already holds
// exactly that content.
func writeIfChanged(path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && string(existing) == content {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
