package orgdir

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/atotto/clipboard"
)

// Config selects the operation a single App run performs.
type Config struct {
	Directory    string
	Separator    string
	RemovePrefix bool
	Reverse      bool
	ExportTree   bool
	Output       string
	Clipboard    bool
	ShowHidden   bool
	MaxDepth     int
}

// ConfirmFunc lets the shell approve a batch before it runs. For an organize
// run plan is set; for a reverse run categories is set. Returning false
// cancels the operation.
type ConfirmFunc func(plan *Plan, categories map[string][]string, files int) bool

type App struct {
	cfg              *Config
	organizer        *Organizer
	resolver         *PathResolver
	progressCallback ProgressUpdate
	confirmCallback  ConfirmFunc
}

func NewApp(cfg *Config) (*App, error) {
	pr, err := NewPathResolver()
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:       cfg,
		organizer: NewOrganizer(cfg.Separator),
		resolver:  pr,
	}, nil
}

func (a *App) SetProgressCallback(cb ProgressUpdate) { a.progressCallback = cb }
func (a *App) SetConfirmCallback(cb ConfirmFunc)     { a.confirmCallback = cb }

// Execute dispatches to the configured operation. Directory-level
// preconditions surface as errors; per-file failures land in the Summary.
func (a *App) Execute() (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	dir := a.resolver.Resolve(a.cfg.Directory)
	switch {
	case a.cfg.ExportTree:
		return a.exportTree(dir)
	case a.cfg.Reverse:
		return a.reverse(dir)
	default:
		return a.organize(dir)
	}
}

func (a *App) organize(dir string) (Summary, error) {
	plan, err := a.organizer.Plan(dir)
	if err != nil {
		return Summary{}, err
	}
	if plan.IsEmpty() {
		return Summary{}, &DirError{Op: "organize", Path: dir, Err: ErrNoFiles}
	}

	if a.confirmCallback != nil && !a.confirmCallback(plan, nil, plan.FileCount()) {
		return Summary{Cancelled: true}, nil
	}

	res := a.organizer.Execute(dir, plan, a.cfg.RemovePrefix, a.progressCallback)
	return Summary{
		Moved:       res.Moved,
		Categories:  len(plan.Order),
		DirsCreated: res.DirsCreated,
		Errors:      res.Errors,
	}, nil
}

func (a *App) reverse(dir string) (Summary, error) {
	categories, subdirs, err := a.organizer.ScanSubdirs(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(subdirs) == 0 {
		return Summary{}, &DirError{Op: "reverse", Path: dir, Err: ErrNoSubdirs}
	}
	if len(categories) == 0 {
		return Summary{}, &DirError{Op: "reverse", Path: dir, Err: ErrNoSubdirFiles}
	}

	files := 0
	for _, names := range categories {
		files += len(names)
	}
	if a.confirmCallback != nil && !a.confirmCallback(nil, categories, files) {
		return Summary{Cancelled: true}, nil
	}

	res := a.organizer.Reverse(dir, categories, a.cfg.RemovePrefix, a.progressCallback)
	return Summary{
		Moved:       res.Moved,
		Categories:  len(categories),
		DirsRemoved: res.DirsRemoved,
		Errors:      res.Errors,
	}, nil
}

func (a *App) exportTree(dir string) (Summary, error) {
	opts := TreeOptions{ShowHidden: a.cfg.ShowHidden, MaxDepth: a.cfg.MaxDepth}
	tree, err := RenderTree(dir, opts)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	if a.cfg.Clipboard {
		if err := clipboard.WriteAll(tree); err != nil {
			return Summary{}, fmt.Errorf("could not copy tree to clipboard: %w", err)
		}
	}
	if a.cfg.Output != "" || !a.cfg.Clipboard {
		out := a.cfg.Output
		if out == "" {
			out = filepath.Base(a.resolver.Resolve(a.cfg.Directory)) + "_tree.txt"
		}
		if err := os.WriteFile(out, []byte(tree), 0644); err != nil {
			return Summary{}, fmt.Errorf("could not write tree to '%s': %w", out, err)
		}
		sum.TreePath = out
	}
	return sum, nil
}
