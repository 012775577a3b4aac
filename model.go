package orgdir

import "fmt"

const (
	// NoSeparatorCategory collects files whose name contains no separator.
	NoSeparatorCategory = "NO_SEPARATOR"
	// UnnamedCategory is used when a prefix sanitizes down to nothing.
	UnnamedCategory = "UNNAMED_CATEGORY"
)

// Plan maps category names to the files that belong to them. Order holds
// the categories in first-seen order; file lists keep directory-listing order.
type Plan struct {
	Categories map[string][]string
	Order      []string
}

func (p *Plan) FileCount() int {
	n := 0
	for _, files := range p.Categories {
		n += len(files)
	}
	return n
}

func (p *Plan) IsEmpty() bool { return p == nil || len(p.Categories) == 0 }

// MoveError records a single non-fatal failure inside a batch operation.
type MoveError struct {
	Name   string
	Reason string
}

func (e MoveError) Error() string { return fmt.Sprintf("'%s': %s", e.Name, e.Reason) }

// Result aggregates the outcome of an execute or reverse batch. Per-file
// failures never abort the batch; they accumulate in Errors.
type Result struct {
	Moved       int
	DirsCreated int
	DirsRemoved int
	Errors      []MoveError
}

// Summary is what a full App run reports back to the shell.
type Summary struct {
	Moved       int
	Categories  int
	DirsCreated int
	DirsRemoved int
	Errors      []MoveError
	TreePath    string
	Cancelled   bool
}

type ProgressUpdate func(current, total int)
