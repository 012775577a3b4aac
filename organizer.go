package orgdir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Organizer groups the direct-child files of a directory into subdirectories
// named after the filename prefix before the first separator occurrence, and
// can reverse a previous grouping.
type Organizer struct {
	separator string
}

func NewOrganizer(separator string) *Organizer {
	return &Organizer{separator: separator}
}

func (o *Organizer) Separator() string { return o.separator }

// Plan scans dir and groups its files by prefix. Files whose name does not
// contain the separator, or all files when the separator is empty, go to
// NoSeparatorCategory. Category and file ordering follow the directory
// listing.
func (o *Organizer) Plan(dir string) (*Plan, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	files, err := listFiles(dir)
	if err != nil {
		return nil, &DirError{Op: "list", Path: dir, Err: err}
	}

	plan := &Plan{Categories: make(map[string][]string)}
	for _, name := range files {
		category := NoSeparatorCategory
		if o.separator != "" {
			if idx := strings.Index(name, o.separator); idx >= 0 {
				category = sanitizeCategory(name[:idx])
			}
		}
		if _, seen := plan.Categories[category]; !seen {
			plan.Order = append(plan.Order, category)
		}
		plan.Categories[category] = append(plan.Categories[category], name)
	}

	slog.Debug("organization plan built", "dir", dir, "categories", len(plan.Order), "files", plan.FileCount())
	return plan, nil
}

// Execute moves every planned file into its category subdirectory, creating
// the subdirectory first if needed. Failures are per-file: each one is
// recorded and the batch carries on.
func (o *Organizer) Execute(dir string, plan *Plan, removePrefix bool, progress ProgressUpdate) *Result {
	res := &Result{}
	total := plan.FileCount()
	done := 0

	for _, category := range plan.Order {
		categoryDir := filepath.Join(dir, category)
		if _, err := os.Stat(categoryDir); os.IsNotExist(err) {
			if err := os.MkdirAll(categoryDir, 0755); err != nil {
				res.Errors = append(res.Errors, MoveError{Name: category, Reason: fmt.Sprintf("could not create directory: %v", err)})
				done += len(plan.Categories[category])
				report(progress, done, total)
				continue
			}
			res.DirsCreated++
		}

		for _, name := range plan.Categories[category] {
			done++
			dest, moveErr := o.destinationName(name, removePrefix)
			if moveErr != nil {
				res.Errors = append(res.Errors, *moveErr)
			}

			src := filepath.Join(dir, name)
			dst := filepath.Join(categoryDir, dest)
			if _, err := os.Stat(dst); err == nil {
				res.Errors = append(res.Errors, MoveError{Name: name, Reason: fmt.Sprintf("destination '%s' already exists", dst)})
				report(progress, done, total)
				continue
			}

			if err := os.Rename(src, dst); err != nil {
				res.Errors = append(res.Errors, MoveError{Name: name, Reason: fmt.Sprintf("move failed: %v", err)})
				report(progress, done, total)
				continue
			}
			res.Moved++
			report(progress, done, total)
		}
	}

	slog.Debug("organization executed", "dir", dir, "moved", res.Moved, "dirs_created", res.DirsCreated, "errors", len(res.Errors))
	return res
}

// destinationName strips the prefix up to and including the first separator
// occurrence. A name that would become empty keeps its original form and the
// condition is reported so the caller can surface it.
func (o *Organizer) destinationName(name string, removePrefix bool) (string, *MoveError) {
	if !removePrefix || o.separator == "" || !strings.Contains(name, o.separator) {
		return name, nil
	}
	rest := strings.TrimSpace(strings.SplitN(name, o.separator, 2)[1])
	if rest == "" {
		return name, &MoveError{Name: name, Reason: "filename becomes empty after prefix removal, keeping original name"}
	}
	return rest, nil
}

// Reverse moves the given files out of their category subdirectories back
// into dir, re-prepending "category+separator" when restorePrefix is set.
// Subdirectories left empty afterwards are removed. The categories map is
// supplied by the caller, typically from ScanSubdirs.
func (o *Organizer) Reverse(dir string, categories map[string][]string, restorePrefix bool, progress ProgressUpdate) *Result {
	res := &Result{}
	if !isDirectory(dir) {
		res.Errors = append(res.Errors, MoveError{Name: dir, Reason: "main directory not found"})
		return res
	}

	total := 0
	for _, files := range categories {
		total += len(files)
	}
	done := 0

	for _, category := range sortedKeys(categories) {
		subdir := filepath.Join(dir, category)
		if !isDirectory(subdir) {
			// Planned but never created, or removed out of band.
			done += len(categories[category])
			report(progress, done, total)
			continue
		}

		for _, name := range categories[category] {
			done++
			restored := name
			if restorePrefix && o.separator != "" && category != NoSeparatorCategory && category != UnnamedCategory {
				restored = category + o.separator + name
			}

			dst := filepath.Join(dir, restored)
			if _, err := os.Stat(dst); err == nil {
				res.Errors = append(res.Errors, MoveError{Name: name, Reason: fmt.Sprintf("target '%s' already exists in main directory", dst)})
				report(progress, done, total)
				continue
			}

			if err := os.Rename(filepath.Join(subdir, name), dst); err != nil {
				res.Errors = append(res.Errors, MoveError{Name: name, Reason: fmt.Sprintf("move failed: %v", err)})
				report(progress, done, total)
				continue
			}
			res.Moved++
			report(progress, done, total)
		}

		empty, err := IsEmptyDir(subdir)
		if err != nil {
			res.Errors = append(res.Errors, MoveError{Name: category, Reason: fmt.Sprintf("could not inspect directory: %v", err)})
			continue
		}
		if empty {
			if err := os.Remove(subdir); err != nil {
				res.Errors = append(res.Errors, MoveError{Name: category, Reason: fmt.Sprintf("could not remove directory: %v", err)})
				continue
			}
			res.DirsRemoved++
		}
	}

	slog.Debug("organization reversed", "dir", dir, "moved", res.Moved, "dirs_removed", res.DirsRemoved, "errors", len(res.Errors))
	return res
}

// ScanSubdirs builds the category map Reverse consumes from the live tree.
// subdirs lists every direct-child subdirectory; the map only holds the ones
// that contain files.
func (o *Organizer) ScanSubdirs(dir string) (categories map[string][]string, subdirs []string, err error) {
	if err := ensureDir(dir); err != nil {
		return nil, nil, err
	}

	subdirs, err = listDirs(dir)
	if err != nil {
		return nil, nil, &DirError{Op: "list", Path: dir, Err: err}
	}

	categories = make(map[string][]string)
	for _, name := range subdirs {
		files, err := listFiles(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not scan subdirectory", "dir", name, "error", err)
			continue
		}
		if len(files) > 0 {
			categories[name] = files
		}
	}
	return categories, subdirs, nil
}

// sanitizeCategory keeps letters, digits, spaces, underscores and hyphens;
// anything else becomes an underscore so the category is a usable directory
// name on common filesystems.
func sanitizeCategory(prefix string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(prefix) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	category := strings.TrimSpace(b.String())
	if category == "" {
		return UnnamedCategory
	}
	return category
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func report(progress ProgressUpdate, current, total int) {
	if progress != nil {
		progress(current, total)
	}
}
