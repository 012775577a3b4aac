package orgdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	indentBar     = "│   "
	indentBlank   = "    "

	hiddenPrefix      = "."
	deniedPlaceholder = "[Permission Denied]"
)

// TreeOptions controls tree rendering. MaxDepth limits how deep the walk
// descends: entries at the cutoff depth are listed but not expanded. A
// negative value means unlimited; zero renders only the root line.
type TreeOptions struct {
	ShowHidden bool
	MaxDepth   int
}

func DefaultTreeOptions() TreeOptions {
	return TreeOptions{MaxDepth: -1}
}

// RenderTree returns a textual tree of the directory rooted at dir, with
// branch connectors marking sibling position and directories suffixed "/".
func RenderTree(dir string, opts TreeOptions) (string, error) {
	if err := ensureDir(dir); err != nil {
		return "", err
	}

	var b strings.Builder
	writeTreeNode(&b, filepath.Clean(dir), "", 0, true, opts)
	return b.String(), nil
}

// ExportTree renders the tree and writes it to outputPath as UTF-8. Write
// failures propagate; no cleanup of a partial file is attempted.
func ExportTree(dir, outputPath string, opts TreeOptions) error {
	tree, err := RenderTree(dir, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(tree), 0644); err != nil {
		return fmt.Errorf("could not write tree to '%s': %w", outputPath, err)
	}
	return nil
}

func writeTreeNode(b *strings.Builder, path, prefix string, depth int, isLast bool, opts TreeOptions) {
	if opts.MaxDepth >= 0 && depth > opts.MaxDepth {
		return
	}

	dir := isDirectory(path)
	if depth == 0 {
		b.WriteString(filepath.Base(path) + "/\n")
	} else {
		connector := connectorMid
		if isLast {
			connector = connectorLast
		}
		suffix := ""
		if dir {
			suffix = "/"
		}
		b.WriteString(prefix + connector + filepath.Base(path) + suffix + "\n")
	}

	if !dir {
		return
	}

	childPrefix := ""
	if depth > 0 {
		childPrefix = prefix + indentBar
		if isLast {
			childPrefix = prefix + indentBlank
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsPermission(err) && depth > 0 {
			b.WriteString(childPrefix + deniedPlaceholder + "\n")
		}
		return
	}

	children := orderEntries(entries, opts.ShowHidden)
	for i, name := range children {
		writeTreeNode(b, filepath.Join(path, name), childPrefix, depth+1, i == len(children)-1, opts)
	}
}

// orderEntries filters hidden names and sorts directories ahead of files,
// each group alphabetically.
func orderEntries(entries []os.DirEntry, showHidden bool) []string {
	var dirs, files []string
	for _, e := range entries {
		name := e.Name()
		if !showHidden && strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return append(dirs, files...)
}
