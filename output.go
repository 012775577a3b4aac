package orgdir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// previewLimit caps how many files or errors are listed per block before
// collapsing into an "and N more" line.
const previewLimit = 5

// FormatPlan renders an organization plan for shell display. When verbose is
// set, each category lists its files with the rename they would receive.
func FormatPlan(o *Organizer, plan *Plan, removePrefix, verbose bool, loc *LocaleStore) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(loc.Get("found_files_in_categories", map[string]string{
		"count": strconv.Itoa(plan.FileCount()),
		"dirs":  strconv.Itoa(len(plan.Order)),
	})) + "\n")

	if !verbose {
		return b.String()
	}

	for _, category := range plan.Order {
		files := plan.Categories[category]
		b.WriteString("\n" + categoryStyle.Render(loc.Get("category_header", map[string]string{
			"name":  category,
			"count": strconv.Itoa(len(files)),
		})) + "\n")

		for i, name := range files {
			if i == previewLimit {
				b.WriteString("  " + dimStyle.Render(loc.Get("and_x_more_files", map[string]string{
					"count": strconv.Itoa(len(files) - previewLimit),
				})) + "\n")
				break
			}
			dest, _ := o.destinationName(name, removePrefix)
			if dest != name {
				b.WriteString(fmt.Sprintf("  %s -> %s\n", name, dest))
			} else {
				b.WriteString(fmt.Sprintf("  %s\n", name))
			}
		}
	}
	return b.String()
}

// FormatReverseScan renders the counts found by a reverse pre-scan.
func FormatReverseScan(categories map[string][]string, files int, loc *LocaleStore) string {
	return headerStyle.Render(loc.Get("found_files_in_subdirs", map[string]string{
		"count": strconv.Itoa(files),
		"dirs":  strconv.Itoa(len(categories)),
	})) + "\n"
}

// FormatSummary renders the outcome of a run: the success line, then any
// per-file errors as warnings, capped at previewLimit.
func FormatSummary(s Summary, reverse bool, loc *LocaleStore) string {
	var b strings.Builder

	switch {
	case s.Cancelled:
		b.WriteString(dimStyle.Render(loc.Get("operation_cancelled", nil)) + "\n")
		return b.String()
	case s.TreePath != "":
		b.WriteString(successStyle.Render(loc.Get("tree_saved", map[string]string{"path": s.TreePath})) + "\n")
	case reverse:
		b.WriteString(successStyle.Render(loc.Get("reverse_success", map[string]string{
			"count": strconv.Itoa(s.Moved),
		})) + "\n")
		if s.DirsRemoved > 0 {
			b.WriteString(successStyle.Render(loc.Get("removed_dirs", map[string]string{
				"count": strconv.Itoa(s.DirsRemoved),
			})) + "\n")
		}
	default:
		b.WriteString(successStyle.Render(loc.Get("organize_success", map[string]string{
			"count": strconv.Itoa(s.Moved),
			"dirs":  strconv.Itoa(s.Categories),
		})) + "\n")
	}

	if len(s.Errors) > 0 {
		b.WriteString(errorStyle.Render(loc.Get("errors_header", map[string]string{
			"count": strconv.Itoa(len(s.Errors)),
		})) + "\n")
		for i, e := range s.Errors {
			if i == previewLimit {
				b.WriteString("  " + dimStyle.Render(loc.Get("and_x_more_errors", map[string]string{
					"count": strconv.Itoa(len(s.Errors) - previewLimit),
				})) + "\n")
				break
			}
			b.WriteString(warnStyle.Render("  - "+e.Error()) + "\n")
		}
	}
	return b.String()
}
