package orgdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0644))
	}
}

func flatFiles(t *testing.T, dir string) []string {
	t.Helper()
	names, err := listFiles(dir)
	require.NoError(t, err)
	return names
}

func TestPlan_GroupsByPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "work-report.txt", "work-notes.txt", "home-list.txt", "readme.md")

	plan, err := NewOrganizer("-").Plan(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"work-notes.txt", "work-report.txt"}, plan.Categories["work"])
	assert.Equal(t, []string{"home-list.txt"}, plan.Categories["home"])
	assert.Equal(t, []string{"readme.md"}, plan.Categories[NoSeparatorCategory])
	assert.Equal(t, 4, plan.FileCount())
	assert.Len(t, plan.Order, 3)
}

func TestPlan_EmptySeparator(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-1.txt", "b-2.txt")

	plan, err := NewOrganizer("").Plan(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{NoSeparatorCategory}, plan.Order)
	assert.Len(t, plan.Categories[NoSeparatorCategory], 2)
}

func TestPlan_SplitsOnFirstOccurrence(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-b-c.txt")

	plan, err := NewOrganizer("-").Plan(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a-b-c.txt"}, plan.Categories["a"])
}

func TestPlan_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-1.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b-sub"), 0755))

	plan, err := NewOrganizer("-").Plan(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.FileCount())
	assert.NotContains(t, plan.Categories, "b")
}

func TestPlan_MissingDirectory(t *testing.T) {
	_, err := NewOrganizer("-").Plan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSanitizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"plain", "photos", "photos"},
		{"keeps spaces and hyphens", "my old_files-2020", "my old_files-2020"},
		{"unicode letters survive", "wörk", "wörk"},
		{"dots become underscores", "a.b", "a_b"},
		{"surrounding whitespace trimmed", "  docs  ", "docs"},
		{"empty becomes unnamed", "", UnnamedCategory},
		{"whitespace only becomes unnamed", "   ", UnnamedCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeCategory(tt.prefix))
		})
	}
}

func TestExecute_MovesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-1.txt", "a-2.txt", "b-1.txt")

	o := NewOrganizer("-")
	plan, err := o.Plan(dir)
	require.NoError(t, err)

	res := o.Execute(dir, plan, false, nil)

	assert.Equal(t, 3, res.Moved)
	assert.Equal(t, 2, res.DirsCreated)
	assert.Empty(t, res.Errors)
	assert.FileExists(t, filepath.Join(dir, "a", "a-1.txt"))
	assert.FileExists(t, filepath.Join(dir, "a", "a-2.txt"))
	assert.FileExists(t, filepath.Join(dir, "b", "b-1.txt"))
	assert.Empty(t, flatFiles(t, dir))
}

func TestExecute_RemovePrefix(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-b-c.txt", "readme")

	o := NewOrganizer("-")
	plan, err := o.Plan(dir)
	require.NoError(t, err)

	res := o.Execute(dir, plan, true, nil)

	assert.Equal(t, 2, res.Moved)
	assert.Empty(t, res.Errors)
	assert.FileExists(t, filepath.Join(dir, "a", "b-c.txt"))
	assert.FileExists(t, filepath.Join(dir, NoSeparatorCategory, "readme"))
}

func TestExecute_EmptyAfterStripKeepsName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "pics-")

	o := NewOrganizer("-")
	plan, err := o.Plan(dir)
	require.NoError(t, err)

	res := o.Execute(dir, plan, true, nil)

	assert.Equal(t, 1, res.Moved)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Reason, "empty after prefix removal")
	assert.FileExists(t, filepath.Join(dir, "pics", "pics-"))
}

func TestExecute_DestinationCollision(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-1.txt", "b-2.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))
	writeFiles(t, filepath.Join(dir, "a"), "1.txt")

	o := NewOrganizer("-")
	plan, err := o.Plan(dir)
	require.NoError(t, err)

	res := o.Execute(dir, plan, true, nil)

	assert.Equal(t, 1, res.Moved)
	assert.Equal(t, 1, res.DirsCreated) // only "b" was created
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "a-1.txt", res.Errors[0].Name)
	assert.FileExists(t, filepath.Join(dir, "a-1.txt"))
	assert.FileExists(t, filepath.Join(dir, "b", "2.txt"))
}

func TestExecute_ReportsProgress(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a-1.txt", "a-2.txt")

	o := NewOrganizer("-")
	plan, err := o.Plan(dir)
	require.NoError(t, err)

	var updates [][2]int
	o.Execute(dir, plan, false, func(current, total int) {
		updates = append(updates, [2]int{current, total})
	})

	require.Len(t, updates, 2)
	assert.Equal(t, [2]int{2, 2}, updates[1])
}

func TestExecuteReverse_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	original := []string{"home-list.txt", "work-notes.txt", "work-report.txt"}
	writeFiles(t, dir, original...)

	o := NewOrganizer("-")
	plan, err := o.Plan(dir)
	require.NoError(t, err)

	forward := o.Execute(dir, plan, true, nil)
	require.Empty(t, forward.Errors)

	categories, subdirs, err := o.ScanSubdirs(dir)
	require.NoError(t, err)
	require.Len(t, subdirs, 2)

	backward := o.Reverse(dir, categories, true, nil)
	require.Empty(t, backward.Errors)

	assert.Equal(t, forward.Moved, backward.Moved)
	assert.Equal(t, forward.DirsCreated, backward.DirsRemoved)
	assert.Equal(t, original, flatFiles(t, dir))

	remaining, err := listDirs(dir)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestReverse_NoPrefixForSentinelCategory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, NoSeparatorCategory)
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, sub, "readme.md")

	o := NewOrganizer("-")
	res := o.Reverse(dir, map[string][]string{NoSeparatorCategory: {"readme.md"}}, true, nil)

	assert.Equal(t, 1, res.Moved)
	assert.FileExists(t, filepath.Join(dir, "readme.md"))
}

func TestReverse_MissingDirectory(t *testing.T) {
	res := NewOrganizer("-").Reverse(filepath.Join(t.TempDir(), "missing"), map[string][]string{"a": {"1.txt"}}, false, nil)

	assert.Zero(t, res.Moved)
	assert.Zero(t, res.DirsRemoved)
	assert.Len(t, res.Errors, 1)
}

func TestReverse_SkipsVanishedSubdir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, sub, "1.txt")

	categories := map[string][]string{
		"a":     {"1.txt"},
		"ghost": {"2.txt"},
	}
	res := NewOrganizer("-").Reverse(dir, categories, false, nil)

	assert.Equal(t, 1, res.Moved)
	assert.Empty(t, res.Errors)
}

func TestReverse_CollisionLeavesSubdir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "1.txt")
	sub := filepath.Join(dir, "a")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, sub, "1.txt")

	res := NewOrganizer("-").Reverse(dir, map[string][]string{"a": {"1.txt"}}, false, nil)

	assert.Zero(t, res.Moved)
	assert.Zero(t, res.DirsRemoved)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Reason, "already exists")
	assert.FileExists(t, filepath.Join(sub, "1.txt"))
}

func TestReverse_KeepsNonEmptySubdir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, sub, "1.txt", "stays.txt")

	res := NewOrganizer("-").Reverse(dir, map[string][]string{"a": {"1.txt"}}, false, nil)

	assert.Equal(t, 1, res.Moved)
	assert.Zero(t, res.DirsRemoved)
	assert.DirExists(t, sub)
	assert.FileExists(t, filepath.Join(sub, "stays.txt"))
}

func TestScanSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "flat.txt")
	full := filepath.Join(dir, "full")
	require.NoError(t, os.Mkdir(full, 0755))
	writeFiles(t, full, "1.txt", "2.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0755))

	categories, subdirs, err := NewOrganizer("-").ScanSubdirs(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"empty", "full"}, subdirs)
	assert.Equal(t, map[string][]string{"full": {"1.txt", "2.txt"}}, categories)
}

func TestScanSubdirs_MissingDirectory(t *testing.T) {
	_, _, err := NewOrganizer("-").ScanSubdirs(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}
