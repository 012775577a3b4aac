package orgdir

import (
	"path/filepath"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	tuiLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiFocusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	tuiButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	tuiButtonActive = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63")).Padding(0, 1)
	tuiHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

type spinner struct {
	frames []string
	index  int
}

func newSpinner() spinner {
	return spinner{frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}}
}

func (s *spinner) tick()       { s.index = (s.index + 1) % len(s.frames) }
func (s spinner) View() string { return s.frames[s.index] }

// TUI is the interactive front-end started when no directory argument is
// given on the command line.
type TUI struct {
	loc       *LocaleStore
	separator string
}

func NewTUI(loc *LocaleStore, separator string) *TUI {
	return &TUI{loc: loc, separator: separator}
}

func (t *TUI) Run() error {
	p := tea.NewProgram(newTUIModel(t.loc, t.separator), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type tuiScreen int

const (
	screenForm tuiScreen = iota
	screenPlan
	screenReverse
	screenResult
)

type tuiFocus int

const (
	focusDir tuiFocus = iota
	focusSep
	focusPrefix
	focusButtons
)

const (
	buttonOrganize = iota
	buttonReverse
	buttonTree
	buttonQuit
	buttonCount
)

type planReadyMsg struct {
	plan *Plan
	err  error
}

type scanReadyMsg struct {
	categories map[string][]string
	subdirs    []string
	files      int
	err        error
}

type doneMsg struct {
	summary Summary
	reverse bool
	err     error
}

type spinnerTickMsg time.Time

type tuiModel struct {
	loc *LocaleStore

	dirInput     string
	sepInput     string
	removePrefix bool
	focus        tuiFocus
	button       int

	screen     tuiScreen
	plan       *Plan
	categories map[string][]string
	scanFiles  int
	summary    Summary
	wasReverse bool
	err        error

	working bool
	spinner spinner
	width   int
	height  int
}

func newTUIModel(loc *LocaleStore, separator string) tuiModel {
	return tuiModel{
		loc:      loc,
		sepInput: separator,
		spinner:  newSpinner(),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinnerTickMsg:
		if m.working {
			m.spinner.tick()
			return m, spinnerTick()
		}

	case planReadyMsg:
		m.working = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.plan = msg.plan
		m.screen = screenPlan

	case scanReadyMsg:
		m.working = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.categories = msg.categories
		m.scanFiles = msg.files
		m.screen = screenReverse

	case doneMsg:
		m.working = false
		if msg.err != nil {
			m.err = msg.err
			m.screen = screenForm
			return m, nil
		}
		m.err = nil
		m.summary = msg.summary
		m.wasReverse = msg.reverse
		m.screen = screenResult

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.working {
			return m, nil
		}
		switch m.screen {
		case screenForm:
			return m.updateForm(msg)
		case screenPlan:
			return m.updatePlan(msg)
		case screenReverse:
			return m.updateReverse(msg)
		case screenResult:
			return m.updateResult(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % 4
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + 3) % 4
		return m, nil
	}

	switch m.focus {
	case focusDir, focusSep:
		return m.updateInput(key)
	case focusPrefix:
		if key == " " || key == "enter" {
			m.removePrefix = !m.removePrefix
		}
	case focusButtons:
		switch key {
		case "left", "h":
			m.button = (m.button + buttonCount - 1) % buttonCount
		case "right", "l":
			m.button = (m.button + 1) % buttonCount
		case "q":
			return m, tea.Quit
		case "enter":
			return m.activateButton()
		}
	}
	return m, nil
}

func (m tuiModel) updateInput(key string) (tea.Model, tea.Cmd) {
	field := &m.dirInput
	if m.focus == focusSep {
		field = &m.sepInput
	}

	switch key {
	case "enter":
		m.focus++
	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	default:
		if utf8.RuneCountInString(key) == 1 {
			*field += key
		}
	}
	return m, nil
}

func (m tuiModel) activateButton() (tea.Model, tea.Cmd) {
	switch m.button {
	case buttonQuit:
		return m, tea.Quit
	case buttonOrganize:
		m.working = true
		return m, tea.Batch(buildPlanCmd(m.dirInput, m.sepInput), spinnerTick())
	case buttonReverse:
		m.working = true
		return m, tea.Batch(scanCmd(m.dirInput, m.sepInput), spinnerTick())
	case buttonTree:
		m.working = true
		return m, tea.Batch(treeCmd(m.dirInput), spinnerTick())
	}
	return m, nil
}

func (m tuiModel) updatePlan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenForm
	case "r":
		m.removePrefix = !m.removePrefix
	case "enter", "y":
		m.working = true
		return m, tea.Batch(executeCmd(m.dirInput, m.sepInput, m.plan, m.removePrefix), spinnerTick())
	}
	return m, nil
}

func (m tuiModel) updateReverse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenForm
	case "enter", "y":
		m.working = true
		return m, tea.Batch(reverseCmd(m.dirInput, m.sepInput, m.categories, m.removePrefix), spinnerTick())
	}
	return m, nil
}

func (m tuiModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		m.screen = screenForm
	}
	return m, nil
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func buildPlanCmd(dir, separator string) tea.Cmd {
	return func() tea.Msg {
		plan, err := NewOrganizer(separator).Plan(dir)
		if err == nil && plan.IsEmpty() {
			err = &DirError{Op: "organize", Path: dir, Err: ErrNoFiles}
		}
		return planReadyMsg{plan: plan, err: err}
	}
}

func scanCmd(dir, separator string) tea.Cmd {
	return func() tea.Msg {
		categories, subdirs, err := NewOrganizer(separator).ScanSubdirs(dir)
		if err == nil && len(subdirs) == 0 {
			err = &DirError{Op: "reverse", Path: dir, Err: ErrNoSubdirs}
		}
		if err == nil && len(categories) == 0 {
			err = &DirError{Op: "reverse", Path: dir, Err: ErrNoSubdirFiles}
		}
		files := 0
		for _, names := range categories {
			files += len(names)
		}
		return scanReadyMsg{categories: categories, subdirs: subdirs, files: files, err: err}
	}
}

func executeCmd(dir, separator string, plan *Plan, removePrefix bool) tea.Cmd {
	return func() tea.Msg {
		res := NewOrganizer(separator).Execute(dir, plan, removePrefix, nil)
		return doneMsg{summary: Summary{
			Moved:       res.Moved,
			Categories:  len(plan.Order),
			DirsCreated: res.DirsCreated,
			Errors:      res.Errors,
		}}
	}
}

func reverseCmd(dir, separator string, categories map[string][]string, restorePrefix bool) tea.Cmd {
	return func() tea.Msg {
		res := NewOrganizer(separator).Reverse(dir, categories, restorePrefix, nil)
		return doneMsg{summary: Summary{
			Moved:       res.Moved,
			Categories:  len(categories),
			DirsRemoved: res.DirsRemoved,
			Errors:      res.Errors,
		}, reverse: true}
	}
}

func treeCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		out := filepath.Base(filepath.Clean(dir)) + "_tree.txt"
		err := ExportTree(dir, out, DefaultTreeOptions())
		return doneMsg{summary: Summary{TreePath: out}, err: err}
	}
}

func (m tuiModel) View() string {
	var body string
	switch m.screen {
	case screenPlan:
		body = m.viewPlan()
	case screenReverse:
		body = m.viewReverse()
	case screenResult:
		body = m.viewResult()
	default:
		body = m.viewForm()
	}

	out := tuiTitleStyle.Render(m.loc.Get("tui_title", nil)) + "\n\n" + body
	if m.working {
		out += "\n" + m.spinner.View() + " " + m.loc.Get("tui_working", nil)
	}
	return out + "\n"
}

func (m tuiModel) viewForm() string {
	dir := m.renderInput(m.loc.Get("tui_directory_label", nil), m.dirInput, m.focus == focusDir)
	sep := m.renderInput(m.loc.Get("tui_separator_label", nil), m.sepInput, m.focus == focusSep)

	check := "[ ] "
	if m.removePrefix {
		check = "[x] "
	}
	prefix := check + m.loc.Get("tui_remove_prefix", nil)
	if m.focus == focusPrefix {
		prefix = tuiFocusStyle.Render(prefix)
	} else {
		prefix = tuiLabelStyle.Render(prefix)
	}

	labels := []string{
		m.loc.Get("tui_action_organize", nil),
		m.loc.Get("tui_action_reverse", nil),
		m.loc.Get("tui_action_tree", nil),
		m.loc.Get("tui_action_quit", nil),
	}
	buttons := ""
	for i, label := range labels {
		style := tuiButtonStyle
		if m.focus == focusButtons && m.button == i {
			style = tuiButtonActive
		}
		buttons += style.Render(label) + " "
	}

	out := dir + "\n" + sep + "\n\n" + prefix + "\n\n" + buttons + "\n"
	if m.err != nil {
		out += "\n" + tuiErrorStyle.Render(m.errText()) + "\n"
	}
	out += "\n" + tuiHintStyle.Render(m.loc.Get("tui_help_form", nil))
	return out
}

func (m tuiModel) renderInput(label, value string, focused bool) string {
	line := tuiLabelStyle.Render(label) + " " + value
	if focused {
		return tuiFocusStyle.Render("> ") + line + tuiFocusStyle.Render("█")
	}
	return "  " + line
}

func (m tuiModel) viewPlan() string {
	organizer := NewOrganizer(m.sepInput)
	out := FormatPlan(organizer, m.plan, m.removePrefix, true, m.loc)
	out += "\n" + tuiHintStyle.Render(m.loc.Get("tui_help_confirm", nil))
	return out
}

func (m tuiModel) viewReverse() string {
	out := FormatReverseScan(m.categories, m.scanFiles, m.loc)
	out += "\n" + tuiHintStyle.Render(m.loc.Get("tui_help_confirm", nil))
	return out
}

func (m tuiModel) viewResult() string {
	out := FormatSummary(m.summary, m.wasReverse, m.loc)
	out += "\n" + tuiHintStyle.Render(m.loc.Get("tui_help_result", nil))
	return out
}

// errText localizes the engine sentinels for display inside the form.
func (m tuiModel) errText() string {
	err := localizeError(m.err, m.dirInput, m.loc)
	return err.Error()
}
