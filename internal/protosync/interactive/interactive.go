// Package interactive asks the operator what to run: a menu followed by the
// questions the chosen action needs. It only collects answers; the caller
// runs the selection and may show the menu again.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grpc-protos/protosync/internal/protosync/pipeline"
	"github.com/grpc-protos/protosync/pkg/semver"
)

type Action int

const (
	ActionStatus Action = iota
	ActionSync
	ActionRelease
	ActionPublish
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionStatus:
		return "Status"
	case ActionSync:
		return "Sync"
	case ActionRelease:
		return "Release"
	case ActionPublish:
		return "Publish"
	default:
		return "Exit"
	}
}

// Selection is what the operator chose. Release is set for release and
// publish; DryRun is the sync preview choice.
type Selection struct {
	Action  Action
	DryRun  bool
	Release *pipeline.ReleaseContext
}

// Run shows the menu once and returns the selection. Cancelling ctx or
// pressing ctrl+c yields ActionExit.
func Run(ctx context.Context, in io.Reader, out io.Writer) (Selection, error) {
	p := tea.NewProgram(newModel(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Selection{Action: ActionExit}, ctx.Err()
		}
		return Selection{Action: ActionExit}, fmt.Errorf("interactive menu: %w", err)
	}
	m, ok := final.(model)
	if !ok {
		return Selection{Action: ActionExit}, nil
	}
	return m.selection, nil
}

type menuItem struct {
	action Action
	desc   string
}

func (m menuItem) Title() string       { return m.action.String() }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.action.String() }

type screen int

const (
	screenMenu screen = iota
	screenQuestions
)

// Answer keys.
const (
	keyVersion       = "version"
	keyDryRun        = "dry-run"
	keyValidate      = "validate"
	keyCodegen       = "codegen"
	keyInstall       = "install"
	keyDepSync       = "uv-sync"
	keyCommitMessage = "commit-message"
)

type question struct {
	key    string
	prompt string
	// text questions read a line; the others are yes/no with def as default.
	text     bool
	def      bool
	when     func(answers) bool
	validate func(string) error
}

type answers struct {
	text map[string]string
	yes  map[string]bool
}

func newAnswers() answers {
	return answers{text: map[string]string{}, yes: map[string]bool{}}
}

func validateVersion(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("a version is required")
	}
	if _, err := semver.NewVersion(s); err != nil {
		return fmt.Errorf("%q is not X.Y.Z", s)
	}
	return nil
}

func codegenEnabled(a answers) bool { return a.yes[keyCodegen] }

// questionsFor returns the questions asked for action, with the defaults of
// the release tooling.
func questionsFor(action Action) []question {
	switch action {
	case ActionSync:
		return []question{
			{key: keyDryRun, prompt: "Preview only (dry-run)?", def: true},
		}
	case ActionRelease:
		return []question{
			{key: keyVersion, prompt: "New package version (e.g. 2.0.3):", text: true, validate: validateVersion},
			{key: keyDryRun, prompt: "Dry-run?", def: false},
			{key: keyValidate, prompt: "Run buf validation?", def: true},
			{key: keyCodegen, prompt: "Regenerate code?", def: true},
			{key: keyInstall, prompt: "Install the generated package locally?", def: true, when: codegenEnabled},
			{key: keyDepSync, prompt: "Run 'uv sync' in every service afterwards?", def: false},
		}
	case ActionPublish:
		return []question{
			{key: keyVersion, prompt: "Version to publish (e.g. 2.0.3):", text: true, validate: validateVersion},
			{key: keyDryRun, prompt: "Dry-run?", def: false},
			{key: keyValidate, prompt: "Run buf validation?", def: true},
			{key: keyCodegen, prompt: "Regenerate code?", def: true},
			{key: keyInstall, prompt: "Install the generated package locally?", def: false, when: codegenEnabled},
			{key: keyDepSync, prompt: "Run 'uv sync' in every service afterwards?", def: false},
			{key: keyCommitMessage, prompt: "Commit message (blank for chore(release): v<version>):", text: true},
		}
	}
	return nil
}

type model struct {
	theme theme
	menu  list.Model
	input textinput.Model

	scr       screen
	action    Action
	questions []question
	current   int
	answers   answers
	errMsg    string

	selection Selection
}

func newModel() model {
	items := []list.Item{
		menuItem{ActionStatus, "Show services and pending changes"},
		menuItem{ActionSync, "Copy changed protocol files"},
		menuItem{ActionRelease, "Sync, validate, generate, bump and re-pin"},
		menuItem{ActionPublish, "Release, then commit, tag and push"},
		menuItem{ActionExit, "Leave interactive mode"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "protosync"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.CharLimit = 200

	return model{
		theme:     defaultTheme(),
		menu:      l,
		input:     ti,
		scr:       screenMenu,
		answers:   newAnswers(),
		selection: Selection{Action: ActionExit},
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.selection = Selection{Action: ActionExit}
			return m, tea.Quit
		}
		if m.scr == screenMenu {
			return m.updateMenu(msg)
		}
		return m.updateQuestion(msg)
	}

	if m.scr == screenMenu {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.currentQuestion().text {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.selection = Selection{Action: ActionExit}
		return m, tea.Quit

	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.action = it.action
		m.questions = questionsFor(it.action)
		m.answers = newAnswers()
		m.errMsg = ""
		if len(m.questions) == 0 {
			m.selection = Selection{Action: it.action}
			return m, tea.Quit
		}
		m.scr = screenQuestions
		m.current = -1
		return m.advance()
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.scr = screenMenu
		m.errMsg = ""
		m.input.Blur()
		return m, nil
	}

	q := m.currentQuestion()
	if q.text {
		if msg.Type != tea.KeyEnter {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		value := strings.TrimSpace(m.input.Value())
		if q.validate != nil {
			if err := q.validate(value); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
		}
		m.answers.text[q.key] = value
		return m.advance()
	}

	switch strings.ToLower(msg.String()) {
	case "enter":
		m.answers.yes[q.key] = q.def
	case "y":
		m.answers.yes[q.key] = true
	case "n":
		m.answers.yes[q.key] = false
	default:
		m.errMsg = "answer y or n"
		return m, nil
	}
	return m.advance()
}

// advance moves to the next applicable question or finishes.
func (m model) advance() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	for next := m.current + 1; next < len(m.questions); next++ {
		q := m.questions[next]
		if q.when != nil && !q.when(m.answers) {
			continue
		}
		m.current = next
		if q.text {
			m.input.Reset()
			m.input.Placeholder = ""
			return m, m.input.Focus()
		}
		m.input.Blur()
		return m, nil
	}

	sel, err := m.finish()
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.selection = sel
	return m, tea.Quit
}

func (m model) finish() (Selection, error) {
	switch m.action {
	case ActionSync:
		return Selection{Action: ActionSync, DryRun: m.answers.yes[keyDryRun]}, nil
	case ActionRelease, ActionPublish:
		codegen := m.answers.yes[keyCodegen]
		rc, err := pipeline.NewReleaseContext(pipeline.ReleaseParams{
			Version:         m.answers.text[keyVersion],
			DryRun:          m.answers.yes[keyDryRun],
			SkipValidation:  !m.answers.yes[keyValidate],
			SkipCodegen:     !codegen,
			SkipStubInstall: !codegen || !m.answers.yes[keyInstall],
			DependencySync:  m.answers.yes[keyDepSync],
			CommitMessage:   m.answers.text[keyCommitMessage],
		})
		if err != nil {
			return Selection{}, err
		}
		return Selection{Action: m.action, DryRun: rc.DryRun, Release: rc}, nil
	}
	return Selection{Action: m.action}, nil
}

func (m model) currentQuestion() question {
	if m.current < 0 || m.current >= len(m.questions) {
		return question{}
	}
	return m.questions[m.current]
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("protosync interactive mode") + "\n" +
		m.theme.Subtitle.Render("sync, release and publish protocol definitions") + "\n"

	if m.scr == screenMenu {
		help := m.theme.Help.Render("↑/↓ navigate • enter select • q quit")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)
	}

	q := m.currentQuestion()
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.action.String()) + "\n\n")
	if q.text {
		b.WriteString(m.theme.Prompt.Render(q.prompt) + "\n" + m.input.View())
	} else {
		suffix := "[y/N]"
		if q.def {
			suffix = "[Y/n]"
		}
		b.WriteString(m.theme.Prompt.Render(q.prompt) + " " + suffix)
	}
	if m.errMsg != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errMsg))
	}
	help := m.theme.Help.Render("enter confirm • esc back • ctrl+c quit")
	return wrap.Render(header + "\n" + m.theme.Card.Render(b.String()) + "\n" + help)
}
