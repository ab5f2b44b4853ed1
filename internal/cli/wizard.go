package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxDigits bounds the size prompts; anything longer is far past any sane canvas.
const maxDigits = 5

type wizardStep int

const (
	stepMode wizardStep = iota
	stepWidth
	stepHeight
	stepDone
)

// wizardModel asks for whatever generate was not given on the command line:
// first the mode, then width and height.
type wizardModel struct {
	step     wizardStep
	askSize  bool
	cursor   int
	input    string
	errMsg   string
	canceled bool

	Mode   mondrian.Mode
	Width  int
	Height int
}

// newWizardModel creates a wizard. askMode and askSize select the prompts;
// at least one must be true.
func newWizardModel(askMode, askSize bool) wizardModel {
	m := wizardModel{askSize: askSize}
	if !askMode {
		m.step = stepWidth
	}
	return m
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.canceled = true
		return m, tea.Quit
	}

	if m.step == stepMode {
		return m.updateMode(key)
	}
	return m.updateSize(key)
}

func (m wizardModel) updateMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := key.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(mondrian.Modes)-1 {
			m.cursor++
		}
	case "1", "2", "enter":
		mode := mondrian.Modes[m.cursor]
		if s != "enter" {
			mode, _ = mondrian.ParseMode(s)
		}
		m.Mode = mode
		return m.advance()
	}
	return m, nil
}

func (m wizardModel) updateSize(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEnter:
		n, err := strconv.Atoi(m.input)
		if err != nil || n <= 0 {
			m.errMsg = "enter a positive number of pixels"
			return m, nil
		}
		if m.step == stepWidth {
			m.Width = n
		} else {
			m.Height = n
		}
		m.input = ""
		return m.advance()
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if r < '0' || r > '9' || len(m.input) >= maxDigits {
				return m, nil
			}
			m.input += string(r)
		}
		m.errMsg = ""
	}
	return m, nil
}

// advance moves to the next prompt and quits after the last one.
func (m wizardModel) advance() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case m.step == stepMode && m.askSize:
		m.step = stepWidth
	case m.step == stepWidth:
		m.step = stepHeight
	default:
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

func (m wizardModel) View() string {
	if m.step == stepDone || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Welcome to the Mondrian Art Generator!"))
	b.WriteString("\n\n")

	switch m.step {
	case stepMode:
		b.WriteString("Choose a style:\n")
		for i, mode := range mondrian.Modes {
			line := fmt.Sprintf("%d  %s", int(mode), mode)
			if i == m.cursor {
				b.WriteString(listSelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(listNormalStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  1/2 or ⏎ select  esc quit"))
	case stepWidth, stepHeight:
		name := "width"
		if m.step == stepHeight {
			name = "height"
		}
		fmt.Fprintf(&b, "Enter image %s (>= %dpx): %s", name, errors.RecommendedMinSize, StyleHighlight.Render(m.input+"█"))
		b.WriteString("\n\n")
		if m.errMsg != "" {
			b.WriteString(StyleWarning.Render(m.errMsg))
		} else {
			b.WriteString(listDimStyle.Render("digits  ⏎ confirm  esc quit"))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// runWizard runs the prompts on in/out and returns the answers.
// Quitting the wizard returns context.Canceled.
func runWizard(ctx context.Context, in io.Reader, out io.Writer, askMode, askSize bool) (wizardModel, error) {
	p := tea.NewProgram(newWizardModel(askMode, askSize),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return wizardModel{}, err
	}
	m := final.(wizardModel)
	if m.canceled {
		return m, context.Canceled
	}
	return m, nil
}
