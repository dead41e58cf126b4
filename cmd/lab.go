package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/suderio/dicelab/internal/analysis"
	"github.com/suderio/dicelab/internal/dice"
	"github.com/suderio/dicelab/internal/game"
	"github.com/suderio/dicelab/internal/parser"
	"github.com/suderio/dicelab/internal/rules"
	"github.com/suderio/dicelab/internal/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

var labBaseCmds = []string{
	"die d6", "die faces: ", "weight ", "play ", "results wide",
	"results narrow", "analyze", "filter ", "state", "reset", "exit", "quit",
}

// labSession holds the interactive lab's mutable pipeline: the dice being
// tweaked, the game over them, and the filter registry.
type labSession struct {
	dice     []*dice.Die
	game     *game.Game
	registry *rules.Registry
	parser   *participle.Parser[parser.DieSpec]
}

func newLabSession() (*labSession, error) {
	registry, err := rules.NewRegistry()
	if err != nil {
		return nil, err
	}
	return &labSession{registry: registry, parser: parser.Build()}, nil
}

// Execute interprets one lab command and returns the text to log.
func (s *labSession) Execute(input string) string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "die":
		rest := strings.TrimSpace(strings.TrimPrefix(input, "die"))
		spec, err := s.parser.ParseString("", rest)
		if err != nil {
			return fmt.Sprintf("Error: %v", parser.MapError(rest, err))
		}
		d, err := spec.ToDie()
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		s.dice = append(s.dice, d)
		s.game = nil // face sets may have changed; rebuild on next play
		return fmt.Sprintf("Added die %d with %d faces.", len(s.dice), len(d.Faces()))

	case "weight":
		if len(fields) != 4 {
			return "Usage: weight <die#> <face> <weight>"
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil || idx < 1 || idx > len(s.dice) {
			return fmt.Sprintf("No die %q (have %d dice).", fields[1], len(s.dice))
		}
		w, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Sprintf("Weight %q is not a number.", fields[3])
		}
		if err := s.dice[idx-1].ChangeWeight(dice.Face(fields[2]), w); err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return fmt.Sprintf("Die %d face %s now weighs %v. Affects the next play.", idx, fields[2], w)

	case "play":
		if len(fields) != 2 {
			return "Usage: play <rolls>"
		}
		rolls, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Sprintf("Roll count %q is not a number.", fields[1])
		}
		if s.game == nil {
			if len(s.dice) == 0 {
				return "Add at least one die first (e.g. die d6)."
			}
			g, err := game.New(s.dice...)
			if err != nil {
				return fmt.Sprintf("Error: %v", err)
			}
			s.game = g
		}
		if err := s.game.Play(rolls); err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return fmt.Sprintf("Played %d roll-events across %d dice.", rolls, s.game.Dice())

	case "results":
		if s.game == nil {
			return "Nothing played yet."
		}
		form := game.FormWide
		if len(fields) > 1 {
			form = fields[1]
		}
		tbl, err := s.game.ShowResults(form)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		out := truncated(tbl, 15).Render()
		if tbl.Len() > 15 {
			out += fmt.Sprintf("\n... %d more rows", tbl.Len()-15)
		}
		return out

	case "analyze":
		if s.game == nil {
			return "Nothing played yet."
		}
		return s.analyze()

	case "filter":
		if s.game == nil {
			return "Nothing played yet."
		}
		expr := strings.TrimSpace(strings.TrimPrefix(input, "filter"))
		f, err := s.registry.Compile(expr)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		results, err := s.game.Results()
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		rows := make([][]string, len(results))
		for i, row := range results {
			cells := make([]string, len(row))
			for j, face := range row {
				cells[j] = string(face)
			}
			rows[i] = cells
		}
		n, err := f.CountMatches(rows)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return fmt.Sprintf("%d of %d roll-events match %s", n, len(rows), expr)

	case "state":
		return s.renderDice()

	case "reset":
		s.dice = nil
		s.game = nil
		return "Cleared all dice and results."
	}

	return fmt.Sprintf("Unknown command %q. Try: die, weight, play, results, analyze, filter, state, reset.", fields[0])
}

func (s *labSession) analyze() string {
	a, err := analysis.New(s.game)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	jackpots, flags, err := a.Jackpot()
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	combos, err := a.ComboCounts()
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	perms, err := a.PermuteCounts()
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jackpots: %d of %d roll-events\n", jackpots, len(flags)))
	sb.WriteString(tallyTable("Combination", combos, 5).Render())
	sb.WriteString("\n")
	sb.WriteString(tallyTable("Permutation", perms, 5).Render())
	return sb.String()
}

func (s *labSession) renderDice() string {
	if len(s.dice) == 0 {
		return "No dice yet."
	}
	var sb strings.Builder
	for i, d := range s.dice {
		state := d.ShowState()
		t := table.New(fmt.Sprintf("Die %d Face", i+1), "Weight")
		for _, f := range d.Faces() {
			t.Append(string(f), strconv.FormatFloat(state[f], 'g', -1, 64))
		}
		sb.WriteString(t.Render())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

type labModel struct {
	session     *labSession
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	showList    bool
}

func newLabModel(session *labSession) labModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., die d6)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	welcome := "Welcome to the dicelab bench!\nBuild dice, play, analyze. Type 'exit' to quit."
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	return labModel{
		session:     session,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
	}
}

func (m *labModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *labModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := len(items)
			if h > 10 {
				h = 10
			}
			listHeight := h
			if listHeight > 0 && listHeight < 4 {
				listHeight = 4
			}
			m.suggestions.SetHeight(listHeight)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}

	cmds := append([]string(nil), labBaseCmds...)

	// Face completion for "weight <die#> <prefix>"
	if strings.HasPrefix(val, "weight ") {
		parts := strings.Fields(val)
		if len(parts) >= 2 {
			if idx, err := strconv.Atoi(parts[1]); err == nil && idx >= 1 && idx <= len(m.session.dice) {
				faces := m.session.dice[idx-1].Faces()
				sorted := make([]string, len(faces))
				for i, f := range faces {
					sorted[i] = string(f)
				}
				sort.Strings(sorted)
				for _, f := range sorted {
					cmds = append(cmds, fmt.Sprintf("weight %d %s ", idx, f))
				}
			}
		}
	}

	for _, c := range cmds {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(val)) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}
}

func (m *labModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				m.logContent += m.session.Execute(val)

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30 // Initial conservative estimate
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *labModel) renderState() string {
	stateView := "=== Bench State ===\n\n"

	if len(m.session.dice) == 0 {
		stateView += "No dice on the bench."
	} else {
		for i, d := range m.session.dice {
			faces := d.Faces()
			state := d.ShowState()
			var biased []string
			for _, f := range faces {
				if state[f] != 1.0 {
					biased = append(biased, fmt.Sprintf("%s=%v", f, state[f]))
				}
			}
			line := fmt.Sprintf(" - Die %d: %d faces", i+1, len(faces))
			if len(biased) > 0 {
				line += fmt.Sprintf(" (weights %s)", strings.Join(biased, ", "))
			}
			stateView += line + "\n"
		}
	}

	stateView += "\n"
	if m.session.game != nil {
		if results, err := m.session.game.Results(); err == nil {
			stateView += fmt.Sprintf("Last play: %d roll-events recorded.", len(results))
		} else {
			stateView += "Game ready, nothing played yet."
		}
	} else {
		stateView += "No game yet."
	}

	return stateBoxStyle.Width(m.width - 4).Render(stateView)
}

func (m *labModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(" dicelab bench ")
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// labCmd represents the lab command
var labCmd = &cobra.Command{
	Use:   "lab",
	Short: "Start the interactive dice bench",
	Long: `Starts an interactive session for building weighted dice, playing
roll batches, and analyzing the outcomes live.
Usage:
	> die faces: 1 2 3 4 5 6 weights: 1 1 1 1 1 5
	> play 1000
	> analyze`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newLabSession()
		if err != nil {
			return fmt.Errorf("failed to bootstrap lab session: %w", err)
		}

		m := newLabModel(session)
		p := tea.NewProgram(&m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labCmd)
}
