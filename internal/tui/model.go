// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keydrill/internal/config"
	"keydrill/internal/content"
	"keydrill/internal/layout"
	"keydrill/internal/session"
	"keydrill/internal/store"
)

type screen int

const (
	screenPicker screen = iota
	screenPractice
	screenResults
)

type tickMsg time.Time

const tickInterval = 500 * time.Millisecond

// Model implements the Bubble Tea practice UI: profile selection, the
// timed drill and the results screen.
type Model struct {
	fileCfg  config.FileConfig
	store    *store.Store
	resolver *layout.Resolver

	screen screen
	width  int
	height int

	profiles []store.Profile
	cursor   int
	input    textinput.Model
	creating bool

	profile  store.Profile
	resolved config.Config
	engine   *session.Engine

	stats  session.DisplayStats
	result session.Result
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	passStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// NewModel constructs the practice TUI.
func NewModel(fileCfg config.FileConfig, st *store.Store, resolver *layout.Resolver) (*Model, error) {
	profiles, err := st.ListProfiles(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	input := textinput.New()
	input.Placeholder = "profile name"
	input.CharLimit = 32
	return &Model{
		fileCfg:  fileCfg,
		store:    st,
		resolver: resolver,
		screen:   screenPicker,
		profiles: profiles,
		input:    input,
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenPractice || m.engine == nil {
			return m, nil
		}
		m.stats = m.engine.Tick(time.Time(msg))
		if m.stats.Expired {
			m.finishDrill()
			return m, nil
		}
		return m, tickCmd()
	case tea.KeyMsg:
		switch m.screen {
		case screenPicker:
			return m.updatePicker(msg)
		case screenPractice:
			return m.updatePractice(msg)
		default:
			return m.updateResults(msg)
		}
	default:
		return m, nil
	}
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creating {
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEscape:
			m.creating = false
			m.input.Reset()
			return m, nil
		case tea.KeyEnter:
			name := strings.TrimSpace(strings.ToLower(m.input.Value()))
			if name == "" {
				return m, nil
			}
			m.creating = false
			m.input.Reset()
			return m.selectProfile(store.NewProfile(name))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		if len(m.profiles) == 0 {
			m.creating = true
			return m, m.input.Focus()
		}
		return m.selectProfile(m.profiles[m.cursor])
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j":
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
	case "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.creating = true
		return m, m.input.Focus()
	case "d":
		if len(m.profiles) > 0 {
			m.deleteProfile(m.profiles[m.cursor].Name)
		}
	}
	return m, nil
}

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEscape:
		m.finishDrill()
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.engine.Backspace()
		return m, nil
	case tea.KeyEnter:
		m.handleRune(ctx, '\n')
		return m, nil
	case tea.KeySpace:
		m.handleRune(ctx, ' ')
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.handleRune(ctx, r)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEscape:
		return m.backToPicker()
	case tea.KeyEnter:
		return m.startDrill()
	}
	switch msg.String() {
	case "q":
		return m.backToPicker()
	case "r":
		m.repeatLesson()
		return m.startDrill()
	case "m":
		m.cycleMode()
	case "h":
		m.toggleHardMode()
	case "b":
		m.profile.ShowKeyboard = !m.profile.ShowKeyboard
		m.saveProfile()
	case "f":
		m.profile.ShowFingers = !m.profile.ShowFingers
		m.saveProfile()
	case "s":
		m.profile.ShowStats = !m.profile.ShowStats
		m.saveProfile()
	}
	return m, nil
}

func (m *Model) handleRune(ctx context.Context, r rune) {
	if m.engine == nil {
		return
	}
	m.engine.HandleKeystroke(ctx, r, m.engine.KeyFor(r))
}

func (m *Model) selectProfile(p store.Profile) (tea.Model, tea.Cmd) {
	m.profile = p
	m.saveProfile()
	return m.startDrill()
}

func (m *Model) startDrill() (tea.Model, tea.Cmd) {
	m.resolved = config.Resolve(m.fileCfg, config.Overrides{
		Mode:     m.profile.Mode,
		HardMode: m.profile.HardMode,
	})
	mode, ok := content.ParseMode(m.resolved.Mode)
	if !ok {
		mode = content.ModeCurriculum
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	pipeline := content.NewPipeline(m.resolved, m.resolver, rnd)
	m.engine = session.New(m.resolved, mode, pipeline, m.resolver, m.profile.LessonIndex, m.profile.WPMRecord)
	m.engine.Start(context.Background())
	m.stats = session.DisplayStats{Remaining: m.resolved.Duration}
	m.screen = screenPractice
	return m, tickCmd()
}

func (m *Model) finishDrill() {
	if m.engine == nil {
		return
	}
	m.result = m.engine.End()
	m.profile.LessonIndex = m.result.LessonIndex
	if m.result.NewRecord {
		m.profile.WPMRecord = m.result.WPM
	}
	m.profile.TotalDrills++

	ctx := context.Background()
	_, err := m.store.RecordDrill(ctx, m.profile, store.Drill{
		Profile:     m.profile.Name,
		EndedAt:     time.Now().UTC(),
		Mode:        string(m.engine.Mode()),
		LessonIndex: m.result.LessonIndex,
		WPM:         m.result.WPM,
		Accuracy:    m.result.Accuracy,
		Passed:      m.result.Passed,
		DurationMs:  m.resolved.Duration.Milliseconds(),
	})
	if err != nil {
		logErrf("failed to save drill: %v\n", err)
	}
	m.screen = screenResults
}

func (m *Model) backToPicker() (tea.Model, tea.Cmd) {
	profiles, err := m.store.ListProfiles(context.Background())
	if err != nil {
		logErrf("failed to list profiles: %v\n", err)
	} else {
		m.profiles = profiles
	}
	m.cursor = 0
	m.engine = nil
	m.screen = screenPicker
	return m, nil
}

// repeatLesson steps back to the lesson the finished drill was practicing,
// undoing an advance when the drill passed.
func (m *Model) repeatLesson() {
	if m.result.AdvancedLesson && m.profile.LessonIndex > 0 {
		m.profile.LessonIndex--
		m.saveProfile()
	}
}

func (m *Model) cycleMode() {
	mode, ok := content.ParseMode(m.resolved.Mode)
	if !ok {
		mode = content.ModeCurriculum
	}
	switch mode {
	case content.ModeCurriculum:
		mode = content.ModeSentences
	case content.ModeSentences:
		mode = content.ModeCode
	default:
		mode = content.ModeCurriculum
	}
	m.profile.Mode = string(mode)
	m.resolved.Mode = string(mode)
	m.saveProfile()
}

func (m *Model) toggleHardMode() {
	hard := true
	if m.profile.HardMode != nil {
		hard = *m.profile.HardMode
	} else {
		hard = m.resolved.HardMode
	}
	hard = !hard
	m.profile.HardMode = &hard
	m.resolved.HardMode = hard
	m.saveProfile()
}

func (m *Model) saveProfile() {
	if err := m.store.SaveProfile(context.Background(), m.profile); err != nil {
		logErrf("failed to save profile: %v\n", err)
	}
}

func (m *Model) deleteProfile(name string) {
	ctx := context.Background()
	if err := m.store.DeleteProfile(ctx, name); err != nil {
		logErrf("failed to delete profile: %v\n", err)
		return
	}
	profiles, err := m.store.ListProfiles(ctx)
	if err != nil {
		logErrf("failed to list profiles: %v\n", err)
		return
	}
	m.profiles = profiles
	if m.cursor >= len(m.profiles) && m.cursor > 0 {
		m.cursor = len(m.profiles) - 1
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenPicker:
		return m.viewPicker()
	case screenPractice:
		return m.viewPractice()
	default:
		return m.viewResults()
	}
}

func (m *Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("keydrill"))
	b.WriteString("\n\n")
	if m.creating {
		b.WriteString("New profile:\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(headerStyle.Render("enter create · esc cancel"))
		return m.center(b.String())
	}
	if len(m.profiles) == 0 {
		b.WriteString("No profiles yet.\n\n")
		b.WriteString(headerStyle.Render("n or enter to create one · q quit"))
		return m.center(b.String())
	}
	for i, p := range m.profiles {
		line := fmt.Sprintf("%s  lesson %d · record %d WPM · %d drills", p.Name, p.LessonIndex+1, p.WPMRecord, p.TotalDrills)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(pendingStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("enter practice · n new · d delete · q quit"))
	return m.center(b.String())
}

func (m *Model) viewPractice() string {
	if m.engine == nil {
		return ""
	}
	chunk := m.engine.Chunk()
	typed := m.engine.Typed()
	cursorIndex := -1
	if m.engine.Index() < len(chunk.Text) {
		cursorIndex = m.engine.Index()
	}
	styledRunes := buildStyledRunes(chunk.Text, typed, cursorIndex)

	contentWidth := m.width * 70 / 100
	if contentWidth < 1 {
		contentWidth = 40
	}
	text := wrapStyledRunes(styledRunes, contentWidth)

	sections := []string{m.renderHeader(chunk), lipgloss.NewStyle().Width(contentWidth).Render(text)}
	if m.profile.ShowKeyboard {
		sections = append(sections, renderKeyboard(m.engine.ExpectedKey(), m.engine.ExpectedShift()))
	}
	if m.profile.ShowFingers {
		sections = append(sections, renderFingerGuide(m.engine.ExpectedKey()))
	}
	body := strings.Join(sections, "\n\n")
	return m.center(body)
}

func (m *Model) renderHeader(chunk content.Chunk) string {
	segments := []string{m.profile.Name}
	mode := m.engine.Mode()
	switch mode {
	case content.ModeCurriculum:
		segments = append(segments, m.engine.Lesson().Name)
	case content.ModeCode:
		if chunk.Language != "" {
			segments = append(segments, "code · "+chunk.Language)
		} else {
			segments = append(segments, "code")
		}
	default:
		segments = append(segments, string(mode))
	}
	if m.engine.HardMode() {
		segments = append(segments, "hard")
	} else {
		segments = append(segments, "soft")
	}
	segments = append(segments,
		fmt.Sprintf("%02d:%02d", int(m.stats.Remaining.Minutes()), int(m.stats.Remaining.Seconds())%60),
		fmt.Sprintf("%d WPM", m.stats.WPM),
		fmt.Sprintf("%d%%", m.stats.Accuracy),
	)
	return headerStyle.Render(strings.Join(segments, "  ·  "))
}

func (m *Model) viewResults() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Drill complete"))
	b.WriteString("\n\n")
	if m.profile.ShowStats {
		b.WriteString(fmt.Sprintf("WPM       %d\n", m.result.WPM))
		b.WriteString(fmt.Sprintf("Accuracy  %d%%\n", m.result.Accuracy))
		b.WriteString(fmt.Sprintf("Errors    %d\n", m.result.Errors))
		if m.engine != nil && m.engine.Mode() == content.ModeCurriculum {
			lesson := m.engine.Lesson()
			if m.result.Passed {
				b.WriteString(passStyle.Render("Lesson passed"))
				if m.result.AdvancedLesson {
					b.WriteString(passStyle.Render(" → " + lesson.Name))
				}
			} else {
				b.WriteString(failStyle.Render(fmt.Sprintf("Not yet: need %d WPM at %d%%", lesson.TargetWPM, lesson.TargetAccuracy)))
			}
			b.WriteString("\n")
		}
		if m.result.NewRecord {
			b.WriteString(passStyle.Render("New personal record!"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("mode %s · %s", m.resolved.Mode, m.hardLabel())))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("enter next · r repeat · m mode · h hard/soft · b keyboard · f fingers · s stats · esc profiles"))
	return m.center(b.String())
}

func (m *Model) hardLabel() string {
	if m.resolved.HardMode {
		return "hard mode"
	}
	return "soft mode"
}

func (m *Model) center(body string) string {
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
