package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelez/pitchnote/internal/scale"
)

// Constants for UI behavior
const (
	// How long a note needs to be present to be considered stable
	noteStabilityThreshold = 300 * time.Millisecond

	// How long to keep displaying a stable note after it changes
	noteDisplayDuration = 500 * time.Millisecond

	// Width of the cents meter in characters (odd, so the center is a cell)
	meterWidth = 41
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	inTuneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	offTuneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	// Note colors, keyed by the natural letter
	noteColors = map[string]string{
		"C": "#E8D6B0", // Beige
		"D": "#A020F0", // Purple
		"E": "#FFFF00", // Yellow
		"F": "#FFA500", // Orange
		"G": "#00FF00", // Green
		"A": "#FF0000", // Red
		"B": "#0000FF", // Blue
	}
)

// getNoteStyle returns a style for a note card. Sharps get split colors
// and are rendered separately in View.
func getNoteStyle(noteName string) lipgloss.Style {
	if strings.HasSuffix(noteName, "#") {
		return lipgloss.NewStyle().Bold(true).MarginBottom(1)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(noteColors[noteName])).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(2, 4).
		MarginBottom(1)
}

// getNextNote returns the next natural letter (for sharp note colors).
func getNextNote(note string) string {
	switch note {
	case "C":
		return "D"
	case "D":
		return "E"
	case "E":
		return "F"
	case "F":
		return "G"
	case "G":
		return "A"
	case "A":
		return "B"
	case "B":
		return "C"
	default:
		return "C"
	}
}

// reading is a matched note together with the raw detected frequency.
type reading struct {
	match     scale.Match
	frequency scale.Frequency
}

func (r reading) label() string {
	return fmt.Sprintf("%s%d", r.match.Note.Name(), r.match.Octave)
}

// Model represents the UI state.
type Model struct {
	current        *reading
	stable         *reading
	notesHistory   map[string]time.Time // when each note label was first seen
	stableNoteTime time.Time
	lastUpdated    time.Time
	rms            float32
	db             float32
	showLevels     bool
	width          int
	height         int
}

// NewModel creates a new UI model.
func NewModel(showLevels bool) Model {
	return Model{
		notesHistory: make(map[string]time.Time),
		lastUpdated:  time.Now(),
		showLevels:   showLevels,
		db:           -100,
	}
}

// Init initializes the UI model.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TickMsg represents a timer tick.
type TickMsg time.Time

// UpdateMatchMsg carries a fresh note match and the frequency it came from.
type UpdateMatchMsg struct {
	Match     scale.Match
	Frequency scale.Frequency
}

// ClearNoteMsg clears the displayed note (silence or detection failure).
type ClearNoteMsg struct{}

// UpdateAudioLevelMsg carries input level diagnostics.
type UpdateAudioLevelMsg struct {
	RMS float32
	DB  float32
}

// Update updates the UI model based on messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case UpdateAudioLevelMsg:
		m.rms = msg.RMS
		m.db = msg.DB

	case ClearNoteMsg:
		m.current = nil
		if m.stable != nil && time.Since(m.stableNoteTime) > noteDisplayDuration {
			m.stable = nil
		}

	case TickMsg:
		// Drop stale entries so a note must be re-held to count as stable.
		now := time.Now()
		for note, firstSeen := range m.notesHistory {
			if now.Sub(firstSeen) > 2*time.Second {
				delete(m.notesHistory, note)
			}
		}
		if m.current == nil && m.stable != nil && time.Since(m.stableNoteTime) > noteDisplayDuration {
			m.stable = nil
		}

		return m, tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})

	case UpdateMatchMsg:
		r := reading{match: msg.Match, frequency: msg.Frequency}
		m.current = &r

		label := r.label()
		if _, exists := m.notesHistory[label]; !exists {
			m.notesHistory[label] = time.Now()
		}

		// Promote to the stable slot once the note has been held long
		// enough; until then keep the previous stable note on screen to
		// avoid flicker.
		if time.Since(m.notesHistory[label]) >= noteStabilityThreshold {
			m.stable = &r
			m.stableNoteTime = time.Now()
		} else if m.stable != nil && r.label() == m.stable.label() {
			// Same note, fresher tuning data.
			m.stable = &r
			m.stableNoteTime = time.Now()
		}

		m.lastUpdated = time.Now()
	}

	return m, nil
}

// centsMeter renders a fixed-width tuning meter with the needle placed
// by the cents deviation, clamped to ±50.
func centsMeter(cents scale.Cents) string {
	deviation := float64(cents)
	if deviation > 50 {
		deviation = 50
	}
	if deviation < -50 {
		deviation = -50
	}

	center := meterWidth / 2
	pos := center + int(deviation/50*float64(center))

	var b strings.Builder
	for i := 0; i < meterWidth; i++ {
		switch {
		case i == pos:
			b.WriteString("●")
		case i == center:
			b.WriteString("|")
		default:
			b.WriteString("─")
		}
	}

	meter := b.String()
	if cents.InTune() {
		return inTuneStyle.Render(meter)
	}
	return offTuneStyle.Render(meter)
}

// View renders the UI.
func (m Model) View() string {
	s := titleStyle.Render("PitchNote - Instrument Tuner")
	s += "\n"

	// Prefer the stable note; fall back to the instantaneous one.
	r := m.stable
	if r == nil {
		r = m.current
	}

	if r != nil {
		noteName := r.match.Note.Name()
		noteText := fmt.Sprintf("%s%d", noteName, r.match.Octave)

		if strings.HasSuffix(noteName, "#") {
			// Sharps sit between two naturals; split the card colors.
			baseNote := string(noteName[0])
			nextNote := getNextNote(baseNote)

			baseColor := noteColors[baseNote]
			nextColor := noteColors[nextNote]

			leftStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color(baseColor)).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#333333")).
				BorderLeft(true).
				BorderTop(true).
				BorderBottom(true).
				BorderRight(false).
				PaddingLeft(2).
				PaddingRight(1).
				PaddingTop(2).
				PaddingBottom(2)

			rightStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color(nextColor)).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#333333")).
				BorderLeft(false).
				BorderTop(true).
				BorderBottom(true).
				BorderRight(true).
				PaddingLeft(1).
				PaddingRight(2).
				PaddingTop(2).
				PaddingBottom(2)

			s += leftStyle.Render(string(noteText[0])) + rightStyle.Render("#"+noteText[2:])
		} else {
			s += getNoteStyle(noteName).Render(noteText)
		}

		s += "\n"
		s += centsMeter(r.match.Cents)
		s += "\n"

		status := offTuneStyle.Render(fmt.Sprintf("%+.1f cents", float64(r.match.Cents)))
		if r.match.InTune() {
			status = inTuneStyle.Render("in tune")
		}
		info := fmt.Sprintf("Frequency: %.2f Hz | Target: %.2f Hz | %s",
			float64(r.frequency),
			float64(r.match.Frequency()),
			status)
		s += infoStyle.Render(info)
	} else {
		s += infoStyle.Render("Listening for audio...")
	}

	if m.showLevels {
		s += "\n"
		s += infoStyle.Render(fmt.Sprintf("Level: %.4f RMS | %.1f dB", m.rms, m.db))
	}

	s += "\n\n"
	s += infoStyle.Render("Press q to quit")

	return s
}
