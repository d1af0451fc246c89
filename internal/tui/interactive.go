package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SharonMathew4/StellarForge/internal/config"
	"github.com/SharonMathew4/StellarForge/internal/engine"
	"github.com/SharonMathew4/StellarForge/internal/metrics"
	"github.com/SharonMathew4/StellarForge/internal/universe"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	"orbit":     "two-body circular orbit",
	"binary":    "wide binary pair",
	"cluster":   "collapsing star cluster",
	"galaxy":    "disk around a black hole",
	"collision": "merging cloud",
}

type uiState int

const (
	stateMenu uiState = iota
	stateSim
)

type model struct {
	state   uiState
	cursor  int
	presets []string

	eng     *engine.Engine
	cfg     *config.Config
	simTime float64
	running bool
	paused  bool
	speed   int
	history []float64

	width  int
	height int
}

// NewInteractiveApp builds the preset-menu watch application.
func NewInteractiveApp() *model {
	presets := config.ListPresets()
	sort.Strings(presets)
	return &model{
		state:   stateMenu,
		presets: presets,
		speed:   1,
		history: make([]float64, 0, 60),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim || !m.running {
			return m, nil
		}
		if !m.paused {
			for i := 0; i < m.speed; i++ {
				m.eng.Step(float32(m.cfg.Dt))
				m.simTime += m.cfg.Dt
			}
			e := metrics.TotalEnergy(m.eng.System(), float32(m.cfg.G), float32(m.cfg.Softening))
			m.history = append(m.history, e)
			if len(m.history) > 60 {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter", " ":
			if err := m.start(m.presets[m.cursor]); err == nil {
				m.state = stateSim
				return m, tea.Batch(tea.ClearScreen, tick())
			}
		}
	case stateSim:
		switch msg.String() {
		case "q", "escape":
			m.running = false
			m.state = stateMenu
			return m, tea.ClearScreen
		case " ", "p":
			m.paused = !m.paused
		case "+", "=":
			if m.speed < 16 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "c":
			m.eng.EnableCollisions(true)
			m.cfg.Collisions = true
		}
	}
	return m, nil
}

func (m *model) start(preset string) error {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s", preset)
	}

	sys, err := universe.Generate(cfg.Distribution, cfg.Bodies, cfg.Scale, cfg.G, cfg.Seed)
	if err != nil {
		return err
	}

	eng := engine.New()
	if err := eng.Initialize(0, cfg.Backend); err != nil {
		return err
	}
	if err := eng.SetPositions(sys.Positions()); err != nil {
		return err
	}
	if err := eng.SetVelocities(sys.Velocities()); err != nil {
		return err
	}
	if err := eng.SetMasses(sys.Masses()); err != nil {
		return err
	}
	if err := eng.SetTypes(sys.Types()); err != nil {
		return err
	}
	eng.SetGravitationalConstant(float32(cfg.G))
	eng.SetSofteningLength(float32(cfg.Softening))
	eng.SetTheta(float32(cfg.Theta))
	eng.EnableCollisions(cfg.Collisions)

	cfg.Preset = preset
	m.eng = eng
	m.cfg = cfg
	m.simTime = 0
	m.speed = 1
	m.history = m.history[:0]
	m.running = true
	m.paused = false
	return nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("        " + cyan.Render("s t e l l a r f o r g e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	cw := m.width - 6
	ch := m.height - 10
	if cw < 50 {
		cw = 50
	}
	if ch < 12 {
		ch = 12
	}

	canvas := make([][]rune, ch)
	for i := range canvas {
		canvas[i] = make([]rune, cw)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	sys := m.eng.System()
	scale := m.cfg.Scale * 1.2
	for i := 0; i < sys.Len(); i++ {
		px := int((float64(sys.Pos[i][0])/scale + 1) * 0.5 * float64(cw-1))
		py := int((1 - (float64(sys.Pos[i][1])/scale+1)*0.5) * float64(ch-1))
		if px >= 0 && px < cw && py >= 0 && py < ch {
			canvas[py][px] = bumpDensity(canvas[py][px])
		}
	}

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.cfg.Preset), statusText,
		dim.Render(fmt.Sprintf("×%d", m.speed))))

	b.WriteString(fmt.Sprintf("   %s %s %s %s\n",
		dim.Render(fmt.Sprintf("t=%.3f", m.simTime)),
		dim.Render(fmt.Sprintf("n=%d", m.eng.ParticleCount())),
		dim.Render(fmt.Sprintf("step=%.2fms", m.eng.LastStepTimeMS())),
		dim.Render(fmt.Sprintf("backend=%s", m.eng.Backend()))))

	for _, row := range canvas {
		b.WriteString("   " + string(row) + "\n")
	}

	if len(m.history) > 1 {
		b.WriteString(fmt.Sprintf("\n   %s %s  %s\n",
			dim.Render("E"), magenta.Render(sparkline(m.history, 32)),
			white.Render(fmt.Sprintf("%.4f", m.history[len(m.history)-1]))))
	}

	b.WriteString("\n" + dim.Render("   space pause  ± speed  c collisions  q back") + "\n")

	return b.String()
}

func bumpDensity(c rune) rune {
	switch c {
	case ' ':
		return '·'
	case '·':
		return '∘'
	case '∘':
		return '○'
	default:
		return '●'
	}
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// RunInteractive starts the watch TUI.
func RunInteractive() error {
	p := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
