package viz

import (
	"fmt"
	"iter"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/physics"
	"github.com/san-kum/popsim/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
	frameRate    = time.Second / 30
	maxSpeed     = 64
	tuneStep     = 1.05
)

type TickMsg time.Time

// LiveModel draws a run while pulling its samples from the lazy sequence.
// Quitting stops the integration without draining the rest.
type LiveModel struct {
	params    dynamo.Parameters
	model     *physics.Logistic
	paramKeys []string
	selected  int
	facts     analysis.Facts
	next      func() (dynamo.Sample, bool)
	stop      func()
	samples   []dynamo.Sample
	pops      []float64
	reason    dynamo.StopReason
	done      bool
	running   bool
	speed     int
	canvas    *Canvas
}

// NewLiveModel prepares a live view of params. Params must be valid.
func NewLiveModel(params dynamo.Parameters) *LiveModel {
	m := &LiveModel{
		params:    params,
		model:     physics.NewLogistic(params),
		paramKeys: []string{"r", "k"},
		running:   true,
		speed:     1,
		canvas:    NewCanvas(canvasWidth, canvasHeight),
	}
	m.restart()
	return m
}

func (m *LiveModel) restart() {
	if m.stop != nil {
		m.stop()
	}
	m.params = m.model.Apply(m.params)
	m.facts = analysis.Analyze(m.params)
	m.next, m.stop = iter.Pull(sim.Run(m.params))
	m.samples = nil
	m.pops = nil
	m.done = false
	m.reason = dynamo.Aborted
}

// Close releases the pulled sequence.
func (m *LiveModel) Close() {
	if m.stop != nil {
		m.stop()
	}
}

// Samples returns what has been pulled so far.
func (m *LiveModel) Samples() []dynamo.Sample { return m.samples }

// Done reports whether the sequence ended and why.
func (m *LiveModel) Done() (dynamo.StopReason, bool) { return m.reason, m.done }

// Advance pulls up to n samples. It returns false once the run has ended.
func (m *LiveModel) Advance(n int) bool {
	for i := 0; i < n && !m.done; i++ {
		s, ok := m.next()
		if !ok {
			m.finish()
			break
		}
		m.samples = append(m.samples, s)
		m.pops = append(m.pops, s.Population)
	}
	return !m.done
}

// Params returns the parameters of the current run.
func (m *LiveModel) Params() dynamo.Parameters { return m.params }

func (m *LiveModel) cycleParam() {
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected parameter and restarts from P0 with it.
func (m *LiveModel) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	if err := m.model.SetParam(key, m.model.GetParams()[key]*factor); err != nil {
		return
	}
	m.restart()
}

func (m *LiveModel) finish() {
	m.done = true
	m.reason = dynamo.Exhausted
	if n := len(m.samples); n > 0 && m.samples[n-1].Population >= m.params.SaturationLevel() {
		m.reason = dynamo.Saturated
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *LiveModel) Init() tea.Cmd {
	return tick()
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Close()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(tuneStep)
		case "down", "j":
			m.adjustParam(1 / tuneStep)
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.Advance(m.speed)
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) View() string {
	k := m.params.CarryingCapacity
	ymax := k
	if m.params.InitialPopulation > ymax {
		ymax = m.params.InitialPopulation
	}

	m.canvas.Clear()
	m.canvas.HLine(k, ymax*1.05)
	m.canvas.Trace(m.pops, m.params.Steps()+1, ymax*1.05)
	canvasView := graphStyle.Render(m.canvas.String())

	var cur dynamo.Sample
	if n := len(m.samples); n > 0 {
		cur = m.samples[n-1]
	}

	status := "RUNNING"
	switch {
	case m.done && m.reason == dynamo.Saturated:
		status = NoticeStyle.Render("SATURATED")
	case m.done:
		status = "FINISHED"
	case !m.running:
		status = WarnStyle.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("LOGISTIC GROWTH") + "\n")
	s.WriteString(status + fmt.Sprintf("  x%d\n\n", m.speed))
	s.WriteString(LabelStyle.Render("Time") + ValueStyle.Render(fmt.Sprintf("%.2f / %.2f", cur.Time, m.params.MaxTime)) + "\n")
	s.WriteString(LabelStyle.Render("Population") + ValueStyle.Render(fmt.Sprintf("%.2f", cur.Population)) + "\n")
	s.WriteString(LabelStyle.Render("Growth rate") + ValueStyle.Render(fmt.Sprintf("%.4f", cur.GrowthRate)) + "\n")
	s.WriteString(LabelStyle.Render("% of K") + ProgressBar(cur.PercentOfCapacity/100, 16) + ValueStyle.Render(fmt.Sprintf(" %.2f%%", cur.PercentOfCapacity)) + "\n\n")
	s.WriteString(LabelStyle.Render("Max growth") + ValueStyle.Render(fmt.Sprintf("%.4f at P = %.0f", m.facts.MaxGrowthRate, m.facts.MaxGrowthPopulation)) + "\n")
	if t, ok := m.facts.HalfCapacityTime(); ok {
		s.WriteString(LabelStyle.Render("Half capacity at") + ValueStyle.Render(fmt.Sprintf("t = %.2f", t)) + "\n")
	}
	s.WriteString("\nPARAMETERS\n")
	current := m.model.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-4s %.4g", k, current[k])
		if i == m.selected {
			s.WriteString(NoticeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + LabelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Restart +/-:Speed Q:Quit\nTab:Select ↑↓:Tune"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
}
