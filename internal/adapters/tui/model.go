// Package tui renders the coin flip in a terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abdimannabov/CoinFlip/internal/domain"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

const (
	frameInterval = 33 * time.Millisecond
	coinWidth     = 16
	probeTimeout  = 15 * time.Second
)

// Flipper is the part of the flip sequencer the screen drives.
type Flipper interface {
	StartFlip() bool
	Snapshot() domain.Snapshot
	ReportImageError(cycleID string) bool
}

type frameMsg time.Time

type probeResultMsg struct {
	cycleID string
	err     error
}

// Model is the bubbletea model of the flip screen.
type Model struct {
	flipper  Flipper
	listener *Listener
	probe    ports.ImageProbe
	styles   Styles
	now      func() time.Time

	snap domain.Snapshot

	// Displayed coin angle, eased from spinFrom to snap.Rotation while
	// the coin spins.
	angle     float64
	spinFrom  float64
	spinStart time.Time
	spinning  bool
	spunCycle string
}

// NewModel builds the screen. probe may be nil to skip image checks.
func NewModel(f Flipper, l *Listener, probe ports.ImageProbe) Model {
	snap := f.Snapshot()
	return Model{
		flipper:  f,
		listener: l,
		probe:    probe,
		styles:   DefaultStyles(),
		now:      time.Now,
		snap:     snap,
		angle:    snap.Rotation,
	}
}

func (m Model) Init() tea.Cmd {
	return m.listener.Listen()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.listener.Close()
			return m, tea.Quit
		case " ", "enter", "f":
			m.flipper.StartFlip()
		case "r":
			if m.snap.Phase == domain.PhaseFailed {
				m.flipper.StartFlip()
			}
		}
		return m, nil

	case SnapshotMsg:
		return m.applySnapshot(domain.Snapshot(msg))

	case frameMsg:
		if !m.spinning {
			return m, nil
		}
		m.advanceSpin(time.Time(msg))
		if m.spinning {
			return m, frame()
		}
		return m, nil

	case probeResultMsg:
		if msg.err != nil {
			m.flipper.ReportImageError(msg.cycleID)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) applySnapshot(s domain.Snapshot) (tea.Model, tea.Cmd) {
	m.snap = s
	cmds := []tea.Cmd{m.listener.Listen()}

	switch s.Phase {
	case domain.PhaseFlipping:
		if s.CycleID != m.spunCycle {
			m.spunCycle = s.CycleID
			m.spinFrom = m.angle
			m.spinStart = m.now()
			m.spinning = true
			cmds = append(cmds, frame())
		}
	case domain.PhaseRevealed, domain.PhaseLoading, domain.PhaseSettled, domain.PhaseFailed:
		// The reveal happens after the spin; land exactly on the face.
		m.spinning = false
		m.angle = s.Rotation
	}

	if s.Phase == domain.PhaseSettled && s.Image != nil && m.probe != nil {
		cmds = append(cmds, probeImage(m.probe, s.CycleID, s.Image.URL))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) advanceSpin(at time.Time) {
	p := float64(at.Sub(m.spinStart)) / float64(domain.SpinDuration)
	if p >= 1 {
		m.angle = m.snap.Rotation
		m.spinning = false
		return
	}
	if p < 0 {
		p = 0
	}
	m.angle = m.spinFrom + (m.snap.Rotation-m.spinFrom)*easeInOut(p)
}

// easeInOut is the cubic curve CSS calls ease-in-out, closely enough.
func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := -2*p + 2
	return 1 - q*q*q/2
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func probeImage(p ports.ImageProbe, cycleID, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return probeResultMsg{cycleID: cycleID, err: p.Probe(ctx, url)}
	}
}

func (m Model) View() string {
	s := m.styles

	title := s.Title.Render("Coin Flip Pet Picker")

	coinPanel := s.Panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.Heading.Render("Coin"),
		m.renderCoin(),
		"",
		m.renderResult(),
		"",
		m.renderButton(),
	))

	petPanel := s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Heading.Render("Your Random Pet"),
		m.renderPet(),
	))

	help := s.Help.Render("Heads = Random Dog · Tails = Random Cat · space: flip · q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, petPanel, coinPanel),
		help,
	) + "\n"
}

// renderCoin draws the coin squeezed by the cosine of its angle, so it
// thins to an edge every half turn.
func (m Model) renderCoin() string {
	rad := m.angle * math.Pi / 180
	w := int(math.Round(math.Abs(math.Cos(rad)) * coinWidth))
	if w < 1 {
		return m.styles.CoinEdge.Width(1).Height(3).Render("")
	}

	face := "HEADS"
	if domain.FaceAt(m.angle) == domain.Tails {
		face = "TAILS"
	}
	if w < len(face) {
		face = ""
	}
	return m.styles.Coin.Width(w).Height(3).Render("\n" + face)
}

func (m Model) renderResult() string {
	s := m.styles
	switch {
	case m.snap.Phase == domain.PhaseFlipping:
		return s.Result.Render("Flipping...")
	case m.snap.Outcome != nil:
		return s.Result.Render(m.snap.Outcome.Label())
	default:
		return s.Dimmed.Render("Ready to flip!")
	}
}

func (m Model) renderButton() string {
	s := m.styles
	switch m.snap.Phase {
	case domain.PhaseFlipping:
		return s.Disabled.Render("Flipping...")
	case domain.PhaseRevealed, domain.PhaseLoading:
		return s.Disabled.Render("Loading...")
	default:
		return s.Button.Render("[space] Flip Coin")
	}
}

func (m Model) renderPet() string {
	s := m.styles
	switch m.snap.Phase {
	case domain.PhaseLoading:
		return s.Muted.Render("Loading your pet...")
	case domain.PhaseFailed:
		return strings.Join([]string{
			s.Error.Render(m.snap.Error),
			"",
			s.Button.Render("[r] Try Again"),
		}, "\n")
	case domain.PhaseSettled:
		if m.snap.Image == nil {
			break
		}
		return strings.Join([]string{
			s.Image.Render(m.snap.Image.URL),
			"",
			s.Greeting.Render(fmt.Sprintf("%s %s", petMark(m.snap.Image.Outcome), m.snap.Image.Outcome.Greeting())),
		}, "\n")
	case domain.PhaseFlipping:
		return s.Muted.Render("Flipping the coin...")
	}
	return s.Muted.Render("Flip the coin to see a pet!")
}

func petMark(o domain.Outcome) string {
	if o == domain.Heads {
		return "🐕"
	}
	return "🐱"
}
