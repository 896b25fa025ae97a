// Package tui runs an assessment interactively in the terminal.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
	"github.com/dshills/fitcheck/internal/session"
)

// ErrAbandoned is returned by Run when the respondent quits before the results.
var ErrAbandoned = errors.New("tui: assessment abandoned")

const defaultWidth = 80

// Model is the Bubble Tea model for one walk-through.
type Model struct {
	sess   *session.Session
	engine *assessment.Engine
	log    *zap.Logger

	cursor    int
	width     int
	result    *assessment.Result
	err       error
	notice    string
	abandoned bool
}

// New returns a model positioned at the intro of sess.
func New(sess *session.Session, engine *assessment.Engine, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{sess: sess, engine: engine, log: log, width: defaultWidth}
}

// Result returns the evaluation once the walk-through has reached the results.
func (m Model) Result() *assessment.Result { return m.result }

// Abandoned reports whether the respondent quit before the results.
func (m Model) Abandoned() bool { return m.abandoned }

// Err returns the evaluation error, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		m.abandoned = m.result == nil
		return m, tea.Quit
	}

	switch m.sess.Stage() {
	case session.StageIntro:
		switch key {
		case "enter", "space", " ":
			if err := m.sess.Start(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.log.Debug("session started", zap.String("session", m.sess.ID))
		case "q", "esc":
			m.abandoned = true
			return m, tea.Quit
		}
		return m, nil
	case session.StageResults:
		switch key {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}
	return m.handleQuestionKey(key)
}

func (m Model) handleQuestionKey(key string) (tea.Model, tea.Cmd) {
	sec, cat := m.sess.Section(), m.sess.Category()
	answers := m.sess.Answers()
	m.notice = ""

	switch key {
	case "q", "esc":
		m.abandoned = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(cat.Questions)-1 {
			m.cursor++
		}
	case "left":
		m.step(sec, cat, answers[m.cursor], -1)
	case "right":
		m.step(sec, cat, answers[m.cursor], +1)
	case "enter":
		return m.advance()
	default:
		if v, ok := keyValue(sec.Kind, key); ok {
			if err := m.sess.Answer(m.cursor, v); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			if m.cursor < len(cat.Questions)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

// step moves the current question's answer one position along its scale.
func (m *Model) step(sec *instrument.Section, cat *instrument.Category, current, delta int) {
	lo, hi := int(assessment.MinLikert), int(assessment.MaxLikert)
	if sec.Kind == instrument.KindChoice {
		lo, hi = 0, len(cat.Questions[m.cursor].Options)-1
	}
	next := current + delta
	if current < lo {
		// Unanswered: start from the end the key points at.
		next = lo
		if delta < 0 {
			next = hi
		}
	}
	next = max(lo, min(next, hi))
	if err := m.sess.Answer(m.cursor, next); err != nil {
		m.notice = err.Error()
	}
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if !m.sess.CanProceed() {
		m.notice = "Answer every question to continue."
		return m, nil
	}
	if err := m.sess.Next(); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.cursor = 0
	if m.sess.Stage() != session.StageResults {
		return m, nil
	}

	rec, err := m.sess.Record()
	if err == nil {
		m.result, err = m.engine.Evaluate(rec)
	}
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.result.AssessmentID = m.sess.ID
	m.log.Debug("session complete",
		zap.String("session", m.sess.ID),
		zap.Int("overall", m.result.Overall),
		zap.String("recommendation", string(m.result.Recommendation)))
	return m, nil
}

// keyValue maps a digit (Likert) or letter (choice) key onto an answer value.
func keyValue(kind instrument.Kind, key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	if kind == instrument.KindChoice {
		if c >= 'a' && c <= 'h' {
			return int(c - 'a'), true
		}
		return 0, false
	}
	if c >= '1' && c <= '5' {
		return int(c - '0'), true
	}
	return 0, false
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var content string
	switch m.sess.Stage() {
	case session.StageIntro:
		content = m.introView()
	case session.StageResults:
		content = m.resultsView()
	default:
		content = m.questionView()
	}
	v.SetContent(content)
	return v
}

func (m Model) introView() string {
	inst := m.sess.Instrument()
	var b strings.Builder
	b.WriteString(titleStyle.Render(inst.Title) + "\n")
	if inst.Tagline != "" {
		b.WriteString(subtitleStyle.Render(inst.Tagline) + "\n")
	}
	b.WriteString("\n" + bodyStyle.Width(m.contentWidth()).Render(strings.TrimSpace(inst.Description)) + "\n")

	if len(inst.CareerOutcomes) > 0 {
		b.WriteString("\n" + selectedStyle.Render("Career outcomes") + "\n")
		for _, c := range inst.CareerOutcomes {
			b.WriteString(bodyStyle.Render("  • "+c) + "\n")
		}
	}
	if len(inst.SuccessTraits) > 0 {
		b.WriteString("\n" + selectedStyle.Render("Key success traits") + "\n")
		for _, s := range inst.SuccessTraits {
			b.WriteString(bodyStyle.Render("  • "+s) + "\n")
		}
	}
	b.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf("%d questions, about %s", inst.QuestionCount(), inst.Duration)) + "\n")
	b.WriteString("\n" + hintStyle.Render("enter: start  q: quit"))
	return b.String()
}

func (m Model) questionView() string {
	sec, cat := m.sess.Section(), m.sess.Category()
	answers := m.sess.Answers()

	var b strings.Builder
	b.WriteString(progressBar(m.sess.Stage().String(), m.sess.Progress(), m.contentWidth()) + "\n\n")
	b.WriteString(titleStyle.Render(sec.Title) + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (%d of %d)", cat.Title, m.sess.CategoryIndex()+1, len(sec.Categories))) + "\n\n")

	rows := make([]string, len(cat.Questions))
	for i, q := range cat.Questions {
		if sec.Kind == instrument.KindChoice {
			rows[i] = choiceRow(q, i+1, answers[i], i == m.cursor)
		} else {
			rows[i] = likertRow(q, i+1, answers[i], i == m.cursor, sec.Scale)
		}
	}
	b.WriteString(strings.Join(rows, "\n\n") + "\n\n")

	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice) + "\n")
	}
	hint := "↑↓: question  1-5: rate  ←→: adjust  enter: next  q: quit"
	if sec.Kind == instrument.KindChoice {
		hint = "↑↓: question  a-d: choose  ←→: adjust  enter: next  q: quit"
	}
	b.WriteString(hintStyle.Render(hint))
	return b.String()
}

func (m Model) resultsView() string {
	if m.result == nil {
		return errorStyle.Render("No result available.")
	}
	r := m.result
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your assessment results") + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n\n",
		bodyStyle.Bold(true).Render(fmt.Sprintf("Overall %d%%", r.Overall)),
		recommendationStyle(r.Recommendation).Render(string(r.Recommendation))))
	for _, sec := range r.Sections {
		b.WriteString(progressBar(fmt.Sprintf("%-24s", sec.Title), float64(sec.Score)/100, m.contentWidth()) + "\n")
	}
	card := selectedStyle.Render(r.Guidance.Headline) + "\n\n" +
		bodyStyle.Width(m.contentWidth()-6).Render(r.Guidance.Narrative)
	b.WriteString("\n" + cardStyle.Render(card) + "\n\n")
	b.WriteString(hintStyle.Render("enter: show full report"))
	return b.String()
}

func (m Model) contentWidth() int {
	return max(40, min(m.width, 100))
}

// Run drives sess to completion and returns the evaluated result.
func Run(sess *session.Session, engine *assessment.Engine, log *zap.Logger) (*assessment.Result, error) {
	final, err := tea.NewProgram(New(sess, engine, log)).Run()
	if err != nil {
		return nil, fmt.Errorf("tui.Run: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("tui.Run: unexpected model %T", final)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.abandoned || m.result == nil {
		return nil, ErrAbandoned
	}
	return m.result, nil
}
