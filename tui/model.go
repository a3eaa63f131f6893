// Package tui is the interactive terminal front-end of arthik.
//
// The model only draws: every action is dispatched to the navigator in a
// command, and the views come back through the Bridge as messages.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/arthik"
	"github.com/etnz/arthik/controller"
	"github.com/etnz/arthik/nav"
	"github.com/etnz/arthik/session"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options tune the model.
type Options struct {
	// Style is the glamour style of the views. Empty follows the dark mode preference.
	Style string
}

var accents = map[string]lipgloss.Color{
	"purple": "#7C4DFF",
	"blue":   "#2196F3",
	"green":  "#4CAF50",
	"orange": "#FF9800",
	"pink":   "#E91E63",
	"teal":   "#009688",
}

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9800")).Bold(true)
)

type itemKind int

const (
	transactionItem itemKind = iota
	accountItem
	recurrenceItem
	noteItem
)

// item is a selectable row of the active view.
type item struct {
	kind itemKind
	id   string
}

// Model is the bubbletea model of the client.
type Model struct {
	ctx  context.Context
	nav  *nav.Navigator
	opts Options

	views   map[arthik.Tab]string
	body    viewport.Model
	login   textinput.Model
	help    help.Model
	md      *glamour.TermRenderer
	style   string
	wrap    int
	title   cases.Caser
	cursor  int
	busy    int
	expired string // message of the login view
	notice  *controller.Notice
	confirm *confirmMsg

	width, height int
}

// NewModel returns the model driving n. Actions run with ctx.
func NewModel(ctx context.Context, n *nav.Navigator, opts Options) *Model {
	login := textinput.New()
	login.Placeholder = "password"
	login.EchoMode = textinput.EchoPassword
	login.EchoCharacter = '•'
	login.Focus()

	body := viewport.New(80, 20)
	body.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	m := &Model{
		ctx:    ctx,
		nav:    n,
		opts:   opts,
		views:  make(map[arthik.Tab]string),
		body:   body,
		login:  login,
		help:   help.New(),
		title:  cases.Title(language.English),
		width:  80,
		height: 24,
	}
	m.syncStyle()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.run(func(ctx context.Context) {
		m.nav.Controllers().Session.Resume(ctx)
	}))
}

// run calls f out of the program loop.
func (m *Model) run(f func(context.Context)) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg {
		f(ctx)
		return doneMsg{}
	}
}

// do dispatches actions in order, out of the program loop.
func (m *Model) do(actions ...nav.Action) tea.Cmd {
	n := m.nav
	return m.run(func(ctx context.Context) {
		for _, a := range actions {
			n.Dispatch(ctx, a)
		}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height-4, 1)
		m.help.Width = msg.Width
		m.syncStyle()
		m.refresh()
		m.nav.Resized(max(msg.Width-8, 20))
		return m, nil

	case showMsg:
		m.views[msg.tab] = msg.content
		m.refresh()
		return m, nil

	case noticeMsg:
		n := controller.Notice(msg)
		m.notice = &n
		return m, nil

	case loginMsg:
		m.expired = msg.message
		m.cursor = 0
		clear(m.views)
		return m, m.login.Focus()

	case confirmMsg:
		m.confirm = &msg
		return m, nil

	case doneMsg:
		m.busy--
		m.syncStyle()
		m.clampCursor()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m, m.answer(msg)
		}
		if m.nav.Active() == arthik.TabLogin {
			return m, m.loginKey(msg)
		}
		return m, m.key(msg)
	}
	return m, nil
}

// answer replies to the pending confirmation.
func (m *Model) answer(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Yes):
		m.confirm.reply <- true
		m.confirm = nil
	case key.Matches(msg, keys.No):
		m.confirm.reply <- false
		m.confirm = nil
	case msg.String() == "ctrl+c":
		return m.quit()
	}
	return nil
}

func (m *Model) loginKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		password := m.login.Value()
		m.login.SetValue("")
		m.notice = nil
		return m.do(nav.Action{Kind: nav.Login, Text: password})
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return cmd
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	m.notice = nil
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()
	case key.Matches(msg, keys.Tab):
		tabs := arthik.Tabs()
		i := int(msg.String()[0] - '1')
		m.cursor = 0
		return m.do(nav.Action{Kind: nav.ShowTab, Tab: tabs[i]})
	case key.Matches(msg, keys.Next):
		m.cursor = 0
		return m.do(nav.Action{Kind: nav.NextTab})
	case key.Matches(msg, keys.Previous):
		m.cursor = 0
		return m.do(nav.Action{Kind: nav.PreviousTab})
	case key.Matches(msg, keys.NextPage):
		m.cursor = 0
		return m.do(nav.Action{Kind: nav.NextPage})
	case key.Matches(msg, keys.PrevPage):
		m.cursor = 0
		return m.do(nav.Action{Kind: nav.PreviousPage})
	case key.Matches(msg, keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, keys.Edit):
		if it, ok := m.selected(); ok {
			return m.do(nav.Action{Kind: editKinds[it.kind], ID: it.id})
		}
	case key.Matches(msg, keys.Cancel):
		return m.do(m.cancel()...)
	case key.Matches(msg, keys.Delete):
		if it, ok := m.selected(); ok {
			return m.do(nav.Action{Kind: deleteKinds[it.kind], ID: it.id})
		}
	case key.Matches(msg, keys.Apply):
		if it, ok := m.selected(); ok && it.kind == recurrenceItem {
			return m.do(nav.Action{Kind: nav.ApplyRecurrence, ID: it.id})
		}
	case key.Matches(msg, keys.Reload):
		return m.do(nav.Action{Kind: nav.Reload})
	case key.Matches(msg, keys.Hide):
		return m.do(nav.Action{Kind: nav.ToggleHideAmounts})
	case key.Matches(msg, keys.Dark):
		return m.do(nav.Action{Kind: nav.ToggleDarkMode})
	case key.Matches(msg, keys.Logout):
		return m.do(nav.Action{Kind: nav.Logout})
	default:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return cmd
	}
	return nil
}

var editKinds = map[itemKind]nav.Kind{
	transactionItem: nav.EditTransaction,
	accountItem:     nav.EditAccount,
	recurrenceItem:  nav.EditRecurrence,
	noteItem:        nav.EditNote,
}

var deleteKinds = map[itemKind]nav.Kind{
	transactionItem: nav.DeleteTransaction,
	accountItem:     nav.DeleteAccount,
	recurrenceItem:  nav.DeleteRecurrence,
	noteItem:        nav.DeleteNote,
}

func (m *Model) cancel() []nav.Action {
	switch m.nav.Active() {
	case arthik.TabLedger:
		return []nav.Action{{Kind: nav.CancelTransaction}}
	case arthik.TabAccounts:
		return []nav.Action{{Kind: nav.CancelAccount}}
	case arthik.TabPlanner:
		return []nav.Action{{Kind: nav.CancelRecurrence}, {Kind: nav.CancelNote}}
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	if m.confirm != nil {
		m.confirm.reply <- false
		m.confirm = nil
	}
	return tea.Quit
}

// items returns the selectable rows of the active view, in display order.
func (m *Model) items() []item {
	store := m.nav.Controllers().Env.Store
	var items []item
	switch m.nav.Active() {
	case arthik.TabLedger:
		for _, tx := range store.PageTransactions() {
			items = append(items, item{transactionItem, tx.ID})
		}
	case arthik.TabAccounts:
		accounts := store.Accounts()
		for _, category := range arthik.Categories() {
			for _, a := range accounts {
				if a.Category == category {
					items = append(items, item{accountItem, a.Name})
				}
			}
		}
	case arthik.TabPlanner:
		for _, r := range store.Recurrences() {
			items = append(items, item{recurrenceItem, r.ID})
		}
		for _, n := range store.Notes() {
			items = append(items, item{noteItem, n.ID})
		}
	}
	return items
}

func (m *Model) selected() (item, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	m.cursor = max(min(m.cursor, len(m.items())-1), 0)
}

// syncStyle rebuilds the markdown renderer when the style or the width changed.
func (m *Model) syncStyle() {
	style := m.opts.Style
	if style == "" {
		style = session.ThemeLight
		if m.nav.Controllers().Settings.Preferences().DarkMode {
			style = session.ThemeDark
		}
	}
	wrap := max(m.width-4, 20)
	if m.md != nil && style == m.style && wrap == m.wrap {
		return
	}
	md, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(wrap))
	if err != nil {
		m.nav.Controllers().Env.Logger.Error().Err(err).Str("style", style).Msg("cannot build markdown renderer")
		return
	}
	m.md, m.style, m.wrap = md, style, wrap
}

// refresh puts the active view in the body.
func (m *Model) refresh() {
	content := m.views[m.nav.Active()]
	if m.md != nil && content != "" {
		out, err := m.md.Render(content)
		if err != nil {
			m.nav.Controllers().Env.Logger.Warn().Err(err).Msg("cannot render view")
		} else {
			content = out
		}
	}
	m.body.SetContent(content)
}

func (m *Model) View() string {
	if m.nav.Active() == arthik.TabLogin {
		return m.loginView()
	}
	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *Model) accent() lipgloss.Color {
	if c, ok := accents[m.nav.Controllers().Settings.Preferences().Accent]; ok {
		return c
	}
	return accents[session.DefaultAccent]
}

func (m *Model) tabBar() string {
	active := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")).Background(m.accent())
	inactive := lipgloss.NewStyle().Padding(0, 1)
	var labels []string
	for i, tab := range arthik.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, m.title.String(string(tab)))
		if tab == m.nav.Active() {
			labels = append(labels, active.Render(label))
		} else {
			labels = append(labels, inactive.Render(label))
		}
	}
	if m.busy > 0 {
		labels = append(labels, dimStyle.Render("…"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func (m *Model) status() string {
	if m.confirm != nil {
		return promptStyle.Render(m.confirm.prompt + " [y/n]")
	}
	if m.notice != nil {
		return noticeLine(*m.notice)
	}
	if it, ok := m.selected(); ok {
		return dimStyle.Render("▸ " + it.id)
	}
	return ""
}

func noticeLine(n controller.Notice) string {
	switch n.Level {
	case controller.Success:
		return successStyle.Render(n.Message)
	case controller.Failure:
		return failureStyle.Render(n.Message)
	}
	return n.Message
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.accent()).Render("arthik"))
	b.WriteString("\n\n")
	if m.expired != "" {
		b.WriteString(failureStyle.Render(m.expired))
		b.WriteString("\n\n")
	}
	b.WriteString("Password: ")
	b.WriteString(m.login.View())
	b.WriteString("\n\n")
	if m.notice != nil {
		b.WriteString(noticeLine(*m.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("enter to login, esc to quit"))
	return b.String()
}

// Run runs the terminal front-end until the user quits. b must be the UI of
// the controllers of n.
func Run(ctx context.Context, n *nav.Navigator, b *Bridge, opts Options) error {
	defer n.Close()
	p := tea.NewProgram(NewModel(ctx, n, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	b.Attach(p)
	defer b.Detach()
	_, err := p.Run()
	return err
}
