package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/singme/internal/client"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/services"
	"github.com/desertthunder/singme/internal/shared"
)

// DefaultTopAmount is the number of recommendations shown in [TopView].
const DefaultTopAmount = 25

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RecentView ViewState = iota
	TopView
	RandomView
)

func (v ViewState) String() string {
	switch v {
	case RecentView:
		return "Recent"
	case TopView:
		return "Top"
	case RandomView:
		return "Random"
	default:
		return ""
	}
}

// Backend is the API surface the TUI drives. [*client.Client] satisfies it.
type Backend interface {
	Recent(ctx context.Context) ([]*models.Recommendation, error)
	Top(ctx context.Context, amount int) ([]*models.Recommendation, error)
	Random(ctx context.Context) (*models.Recommendation, error)
	Upvote(ctx context.Context, id int64) (*client.VoteResult, error)
	Downvote(ctx context.Context, id int64) (*client.VoteResult, error)
}

var _ Backend = (*client.Client)(nil)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	backend   Backend
	opener    func(string) error
	view      ViewState
	previous  ViewState
	topAmount int
	width     int
	height    int
	list      list.Model
	random    *models.Recommendation
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// Option configures a [Model].
type Option func(*Model)

// WithOpener replaces the function used to open links (default: [shared.OpenBrowser]).
func WithOpener(open func(string) error) Option {
	return func(m *Model) { m.opener = open }
}

// WithTopAmount sets how many recommendations [TopView] requests.
func WithTopAmount(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.topAmount = n
		}
	}
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, backend Backend, opts ...Option) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = RecentView.String()
	l.SetShowHelp(false)

	m := &Model{
		ctx:       ctx,
		backend:   backend,
		opener:    shared.OpenBrowser,
		view:      RecentView,
		topAmount: DefaultTopAmount,
		list:      l,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ViewState returns the active view.
func (m *Model) ViewState() ViewState { return m.view }

// Init loads the recent list.
func (m *Model) Init() tea.Cmd {
	return m.fetchList(RecentView)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRecsFetched:
		data := msg.data.(recsFetched)
		if data.view != m.view {
			return m, nil
		}
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.list.Title = m.listTitle()
		return m, m.list.SetItems(toItems(data.recs))

	case MsgRandomFetched:
		data := msg.data.(randomFetched)
		m.random = data.rec
		m.err = data.err
		if services.IsNotFound(data.err) {
			m.err = nil
			m.status = "No recommendations yet"
		}
		return m, nil

	case MsgVoted:
		return m.applyVote(msg.data.(voted))

	case MsgOpened:
		if err, _ := msg.data.(error); err != nil {
			m.status = styles.err.Render(fmt.Sprintf("could not open link: %v", err))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyVote(v voted) (tea.Model, tea.Cmd) {
	if v.err != nil {
		if services.IsNotFound(v.err) {
			m.status = styles.warn.Render("Recommendation no longer exists")
			return m, m.removeItem(v.id)
		}
		m.err = v.err
		return m, nil
	}

	rec := &v.result.Recommendation
	if v.result.Removed {
		m.status = styles.warn.Render(fmt.Sprintf("%q dropped below the threshold and was removed", rec.Name))
		if m.random != nil && m.random.ID == v.id {
			m.random = nil
		}
		return m, m.removeItem(v.id)
	}

	m.status = fmt.Sprintf("%s is now %s", rec.Name, formatScore(rec.Score))
	if m.random != nil && m.random.ID == v.id {
		m.random = rec
	}
	for i, item := range m.list.Items() {
		if it, ok := item.(recommendationItem); ok && it.rec.ID == v.id {
			return m, m.list.SetItem(i, recommendationItem{rec: rec})
		}
	}
	return m, nil
}

func (m *Model) removeItem(id int64) tea.Cmd {
	for i, item := range m.list.Items() {
		if it, ok := item.(recommendationItem); ok && it.rec.ID == id {
			m.list.RemoveItem(i)
			break
		}
	}
	return nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view != RandomView && m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.status = ""
		if m.view == RecentView {
			m.view = TopView
		} else {
			m.view = RecentView
		}
		return m, m.fetchList(m.view)
	case key.Matches(msg, m.keys.random):
		m.status = ""
		if m.view != RandomView {
			m.previous = m.view
		}
		m.view = RandomView
		return m, m.fetchRandom()
	case key.Matches(msg, m.keys.back):
		if m.view == RandomView {
			m.view = m.previous
			return m, m.fetchList(m.view)
		}
	case key.Matches(msg, m.keys.refresh):
		if m.view == RandomView {
			return m, m.fetchRandom()
		}
		return m, m.fetchList(m.view)
	case key.Matches(msg, m.keys.upvote):
		if rec := m.selected(); rec != nil {
			return m, m.vote(rec.ID, m.backend.Upvote)
		}
		return m, nil
	case key.Matches(msg, m.keys.downvote):
		if rec := m.selected(); rec != nil {
			return m, m.vote(rec.ID, m.backend.Downvote)
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if rec := m.selected(); rec != nil {
			return m, m.openLink(rec.Link)
		}
		return m, nil
	}

	if m.view == RandomView {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selected returns the recommendation the user is acting on.
func (m *Model) selected() *models.Recommendation {
	if m.view == RandomView {
		return m.random
	}
	if it, ok := m.list.SelectedItem().(recommendationItem); ok {
		return it.rec
	}
	return nil
}

func (m *Model) listTitle() string {
	if m.view == TopView {
		return fmt.Sprintf("Top %d", m.topAmount)
	}
	return RecentView.String()
}

func (m *Model) fetchList(view ViewState) tea.Cmd {
	return func() tea.Msg {
		var recs []*models.Recommendation
		var err error
		if view == TopView {
			recs, err = m.backend.Top(m.ctx, m.topAmount)
		} else {
			recs, err = m.backend.Recent(m.ctx)
		}
		return recsFetchedMsg(view, recs, err)
	}
}

func (m *Model) fetchRandom() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.backend.Random(m.ctx)
		return randomFetchedMsg(rec, err)
	}
}

func (m *Model) vote(id int64, fn func(context.Context, int64) (*client.VoteResult, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(m.ctx, id)
		return votedMsg(id, res, err)
	}
}

func (m *Model) openLink(link string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg(m.opener(link))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	if m.view == RandomView {
		b.WriteString(m.renderRandom())
	} else {
		b.WriteString(m.list.View())
	}

	if m.err != nil {
		b.WriteString("\n" + styles.err.Render(fmt.Sprintf("Error: %v", describe(m.err))))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}

	b.WriteString("\n\n" + m.help.ShortHelpView(m.helpKeys()))
	return b.String()
}

func (m *Model) renderRandom() string {
	title := styles.title.Render("Random Pick")
	if m.random == nil {
		return title + "\n" + styles.help.Render("Press r to draw again")
	}
	return fmt.Sprintf("%s\n%s\n%s\nScore: %s", title, m.random.Name, m.random.Link, formatScore(m.random.Score))
}

func (m *Model) helpKeys() []key.Binding {
	if m.view == RandomView {
		return []key.Binding{m.keys.upvote, m.keys.downvote, m.keys.open, m.keys.random, m.keys.back, m.keys.quit}
	}
	return []key.Binding{m.keys.upvote, m.keys.downvote, m.keys.open, m.keys.next, m.keys.random, m.keys.quit}
}

func describe(err error) string {
	var status *client.StatusError
	if errors.As(err, &status) && status.Message != "" {
		return status.Message
	}
	if errors.Is(err, shared.ErrServiceUnavailable) {
		return "server unreachable"
	}
	return err.Error()
}
