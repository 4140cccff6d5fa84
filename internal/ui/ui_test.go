package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/singme/internal/client"
	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/services"
)

type fakeBackend struct {
	recent    []*models.Recommendation
	top       []*models.Recommendation
	random    *models.Recommendation
	randomErr error
	vote      *client.VoteResult
	voteErr   error
	upvoted   []int64
	downvoted []int64
	topAmount int
}

func (f *fakeBackend) Recent(ctx context.Context) ([]*models.Recommendation, error) {
	return f.recent, nil
}

func (f *fakeBackend) Top(ctx context.Context, amount int) ([]*models.Recommendation, error) {
	f.topAmount = amount
	return f.top, nil
}

func (f *fakeBackend) Random(ctx context.Context) (*models.Recommendation, error) {
	return f.random, f.randomErr
}

func (f *fakeBackend) Upvote(ctx context.Context, id int64) (*client.VoteResult, error) {
	f.upvoted = append(f.upvoted, id)
	return f.vote, f.voteErr
}

func (f *fakeBackend) Downvote(ctx context.Context, id int64) (*client.VoteResult, error) {
	f.downvoted = append(f.downvoted, id)
	return f.vote, f.voteErr
}

func rec(id int64, name string, score int) *models.Recommendation {
	return &models.Recommendation{ID: id, Name: name, Link: "https://youtu.be/" + name, Score: score}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and then runs any resulting command once, feeding its message back.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return
	}
	if next, ok := cmd().(Msg); ok {
		m.Update(next)
	}
}

func setupModel(t *testing.T, backend *fakeBackend, opts ...Option) *Model {
	t.Helper()
	m := NewModel(context.Background(), backend, opts...)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if next, ok := m.Init()().(Msg); ok {
		m.Update(next)
	}
	return m
}

func TestModel(t *testing.T) {
	t.Run("Init loads recent recommendations", func(t *testing.T) {
		backend := &fakeBackend{recent: []*models.Recommendation{rec(2, "second", 0), rec(1, "first", 3)}}
		m := setupModel(t, backend)

		if m.ViewState() != RecentView {
			t.Errorf("expected RecentView, got %v", m.ViewState())
		}
		if got := len(m.list.Items()); got != 2 {
			t.Fatalf("expected 2 items, got %d", got)
		}
		if !strings.Contains(m.View(), "second") {
			t.Errorf("expected view to list recommendations, got:\n%s", m.View())
		}
	})

	t.Run("tab toggles recent and top", func(t *testing.T) {
		backend := &fakeBackend{top: []*models.Recommendation{rec(1, "best", 9)}}
		m := setupModel(t, backend, WithTopAmount(5))

		send(t, m, keyPress("tab"))

		if m.ViewState() != TopView {
			t.Fatalf("expected TopView, got %v", m.ViewState())
		}
		if backend.topAmount != 5 {
			t.Errorf("expected Top(5), got Top(%d)", backend.topAmount)
		}
		if got := len(m.list.Items()); got != 1 {
			t.Errorf("expected 1 item, got %d", got)
		}

		send(t, m, keyPress("tab"))
		if m.ViewState() != RecentView {
			t.Errorf("expected RecentView after second tab, got %v", m.ViewState())
		}
	})

	t.Run("stale list responses are ignored", func(t *testing.T) {
		m := setupModel(t, &fakeBackend{})
		m.Update(recsFetchedMsg(TopView, []*models.Recommendation{rec(1, "late", 0)}, nil))

		if got := len(m.list.Items()); got != 0 {
			t.Errorf("expected response for another view to be dropped, got %d items", got)
		}
	})

	t.Run("upvote updates selected item", func(t *testing.T) {
		updated := rec(1, "first", 4)
		backend := &fakeBackend{
			recent: []*models.Recommendation{rec(1, "first", 3)},
			vote:   &client.VoteResult{Recommendation: *updated},
		}
		m := setupModel(t, backend)

		send(t, m, keyPress("u"))

		if len(backend.upvoted) != 1 || backend.upvoted[0] != 1 {
			t.Fatalf("expected upvote for id 1, got %v", backend.upvoted)
		}
		item := m.list.Items()[0].(recommendationItem)
		if item.rec.Score != 4 {
			t.Errorf("expected score 4, got %d", item.rec.Score)
		}
	})

	t.Run("downvote removal drops item", func(t *testing.T) {
		backend := &fakeBackend{
			recent: []*models.Recommendation{rec(1, "doomed", -5), rec(2, "other", 0)},
			vote:   &client.VoteResult{Recommendation: *rec(1, "doomed", -6), Removed: true},
		}
		m := setupModel(t, backend)

		send(t, m, keyPress("d"))

		if len(backend.downvoted) != 1 {
			t.Fatalf("expected one downvote, got %v", backend.downvoted)
		}
		if got := len(m.list.Items()); got != 1 {
			t.Errorf("expected removed item to leave the list, got %d items", got)
		}
		if !strings.Contains(m.status, "removed") {
			t.Errorf("expected removal status, got %q", m.status)
		}
	})

	t.Run("vote on missing recommendation", func(t *testing.T) {
		backend := &fakeBackend{
			recent:  []*models.Recommendation{rec(7, "gone", 0)},
			voteErr: services.NotFoundError("", models.ErrNotFound),
		}
		m := setupModel(t, backend)

		send(t, m, keyPress("u"))

		if m.err != nil {
			t.Errorf("not found should not be surfaced as an error, got %v", m.err)
		}
		if got := len(m.list.Items()); got != 0 {
			t.Errorf("expected missing item removed, got %d items", got)
		}
	})

	t.Run("random view", func(t *testing.T) {
		pick := rec(3, "lucky", 12)
		backend := &fakeBackend{random: pick}
		m := setupModel(t, backend)

		send(t, m, keyPress("r"))

		if m.ViewState() != RandomView {
			t.Fatalf("expected RandomView, got %v", m.ViewState())
		}
		if !strings.Contains(m.View(), "lucky") {
			t.Errorf("expected random pick in view, got:\n%s", m.View())
		}

		send(t, m, keyPress("esc"))
		if m.ViewState() != RecentView {
			t.Errorf("expected esc to return to RecentView, got %v", m.ViewState())
		}
	})

	t.Run("random with no recommendations", func(t *testing.T) {
		backend := &fakeBackend{randomErr: services.NotFoundError("", models.ErrNotFound)}
		m := setupModel(t, backend)

		send(t, m, keyPress("r"))

		if m.err != nil {
			t.Errorf("expected no error, got %v", m.err)
		}
		if !strings.Contains(m.View(), "No recommendations yet") {
			t.Errorf("expected empty notice, got:\n%s", m.View())
		}
	})

	t.Run("open uses opener", func(t *testing.T) {
		var opened string
		backend := &fakeBackend{recent: []*models.Recommendation{rec(1, "song", 0)}}
		m := setupModel(t, backend, WithOpener(func(link string) error {
			opened = link
			return errors.New("no browser")
		}))

		send(t, m, keyPress("o"))

		if opened != "https://youtu.be/song" {
			t.Errorf("expected link to be opened, got %q", opened)
		}
		if !strings.Contains(m.status, "no browser") {
			t.Errorf("expected opener error in status, got %q", m.status)
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := setupModel(t, &fakeBackend{})
		_, cmd := m.Update(keyPress("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})

	t.Run("server errors are shown", func(t *testing.T) {
		m := setupModel(t, &fakeBackend{})
		m.Update(votedMsg(1, nil, &client.StatusError{StatusCode: 500, Type: "internal", Message: "internal server error"}))

		if !strings.Contains(m.View(), "internal server error") {
			t.Errorf("expected error message in view, got:\n%s", m.View())
		}
	})
}

func TestViewStateString(t *testing.T) {
	for view, want := range map[ViewState]string{RecentView: "Recent", TopView: "Top", RandomView: "Random", ViewState(9): ""} {
		if got := view.String(); got != want {
			t.Errorf("ViewState(%d).String() = %q, want %q", view, got, want)
		}
	}
}
