package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/singme/internal/client"
	"github.com/desertthunder/singme/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecsFetched MsgKind = iota
	MsgRandomFetched
	MsgVoted
	MsgOpened
)

type recsFetched struct {
	view ViewState
	recs []*models.Recommendation
	err  error
}

type randomFetched struct {
	rec *models.Recommendation
	err error
}

type voted struct {
	id     int64
	result *client.VoteResult
	err    error
}

// recsFetchedMsg is the constructor for [MsgRecsFetched]
func recsFetchedMsg(view ViewState, recs []*models.Recommendation, err error) Msg {
	return Msg{kind: MsgRecsFetched, data: recsFetched{view, recs, err}}
}

// randomFetchedMsg is the constructor for [MsgRandomFetched]
func randomFetchedMsg(rec *models.Recommendation, err error) Msg {
	return Msg{kind: MsgRandomFetched, data: randomFetched{rec, err}}
}

// votedMsg is the constructor for [MsgVoted]
func votedMsg(id int64, result *client.VoteResult, err error) Msg {
	return Msg{kind: MsgVoted, data: voted{id, result, err}}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(err error) Msg {
	return Msg{kind: MsgOpened, data: err}
}
