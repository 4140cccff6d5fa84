// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI browses and votes on recommendations through the HTTP API:
//  1. [RecentView] : The most recently added recommendations
//  2. [TopView] : Recommendations ordered by score
//  3. [RandomView] : A single weighted-random pick
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All network calls run as [tea.Cmd] functions against a [Backend], so the model never blocks the render loop.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, u/d, o, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
