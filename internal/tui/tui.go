// Package tui is the interactive front end: a folder pane beside an item
// pane over one shared store. Keys that change anything call the store's
// mutators; the panes redraw when the store notifies its observers, so the
// screen always shows what was just persisted.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/maelko/binder/internal/cli"
	"github.com/maelko/binder/internal/model"
	"github.com/maelko/binder/internal/store"
)

// refreshMsg carries the snapshot the store hands its observers.
type refreshMsg struct {
	collection model.Collection
}

type pane int

const (
	folderPane pane = iota
	itemPane
)

// inputBarHeight is the rows the inline input takes, border included.
const inputBarHeight = 4

// folderEntry adapts a folder to the bubbles list item interface.
type folderEntry struct {
	folder model.Folder
}

func (e folderEntry) Title() string       { return e.folder.Name }
func (e folderEntry) Description() string { return "" }
func (e folderEntry) FilterValue() string { return e.folder.Name }

// itemEntry adapts an item to the bubbles list item interface.
type itemEntry struct {
	item model.Item
}

func (e itemEntry) Title() string       { return e.item.Title }
func (e itemEntry) Description() string { return "" }
func (e itemEntry) FilterValue() string { return e.item.Title }

// Delegates render entries on a single line so both panes stay aligned.
type folderDelegate struct{}

func (d folderDelegate) Height() int                               { return 1 }
func (d folderDelegate) Spacing() int                              { return 0 }
func (d folderDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d folderDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(folderEntry)
	if !ok {
		return
	}

	done, pending := e.folder.Counts()
	line := fmt.Sprintf("%s %s", e.folder.Name, mutedStyle.Render(fmt.Sprintf("%d/%d", done, done+pending)))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, clip(prefix+line, m.Width()))
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(itemEntry)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	title := e.item.Title
	if e.item.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, clip(prefix+box+" "+title, m.Width()))
}

// clip keeps a delegate line on one row so the pane layout holds.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return cli.Truncate(s, width)
}

// Model is the two-pane browser state.
type Model struct {
	st *store.Store

	folders list.Model
	items   list.Model
	focus   pane

	adding   bool
	input    textinput.Model
	inputErr string

	width  int
	height int
}

// New builds the initial model over st, seeded with the store's current
// folders. Run wires up the refresh messages; tests feed them by hand.
func New(st *store.Store) Model {
	m := Model{
		st:      st,
		folders: newPaneList("Folders", folderDelegate{}),
		items:   newPaneList("Items", itemDelegate{}),
		input:   textinput.New(),
	}
	m.input.Prompt = "> "
	m.input.CharLimit = 200
	m.setCollection(st.Folders())
	return m
}

func newPaneList(title string, delegate list.ItemDelegate) list.Model {
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = helpStyle
	return l
}

// Run opens the interactive browser over st and blocks until the user
// quits. Every change made on screen goes through the store like any other
// caller's, so the stored blob is always current.
func Run(st *store.Store) error {
	p := tea.NewProgram(New(st), tea.WithAltScreen())

	// The store notifies observers synchronously from inside the mutating
	// call, which here is the program's own update loop. Forward the
	// snapshot from a separate goroutine so Send cannot block on it.
	cancel := st.Subscribe(func(c model.Collection) {
		go p.Send(refreshMsg{collection: c})
	})
	defer cancel()

	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case refreshMsg:
		m.setCollection(msg.collection)
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		case "left", "h":
			m.focus = folderPane
			return m, nil
		case "right", "l":
			m.focus = itemPane
			return m, nil
		case "enter":
			if m.focus == folderPane {
				m.focus = itemPane
				return m, nil
			}
			m.toggleSelected()
			return m, nil
		case " ":
			if m.focus == itemPane {
				m.toggleSelected()
			}
			return m, nil
		case "a":
			return m.startAdding()
		case "d":
			m.deleteSelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == folderPane {
		index := m.folders.Index()
		m.folders, cmd = m.folders.Update(msg)
		if m.folders.Index() != index {
			m.reloadItems()
		}
	} else {
		m.items, cmd = m.items.Update(msg)
	}
	return m, cmd
}

// updateAdding handles keys while the inline input is open.
func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.inputErr = "cannot be empty"
				return m, nil
			}
			if m.focus == itemPane {
				if f, ok := m.selectedFolder(); ok {
					m.st.AddItem(f.ID, text)
				}
			} else {
				m.st.AddFolder(text)
			}
			m.closeInput()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startAdding() (tea.Model, tea.Cmd) {
	if m.focus == itemPane {
		if _, ok := m.selectedFolder(); !ok {
			return m, nil
		}
		m.input.Placeholder = "New item title..."
	} else {
		m.input.Placeholder = "New folder name..."
	}
	m.adding = true
	m.inputErr = ""
	m.input.SetValue("")
	m.resize()
	return m, m.input.Focus()
}

func (m *Model) closeInput() {
	m.adding = false
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m *Model) toggleFocus() {
	if m.focus == folderPane {
		m.focus = itemPane
	} else {
		m.focus = folderPane
	}
}

func (m Model) toggleSelected() {
	f, ok := m.selectedFolder()
	if !ok {
		return
	}
	if e, ok := m.items.SelectedItem().(itemEntry); ok {
		m.st.ToggleItem(f.ID, e.item.ID)
	}
}

func (m Model) deleteSelected() {
	if m.focus == folderPane {
		if _, ok := m.selectedFolder(); ok {
			m.st.RemoveFolders(m.folders.Index())
		}
		return
	}
	f, ok := m.selectedFolder()
	if !ok {
		return
	}
	if _, ok := m.items.SelectedItem().(itemEntry); ok {
		m.st.RemoveItems(f.ID, m.items.Index())
	}
}

// setCollection replaces both panes with a fresh snapshot. The folder
// selection follows its id when it survives the change, otherwise the
// cursor is clamped into range.
func (m *Model) setCollection(c model.Collection) {
	var selectedID string
	if f, ok := m.selectedFolder(); ok {
		selectedID = f.ID
	}

	index := m.folders.Index()
	entries := make([]list.Item, len(c))
	for i, f := range c {
		entries[i] = folderEntry{folder: f}
		if f.ID == selectedID {
			index = i
		}
	}
	if index >= len(c) {
		index = len(c) - 1
	}
	if index < 0 {
		index = 0
	}

	m.folders.SetItems(entries)
	if len(entries) > 0 {
		m.folders.Select(index)
	}
	m.reloadItems()
}

// reloadItems fills the item pane from the selected folder.
func (m *Model) reloadItems() {
	f, ok := m.selectedFolder()
	if !ok {
		m.items.Title = "Items"
		m.items.SetItems(nil)
		return
	}

	index := m.items.Index()
	entries := make([]list.Item, len(f.Items))
	for i, it := range f.Items {
		entries[i] = itemEntry{item: it}
	}
	m.items.Title = f.Name
	m.items.SetItems(entries)
	if len(entries) == 0 {
		return
	}
	if index >= len(entries) {
		index = len(entries) - 1
	}
	if index < 0 {
		index = 0
	}
	m.items.Select(index)
}

func (m Model) selectedFolder() (model.Folder, bool) {
	e, ok := m.folders.SelectedItem().(folderEntry)
	if !ok {
		return model.Folder{}, false
	}
	return e.folder, true
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	left, right := m.paneWidths()
	h := m.paneHeight()
	frameW, frameH := focusedPaneStyle.GetFrameSize()
	m.folders.SetSize(left-frameW, h-frameH)
	m.items.SetSize(right-frameW, h-frameH)
}

func (m Model) paneWidths() (left, right int) {
	left = m.width / 3
	if left < 24 {
		left = 24
	}
	if left > m.width/2 {
		left = m.width / 2
	}
	return left, m.width - left
}

func (m Model) paneHeight() int {
	h := m.height - 1
	if m.adding {
		h -= inputBarHeight
	}
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	left, right := m.paneWidths()
	h := m.paneHeight()

	folderBox, itemBox := blurredPaneStyle, blurredPaneStyle
	if m.focus == folderPane {
		folderBox = focusedPaneStyle
	} else {
		itemBox = focusedPaneStyle
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		folderBox.Width(left-2).Height(h-2).Render(m.folders.View()),
		itemBox.Width(right-2).Height(h-2).Render(m.items.View()),
	)

	sections := []string{panes}
	if m.adding {
		title := "New folder"
		if m.focus == itemPane {
			title = "New item"
		}
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		sections = append(sections, inputBarStyle.Width(m.width-2).Render(title+"\n"+m.input.View()))
	}
	sections = append(sections, helpStyle.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpLine() string {
	if m.adding {
		return " enter save   esc cancel"
	}
	if m.focus == folderPane {
		return " tab switch pane   enter open   a add folder   d delete   q quit"
	}
	return " tab switch pane   space toggle   a add item   d delete   q quit"
}
