// Package tui is the interactive terminal front end. It keeps only
// presentation state; every edit goes through the network.Store.
package tui

import (
	"fmt"
	"strings"

	"github.com/N3moAhead/relmap/internal/network"
	"github.com/N3moAhead/relmap/internal/person"
	"github.com/N3moAhead/relmap/internal/relation"
	"github.com/N3moAhead/relmap/internal/render"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const listTitle = "Relationship Mapper"

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type sessionState int

const (
	viewList sessionState = iota
	viewDetail
	viewCreatePerson
	viewRenamePerson
	viewConfirmRemove
	viewCreateRelationSelectTarget
	viewCreateRelationDetails
	viewMap
)

// snapshotMsg carries a snapshot pushed by the store's change hook.
type snapshotMsg network.Snapshot

type model struct {
	state sessionState
	store *network.Store
	snap  network.Snapshot

	list       list.Model // people
	relList    list.Model // relationships of selected
	statusList list.Model // status vocabulary

	selected string // the person shown in viewDetail
	pending  string // the person being renamed or removed
	returnTo sessionState

	inputName    textinput.Model
	relTarget    string
	inputStatus  textinput.Model
	customStatus bool

	mapView     viewport.Model
	mapSelected string

	message  string
	msgError bool
}

func peopleFilter(store *network.Store) list.FilterFunc {
	return func(term string, targets []string) []list.Rank {
		found := make(map[string]bool)
		for _, name := range store.FindPeople(term) {
			found[name] = true
		}
		var ranks []list.Rank
		for i, t := range targets {
			if found[t] {
				ranks = append(ranks, list.Rank{Index: i})
			}
		}
		return ranks
	}
}

func newModel(store *network.Store) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = listTitle
	l.Filter = peopleFilter(store)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.Map}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.Rename, keys.Remove, keys.Map}
	}

	rl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	rl.SetShowTitle(false)
	rl.SetShowHelp(false)
	rl.SetShowStatusBar(false)
	rl.SetFilteringEnabled(false)
	rl.DisableQuitKeybindings()

	statuses := make([]list.Item, len(relation.Known))
	for i, s := range relation.Known {
		statuses[i] = relation.StatusItem(s)
	}
	sd := list.NewDefaultDelegate()
	sd.ShowDescription = false
	sd.SetSpacing(0)
	sl := list.New(statuses, sd, 0, 0)
	sl.Title = "Status"
	sl.SetShowHelp(false)
	sl.SetShowStatusBar(false)
	sl.SetFilteringEnabled(false)
	sl.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "Name"
	ti.CharLimit = 120

	ts := textinput.New()
	ts.Placeholder = "Custom status"
	ts.CharLimit = 60

	m := model{
		state:       viewList,
		store:       store,
		list:        l,
		relList:     rl,
		statusList:  sl,
		inputName:   ti,
		inputStatus: ts,
		mapView:     viewport.New(0, 0),
	}
	m.resize(80, 24)
	m.refresh(store.Snapshot())
	return m
}

// Run starts the TUI and blocks until the user quits. Changes made to the
// store from elsewhere, such as a reload after an external edit, are pushed
// into the running program.
func Run(store *network.Store) error {
	p := tea.NewProgram(newModel(store), tea.WithAltScreen())
	store.SetChangeHook(func(snap network.Snapshot) {
		// The hook also fires from inside Update; Send must not block it.
		go p.Send(snapshotMsg(snap))
	})
	defer store.SetChangeHook(nil)

	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) resize(width, height int) {
	h, v := docStyle.GetFrameSize()
	w, ht := width-h, height-v-2 // status line
	m.list.SetSize(w, ht)
	m.relList.SetSize(w, ht-6)
	m.statusList.SetSize(w, len(relation.Known)+3)
	m.mapView.Width = w
	m.mapView.Height = ht - 3
}

// refresh rebuilds every derived view from snap.
func (m *model) refresh(snap network.Snapshot) tea.Cmd {
	m.snap = snap

	people := snap.Persons()
	items := make([]list.Item, len(people))
	for i, p := range people {
		items[i] = p
	}
	cmd := m.list.SetItems(items)

	if m.selected != "" && !snap.Has(m.selected) {
		m.selected = ""
		if m.state == viewDetail || m.state == viewCreateRelationSelectTarget || m.state == viewCreateRelationDetails {
			m.state = viewList
			m.list.Title = listTitle
		}
	}
	links := snap.Links(m.selected)
	linkItems := make([]list.Item, len(links))
	for i, l := range links {
		linkItems[i] = relation.LinkItem{Link: l}
	}
	relCmd := m.relList.SetItems(linkItems)

	if m.mapSelected != "" && !snap.Has(m.mapSelected) {
		m.mapSelected = ""
	}
	m.mapView.SetContent(render.Map(snap, m.mapSelected) + "\n\n" + render.Legend())
	return tea.Batch(cmd, relCmd)
}

func (m *model) reload() tea.Cmd {
	return m.refresh(m.store.Snapshot())
}

func (m *model) report(err error, success string) {
	if err != nil {
		m.message = err.Error()
		m.msgError = true
		return
	}
	m.message = success
	m.msgError = false
}

func (m model) selectedPerson() (person.Person, bool) {
	p, ok := m.list.SelectedItem().(person.Person)
	return p, ok
}

func (m *model) startNameInput(state sessionState, value string) {
	m.returnTo = m.state
	m.state = state
	m.inputName.SetValue(value)
	m.inputName.CursorEnd()
	m.inputName.Focus()
}

func (m *model) back(state sessionState) {
	m.state = state
	m.inputName.Blur()
	m.inputStatus.Blur()
	if state == viewList || state == viewDetail {
		m.list.Title = listTitle
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case snapshotMsg:
		cmd = m.refresh(network.Snapshot(msg))
		return m, cmd
	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
	}

	switch m.state {
	case viewList:
		if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
			switch {
			case key.Matches(msg, keys.New):
				m.startNameInput(viewCreatePerson, "")
				return m, nil
			case key.Matches(msg, keys.Map):
				m.state = viewMap
				m.mapView.GotoTop()
				return m, nil
			case key.Matches(msg, keys.Enter):
				if p, ok := m.selectedPerson(); ok {
					m.selected = p.Name
					m.state = viewDetail
					cmd = m.reload()
				}
				return m, cmd
			case key.Matches(msg, keys.Rename):
				if p, ok := m.selectedPerson(); ok {
					m.pending = p.Name
					m.startNameInput(viewRenamePerson, p.Name)
				}
				return m, nil
			case key.Matches(msg, keys.Remove):
				if p, ok := m.selectedPerson(); ok {
					m.pending = p.Name
					m.returnTo = viewList
					m.state = viewConfirmRemove
				}
				return m, nil
			}
		}
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case viewDetail:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Back):
				m.back(viewList)
				m.selected = ""
				return m, nil
			case key.Matches(msg, keys.AddRelation):
				m.state = viewCreateRelationSelectTarget
				m.list.Title = "Choose a relationship for " + m.selected
				m.list.ResetSelected()
				return m, nil
			case key.Matches(msg, keys.RemoveRelation):
				if l, ok := m.relList.SelectedItem().(relation.LinkItem); ok {
					err := m.store.RemoveRelationship(m.selected, l.Other)
					m.report(err, fmt.Sprintf("Relationship with %s removed.", l.Other))
					cmd = m.reload()
					return m, cmd
				}
				return m, nil
			case key.Matches(msg, keys.Rename):
				m.pending = m.selected
				m.startNameInput(viewRenamePerson, m.selected)
				return m, nil
			case key.Matches(msg, keys.Remove):
				m.pending = m.selected
				m.returnTo = viewDetail
				m.state = viewConfirmRemove
				return m, nil
			case key.Matches(msg, keys.Map):
				m.mapSelected = m.selected
				m.state = viewMap
				cmd = m.reload()
				return m, cmd
			}
		}
		m.relList, cmd = m.relList.Update(msg)
		return m, cmd

	case viewCreatePerson, viewRenamePerson:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Cancel):
				m.back(m.returnTo)
				return m, nil
			case key.Matches(msg, keys.Enter):
				return m.submitName()
			}
		}
		m.inputName, cmd = m.inputName.Update(msg)
		return m, cmd

	case viewConfirmRemove:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Yes):
				name := m.pending
				err := m.store.RemovePerson(name)
				m.report(err, fmt.Sprintf("%s removed from the network.", name))
				m.pending = ""
				if err == nil && m.selected == name {
					m.selected = ""
					m.back(viewList)
				} else {
					m.back(m.returnTo)
				}
				cmd = m.reload()
				return m, cmd
			case key.Matches(msg, keys.No), key.Matches(msg, keys.Cancel):
				m.pending = ""
				m.back(m.returnTo)
				return m, nil
			}
		}
		return m, nil

	case viewCreateRelationSelectTarget:
		if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
			switch {
			case key.Matches(msg, keys.Back):
				m.back(viewDetail)
				return m, nil
			case key.Matches(msg, keys.Enter):
				if p, ok := m.selectedPerson(); ok {
					if p.Name == m.selected {
						m.report(fmt.Errorf("%s cannot be related to themselves", p.Name), "")
						return m, nil
					}
					m.relTarget = p.Name
					m.state = viewCreateRelationDetails
					m.customStatus = false
					m.inputStatus.SetValue("")
					m.inputStatus.Blur()
					m.statusList.ResetSelected()
				}
				return m, nil
			}
		}
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case viewCreateRelationDetails:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Cancel):
				m.back(viewDetail)
				return m, nil
			case key.Matches(msg, keys.Switch):
				m.customStatus = !m.customStatus
				if m.customStatus {
					cmd = m.inputStatus.Focus()
					return m, cmd
				}
				m.inputStatus.Blur()
				return m, nil
			case key.Matches(msg, keys.Enter):
				return m.submitRelation()
			}
		}
		if m.customStatus {
			m.inputStatus, cmd = m.inputStatus.Update(msg)
		} else {
			m.statusList, cmd = m.statusList.Update(msg)
		}
		return m, cmd

	case viewMap:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Back):
				if m.selected != "" {
					m.back(viewDetail)
				} else {
					m.back(viewList)
				}
				return m, nil
			case key.Matches(msg, keys.Switch):
				m.mapSelected = cycle(m.snap.People, m.mapSelected, 1)
				cmd = m.reload()
				return m, cmd
			case key.Matches(msg, keys.SwitchBack):
				m.mapSelected = cycle(m.snap.People, m.mapSelected, -1)
				cmd = m.reload()
				return m, cmd
			case key.Matches(msg, keys.Reset):
				m.mapSelected = ""
				m.mapView.GotoTop()
				cmd = m.reload()
				return m, cmd
			}
		}
		m.mapView, cmd = m.mapView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) submitName() (tea.Model, tea.Cmd) {
	value := m.inputName.Value()
	var err error
	var success string

	if m.state == viewCreatePerson {
		err = m.store.AddPerson(value)
		success = fmt.Sprintf("%s added to the network.", person.Normalize(value))
	} else {
		err = m.store.RenamePerson(m.pending, value)
		success = fmt.Sprintf("Renamed '%s' to '%s'.", m.pending, person.Normalize(value))
	}
	m.report(err, success)
	if err != nil {
		return m, nil
	}

	if m.state == viewRenamePerson && m.selected == m.pending {
		m.selected = person.Normalize(value)
	}
	m.pending = ""
	m.back(m.returnTo)
	cmd := m.reload()
	return m, cmd
}

func (m model) submitRelation() (tea.Model, tea.Cmd) {
	var status relation.Status
	if m.customStatus {
		status = relation.Status(m.inputStatus.Value())
	} else if s, ok := m.statusList.SelectedItem().(relation.StatusItem); ok {
		status = relation.Status(s)
	}

	err := m.store.SetRelationship(m.selected, m.relTarget, status)
	m.report(err, fmt.Sprintf("Relationship with %s (%s) updated!", m.relTarget, relation.Normalize(status)))
	if err != nil {
		return m, nil
	}
	m.relTarget = ""
	m.back(viewDetail)
	cmd := m.reload()
	return m, cmd
}

// cycle steps through names from current; the empty selection sits between
// the last and the first name.
func cycle(names []string, current string, step int) string {
	if len(names) == 0 {
		return ""
	}
	pos := -1
	for i, n := range names {
		if n == current {
			pos = i
			break
		}
	}
	next := pos + step
	if pos == -1 && step < 0 {
		next = len(names) - 1
	}
	if next < 0 || next >= len(names) {
		return ""
	}
	return names[next]
}

func (m model) statusLine() string {
	if m.message == "" {
		return ""
	}
	if m.msgError {
		return "\n" + errStyle.Render(m.message)
	}
	return "\n" + okStyle.Render(m.message)
}

func (m model) View() string {
	switch m.state {
	case viewList, viewCreateRelationSelectTarget:
		return docStyle.Render(m.list.View() + m.statusLine())

	case viewDetail:
		if m.selected == "" {
			return "Error: no person selected"
		}
		s := titleStyle.Render(m.selected) + "\n\n"
		s += lipgloss.NewStyle().Underline(true).Render("Relationships:") + "\n"
		if len(m.relList.Items()) == 0 {
			s += infoStyle.Render("No relationships yet.") + "\n"
		} else {
			s += m.relList.View() + "\n"
		}
		s += "\n" + infoStyle.Render("esc: back | r: add/update relationship | x: remove relationship | e: rename | d: remove | m: map")
		return docStyle.Render(s + m.statusLine())

	case viewCreatePerson:
		return docStyle.Render(fmt.Sprintf(
			"Add a person\n\n%s\n\n%s%s",
			m.inputName.View(),
			infoStyle.Render("enter: save | esc: cancel"),
			m.statusLine(),
		))

	case viewRenamePerson:
		return docStyle.Render(fmt.Sprintf(
			"Rename %s\n\n%s\n\n%s%s",
			titleStyle.Render(m.pending),
			m.inputName.View(),
			infoStyle.Render("enter: save | esc: cancel"),
			m.statusLine(),
		))

	case viewConfirmRemove:
		return docStyle.Render(fmt.Sprintf(
			"Remove %s and all of their relationships?\n\n%s",
			titleStyle.Render(m.pending),
			infoStyle.Render("y: remove | n: keep"),
		))

	case viewCreateRelationDetails:
		custom := infoStyle.Render("tab: type a custom status")
		if m.customStatus {
			custom = m.inputStatus.View()
		}
		return docStyle.Render(fmt.Sprintf(
			"Relationship between %s and %s\n\n%s\n%s\n\n%s%s",
			titleStyle.Render(m.selected),
			titleStyle.Render(m.relTarget),
			m.statusList.View(),
			custom,
			infoStyle.Render("enter: save | esc: cancel"),
			m.statusLine(),
		))

	case viewMap:
		header := titleStyle.Render("Relationship Map")
		if m.mapSelected != "" {
			header += infoStyle.Render("  selected: ") + m.mapSelected
		}
		footer := infoStyle.Render(strings.Join([]string{
			"tab/shift+tab: select", "↑/↓: pan", "r: reset", "zoom: n/a (use relmap map --dot)", "esc: back",
		}, " | "))
		return docStyle.Render(header + "\n\n" + m.mapView.View() + "\n" + footer)
	}
	return ""
}
