package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leilabk/shelfctl/internal/catalog"
)

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancelFetch != nil {
			m.cancelFetch()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keys.Category):
		if m.snap == nil || len(m.snap.Categories) == 0 {
			return m, nil
		}
		m.catIndex = (m.catIndex + 1) % len(m.snap.Categories)
		m.rebuildItemList()
		return m, nil

	case key.Matches(msg, m.keys.SortKey):
		if m.sortKey == catalog.SortByCategory {
			m.sortKey = catalog.SortByType
		} else {
			m.sortKey = catalog.SortByCategory
		}
		if m.snap != nil {
			m.rebuildItemList()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.openItemForm(catalog.NewForm())
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if entry, ok := m.itemList.SelectedItem().(entryItem); ok {
			return m, m.loadItem(entry.entry.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if entry, ok := m.itemList.SelectedItem().(entryItem); ok {
			return m, m.deleteItem(entry.entry.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Manage):
		m.openCategoryAdmin()
		return m, nil
	}

	var cmd tea.Cmd
	if m.snap != nil {
		m.itemList, cmd = m.itemList.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("shelfctl"))
	b.WriteString("\n")

	if user, ok := m.sess.CurrentUser(); ok {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Signed in as %s", user.Name)))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(statusStyle.Render("Loading catalog..."))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if m.snap != nil {
		b.WriteString("\n")
		b.WriteString(m.itemList.View())
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("sort: %s", sortLabel(m.sortKey))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{
		m.keys.New, m.keys.Enter, m.keys.Delete,
		m.keys.Category, m.keys.SortKey, m.keys.Manage,
		m.keys.Refresh, m.keys.Quit,
	}))

	return frameStyle.Render(b.String())
}

func sortLabel(k catalog.SortKey) string {
	if k == catalog.SortByType {
		return "type"
	}
	return "category"
}
