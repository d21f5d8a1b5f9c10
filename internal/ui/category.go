package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leilabk/shelfctl/internal/models"
)

// adminState backs the category administration screen. Selecting a category
// loads it into the name input for renaming; an empty selection creates.
type adminState struct {
	list    list.Model
	name    textinput.Model
	current *models.Category
}

func newAdminState(categories []models.Category, width, height int) *adminState {
	items := make([]list.Item, 0, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			continue
		}
		items = append(items, categoryItem{category: c})
	}

	w, h := width-4, height-12
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	l := list.New(items, list.NewDefaultDelegate(), w, h)
	l.Title = "Categories"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Category name"
	name.CharLimit = 80
	name.Focus()

	return &adminState{list: l, name: name}
}

func (a *adminState) load(category models.Category) {
	a.current = &category
	a.name.SetValue(category.Name)
}

func (a *adminState) reset() {
	a.current = nil
	a.name.SetValue("")
}

func (a *adminState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.name, cmd = a.name.Update(msg)
	return cmd
}

func (m *Model) openCategoryAdmin() {
	categories := []models.Category{}
	if m.snap != nil {
		categories = m.snap.Categories
	}
	m.admin = newAdminState(categories, m.width, m.height)
	m.catErr = ""
	m.view = CategoryView
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = BrowseView
		return m, m.loadSnapshot()

	case msg.String() == "up", msg.String() == "down":
		var cmd tea.Cmd
		m.admin.list, cmd = m.admin.list.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.admin.list.SelectedItem().(categoryItem); ok {
			return m, m.loadCategory(item.category.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.admin.reset()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		name := strings.TrimSpace(m.admin.name.Value())
		if name == "" {
			m.catErr = "Category name is required."
			return m, nil
		}
		category := models.Category{Name: name}
		if m.admin.current != nil {
			category.ID = m.admin.current.ID
		}
		return m, m.saveCategory(category)

	case msg.String() == "ctrl+x":
		if m.admin.current != nil {
			return m, m.deleteCategory(m.admin.current.ID)
		}
		return m, nil
	}

	return m, m.admin.update(msg)
}

func (m *Model) renderCategoryAdmin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Manage Categories"))
	b.WriteString("\n\n")

	b.WriteString(m.admin.list.View())
	b.WriteString("\n\n")

	mode := "New category"
	if m.admin.current != nil {
		mode = "Rename " + m.admin.current.Name
	}
	b.WriteString(labelStyle.Render(mode))
	b.WriteString(m.admin.name.View())
	b.WriteString("\n")

	if m.catErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.catErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{
		m.keys.Enter, m.keys.Save, m.keys.Clear, m.keys.Back,
	}))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("ctrl+x delete selected"))

	return frameStyle.Render(b.String())
}
