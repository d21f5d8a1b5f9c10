package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leilabk/shelfctl/internal/catalog"
	"github.com/leilabk/shelfctl/internal/models"
)

const (
	fieldTitle = iota
	fieldCategory
	fieldAuthor
	fieldPages
	fieldRuntime
	fieldBorrower
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Category ID",
	"Author",
	"Pages",
	"Run time (min)",
	"Borrower",
}

// formState holds the text inputs backing the polymorphic item form. The
// visible fields track the selected item type.
type formState struct {
	form   *catalog.Form
	inputs [fieldCount]textinput.Model
	focus  int
}

func newFormState(form *catalog.Form) *formState {
	f := &formState{form: form}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].SetValue(form.Item.Title)
	f.inputs[fieldCategory].SetValue(form.Item.CategoryID)
	f.inputs[fieldAuthor].SetValue(form.Item.Author)
	if form.Item.NbrPages > 0 {
		f.inputs[fieldPages].SetValue(strconv.Itoa(form.Item.NbrPages))
	}
	if form.Item.RunTimeMinutes > 0 {
		f.inputs[fieldRuntime].SetValue(strconv.Itoa(form.Item.RunTimeMinutes))
	}
	f.inputs[fieldBorrower].SetValue(form.BorrowerName)
	f.setFocus(0)
	return f
}

// visibleFields returns the field indexes shown for the current item type.
func (f *formState) visibleFields() []int {
	fields := []int{fieldTitle, fieldCategory}
	typ := f.form.Item.Type
	if typ.HasAuthor() {
		fields = append(fields, fieldAuthor, fieldPages)
	}
	if typ.HasRunTime() {
		fields = append(fields, fieldRuntime)
	}
	if typ.Lendable() {
		fields = append(fields, fieldBorrower)
	}
	return fields
}

func (f *formState) setFocus(i int) {
	fields := f.visibleFields()
	if i < 0 {
		i = len(fields) - 1
	}
	f.focus = i % len(fields)
	for n := range f.inputs {
		f.inputs[n].Blur()
	}
	f.inputs[fields[f.focus]].Focus()
}

// syncToForm copies the inputs back into the form before a remote call.
func (f *formState) syncToForm() {
	f.form.Item.Title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	f.form.Item.CategoryID = strings.TrimSpace(f.inputs[fieldCategory].Value())
	if f.form.Item.Type.HasAuthor() {
		f.form.Item.Author = strings.TrimSpace(f.inputs[fieldAuthor].Value())
		f.form.Item.NbrPages, _ = strconv.Atoi(strings.TrimSpace(f.inputs[fieldPages].Value()))
	}
	if f.form.Item.Type.HasRunTime() {
		f.form.Item.RunTimeMinutes, _ = strconv.Atoi(strings.TrimSpace(f.inputs[fieldRuntime].Value()))
	}
	f.form.BorrowerName = strings.TrimSpace(f.inputs[fieldBorrower].Value())
}

// syncFromForm refreshes the inputs after a successful remote call, e.g. a
// checkout clearing the borrower field.
func (f *formState) syncFromForm() {
	f.inputs[fieldBorrower].SetValue(f.form.BorrowerName)
}

func (f *formState) cycleType() {
	current := 0
	for i, t := range models.ItemTypes {
		if t == f.form.Item.Type {
			current = i
			break
		}
	}
	f.syncToForm()
	f.form.SetType(models.ItemTypes[(current+1)%len(models.ItemTypes)])
	if !f.form.Item.Type.HasAuthor() {
		f.inputs[fieldAuthor].SetValue("")
		f.inputs[fieldPages].SetValue("")
	}
	if !f.form.Item.Type.HasRunTime() {
		f.inputs[fieldRuntime].SetValue("")
	}
	f.setFocus(0)
}

func (f *formState) update(msg tea.Msg) tea.Cmd {
	fields := f.visibleFields()
	var cmd tea.Cmd
	f.inputs[fields[f.focus]], cmd = f.inputs[fields[f.focus]].Update(msg)
	return cmd
}

func (m *Model) openItemForm(form *catalog.Form) {
	m.form = newFormState(form)
	m.formErr = ""
	m.view = ItemFormView
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = BrowseView
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keys.Next):
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.CycleTyp):
		m.form.cycleType()
		return m, nil

	case msg.String() == "ctrl+b":
		m.form.form.Item.IsBorrowable = !m.form.form.Item.IsBorrowable
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.form.syncToForm()
		return m, m.submitForm()

	case key.Matches(msg, m.keys.Checkout):
		m.form.syncToForm()
		return m, m.checkoutItem()

	case key.Matches(msg, m.keys.Return):
		m.form.syncToForm()
		return m, m.returnItem()

	case msg.String() == "ctrl+x":
		if m.form.form.Editing() {
			return m, m.deleteFormItem()
		}
		return m, nil
	}

	return m, m.form.update(msg)
}

func (m *Model) renderItemForm() string {
	var b strings.Builder

	item := m.form.form.Item
	header := "New Library Item"
	if m.form.form.Editing() {
		header = "Edit Library Item"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Type"))
	b.WriteString(item.Type.Label())
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Borrowable"))
	if item.IsBorrowable {
		b.WriteString("yes")
	} else {
		b.WriteString("no")
	}
	b.WriteString("\n")

	if title := strings.TrimSpace(m.form.inputs[fieldTitle].Value()); title != "" {
		b.WriteString(labelStyle.Render("Abbreviation"))
		b.WriteString(models.Abbreviate(title))
		b.WriteString("\n")
	}

	fields := m.form.visibleFields()
	for i, idx := range fields {
		label := fieldLabels[idx]
		if i == m.form.focus {
			label = focusedStyle.Render(label)
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(m.form.inputs[idx].View())
		b.WriteString("\n")
	}

	if m.form.form.Editing() {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(statusLine(item)))
		b.WriteString("\n")
	}

	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.formErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	bindings := []key.Binding{m.keys.Next, m.keys.Save, m.keys.Back, m.keys.CycleTyp}
	if item.Type.Lendable() {
		bindings = append(bindings, m.keys.Checkout, m.keys.Return)
	}
	b.WriteString(m.help.ShortHelpView(bindings))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("ctrl+b toggle borrowable • ctrl+x delete • type: %s", item.Type)))

	return frameStyle.Render(b.String())
}
