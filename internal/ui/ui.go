package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leilabk/shelfctl/internal/catalog"
	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	ItemFormView
	CategoryView
	LoginView
)

// CategoryAPI is the slice of the category service the TUI needs.
type CategoryAPI interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Save(ctx context.Context, category models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// ItemAPI is the slice of the item service the TUI needs.
type ItemAPI interface {
	List(ctx context.Context) ([]models.LibraryItem, error)
	Get(ctx context.Context, id string) (*models.LibraryItem, error)
	Save(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error)
	Update(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error)
	Delete(ctx context.Context, id string) error
}

// AuthAPI is the slice of the auth service the TUI needs.
type AuthAPI interface {
	Login(ctx context.Context, creds models.UserLogin) (string, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	categories CategoryAPI
	items      ItemAPI
	auth       AuthAPI
	sess       *session.Session

	width  int
	height int
	help   help.Model
	keys   keyMap

	// browse screen
	snap        *catalog.Snapshot
	itemList    list.Model
	catIndex    int
	sortKey     catalog.SortKey
	loading     bool
	errMsg      string
	fetchSeq    int
	cancelFetch context.CancelFunc

	// item form screen
	form    *formState
	formErr string

	// category admin screen
	admin  *adminState
	catErr string

	// login screen
	login    *loginState
	loginErr string
}

// Snapshot fetch results carry the sequence number of the request that
// produced them; stale results from a screen the user already left are
// dropped in Update.
type snapshotMsg struct {
	seq  int
	snap *catalog.Snapshot
	err  error
}

type itemDeletedMsg struct {
	id  string
	err error
}

type itemLoadedMsg struct {
	item *models.LibraryItem
	err  error
}

// Form commands work on a copy of the form state so the command goroutine
// never touches the model; the mutated copy travels back in the msg and is
// applied in Update.
type formSavedMsg struct {
	form catalog.Form
	err  error
}

type checkoutDoneMsg struct {
	form catalog.Form
	err  error
}

type returnDoneMsg struct {
	form catalog.Form
	err  error
}

type formDeletedMsg struct{ err error }

type categoryLoadedMsg struct {
	category *models.Category
	err      error
}

type categorySavedMsg struct{ err error }
type categoryDeletedMsg struct{ err error }

type loginDoneMsg struct{ err error }

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, categories CategoryAPI, items ItemAPI, auth AuthAPI, sess *session.Session) *Model {
	view := BrowseView
	if _, ok := sess.CurrentUser(); !ok {
		view = LoginView
	}

	itemList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	itemList.SetShowHelp(false)
	itemList.SetFilteringEnabled(false)

	return &Model{
		ctx:        ctx,
		view:       view,
		categories: categories,
		items:      items,
		auth:       auth,
		sess:       sess,
		help:       help.New(),
		keys:       newKeyMap(),
		login:      newLoginState(),
		itemList:   itemList,
	}
}

// Init starts the initial catalog fetch unless the login screen is up.
func (m *Model) Init() tea.Cmd {
	if m.view == LoginView {
		return m.login.focusCmd()
	}
	return m.loadSnapshot()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.itemList.SetSize(msg.Width-4, msg.Height-10)
		if m.admin != nil {
			m.admin.list.SetSize(msg.Width-4, msg.Height-12)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case ItemFormView:
			return m.handleFormKeys(msg)
		case CategoryView:
			return m.handleCategoryKeys(msg)
		case LoginView:
			return m.handleLoginKeys(msg)
		}

	case snapshotMsg:
		if msg.seq != m.fetchSeq {
			// A fetch from a screen the user already navigated away from.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Failed to fetch data"
			return m, nil
		}
		m.errMsg = ""
		m.snap = msg.snap
		if m.catIndex >= len(m.snap.Categories) {
			m.catIndex = 0
		}
		m.rebuildItemList()
		return m, nil

	case itemDeletedMsg:
		if msg.err != nil {
			// The entry stays in the local view; no refetch.
			m.errMsg = "Failed to delete item"
			return m, nil
		}
		m.errMsg = ""
		if m.snap != nil {
			m.snap.Entries = catalog.Remove(m.snap.Entries, msg.id)
			m.rebuildItemList()
		}
		return m, nil

	case itemLoadedMsg:
		if msg.err != nil {
			m.errMsg = "Failed to fetch library item"
			m.view = BrowseView
			return m, nil
		}
		m.openItemForm(catalog.EditForm(*msg.item))
		return m, nil

	case formSavedMsg:
		if msg.err != nil {
			m.formErr = userMessage(msg.err, "Failed to save library item. Please login")
			return m, nil
		}
		if m.form != nil {
			*m.form.form = msg.form
		}
		// Back to the list, refetching like the original's navigation.
		m.view = BrowseView
		m.formErr = ""
		return m, m.loadSnapshot()

	case checkoutDoneMsg:
		if msg.err != nil {
			m.formErr = userMessage(msg.err, "Failed to check out item. Please login")
			return m, nil
		}
		m.formErr = ""
		if m.form != nil {
			*m.form.form = msg.form
			m.form.syncFromForm()
		}
		return m, nil

	case returnDoneMsg:
		if msg.err != nil {
			m.formErr = userMessage(msg.err, "Failed to return item")
			return m, nil
		}
		m.formErr = ""
		if m.form != nil {
			*m.form.form = msg.form
			m.form.syncFromForm()
		}
		return m, nil

	case formDeletedMsg:
		if msg.err != nil {
			m.formErr = userMessage(msg.err, "Failed to delete library item")
			return m, nil
		}
		m.view = BrowseView
		m.formErr = ""
		return m, m.loadSnapshot()

	case categoryLoadedMsg:
		if msg.err != nil {
			m.catErr = "Failed to fetch category details"
			return m, nil
		}
		m.catErr = ""
		if m.admin != nil {
			m.admin.load(*msg.category)
		}
		return m, nil

	case categorySavedMsg:
		if msg.err != nil {
			m.catErr = userMessage(msg.err, "Failed to save category. Please login")
			return m, nil
		}
		m.catErr = ""
		if m.admin != nil {
			m.admin.reset()
		}
		return m, m.loadSnapshot()

	case categoryDeletedMsg:
		if msg.err != nil {
			m.catErr = userMessage(msg.err, "Failed to delete category. Please login")
			return m, nil
		}
		m.catErr = ""
		if m.admin != nil {
			m.admin.reset()
		}
		return m, m.loadSnapshot()

	case loginDoneMsg:
		if msg.err != nil {
			m.loginErr = userMessage(msg.err, "Login failed. Check your credentials")
			return m, nil
		}
		m.loginErr = ""
		m.view = BrowseView
		return m, m.loadSnapshot()
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case ItemFormView:
		return m.renderItemForm()
	case CategoryView:
		return m.renderCategoryAdmin()
	case LoginView:
		return m.renderLogin()
	default:
		return ""
	}
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		if m.snap != nil {
			m.itemList, cmd = m.itemList.Update(msg)
		}
	case ItemFormView:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	case CategoryView:
		if m.admin != nil {
			cmd = m.admin.update(msg)
		}
	case LoginView:
		cmd = m.login.update(msg)
	}
	return m, cmd
}

// loadSnapshot starts a fresh concurrent fetch of categories and items,
// cancelling any fetch still in flight so its late result can't clobber the
// new screen.
func (m *Model) loadSnapshot() tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFetch = cancel
	m.fetchSeq++
	seq := m.fetchSeq
	m.loading = true

	return func() tea.Msg {
		snap, err := catalog.Load(ctx, m.categories, m.items)
		return snapshotMsg{seq: seq, snap: snap, err: err}
	}
}

func (m *Model) loadItem(id string) tea.Cmd {
	return func() tea.Msg {
		item, err := m.items.Get(m.ctx, id)
		return itemLoadedMsg{item: item, err: err}
	}
}

func (m *Model) deleteItem(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.items.Delete(m.ctx, id)
		return itemDeletedMsg{id: id, err: err}
	}
}

func (m *Model) submitForm() tea.Cmd {
	form := *m.form.form
	return func() tea.Msg {
		err := form.Submit(m.ctx, m.items)
		return formSavedMsg{form: form, err: err}
	}
}

func (m *Model) checkoutItem() tea.Cmd {
	form := *m.form.form
	return func() tea.Msg {
		err := form.Checkout(m.ctx, m.items, time.Now)
		return checkoutDoneMsg{form: form, err: err}
	}
}

func (m *Model) returnItem() tea.Cmd {
	form := *m.form.form
	return func() tea.Msg {
		err := form.Return(m.ctx, m.items)
		return returnDoneMsg{form: form, err: err}
	}
}

func (m *Model) deleteFormItem() tea.Cmd {
	form := *m.form.form
	return func() tea.Msg {
		return formDeletedMsg{err: form.Delete(m.ctx, m.items)}
	}
}

func (m *Model) loadCategory(id string) tea.Cmd {
	return func() tea.Msg {
		category, err := m.categories.Get(m.ctx, id)
		return categoryLoadedMsg{category: category, err: err}
	}
}

func (m *Model) saveCategory(category models.Category) tea.Cmd {
	return func() tea.Msg {
		_, err := m.categories.Save(m.ctx, category)
		return categorySavedMsg{err: err}
	}
}

func (m *Model) deleteCategory(id string) tea.Cmd {
	return func() tea.Msg {
		return categoryDeletedMsg{err: m.categories.Delete(m.ctx, id)}
	}
}

func (m *Model) submitLogin(creds models.UserLogin) tea.Cmd {
	return func() tea.Msg {
		_, err := m.auth.Login(m.ctx, creds)
		return loginDoneMsg{err: err}
	}
}

// selectedCategory returns the currently selected filter category.
func (m *Model) selectedCategory() models.Category {
	if m.snap == nil || m.catIndex >= len(m.snap.Categories) {
		return catalog.AllCategories
	}
	return m.snap.Categories[m.catIndex]
}

func (m *Model) rebuildItemList() {
	filtered := catalog.FilterByCategory(m.snap.Entries, m.selectedCategory().ID)
	sorted := catalog.Sort(filtered, m.sortKey)

	items := make([]list.Item, len(sorted))
	for i, e := range sorted {
		items[i] = entryItem{entry: e}
	}

	// Reuse the list model so the cursor survives filter and sort changes.
	m.itemList.Title = fmt.Sprintf("Library Items • %s", m.selectedCategory().Name)
	m.itemList.SetItems(items)
	if m.width > 4 && m.height > 10 {
		m.itemList.SetSize(m.width-4, m.height-10)
	}
}
