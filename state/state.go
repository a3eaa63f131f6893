// Package state is the in-memory store of everything the views display.
//
// The Store holds the last copy of each collection fetched from the backend,
// the edit markers of the inline forms, the ledger page, the active tab and
// the live chart handles. It is mutated only through its setters and read
// through copies, so a renderer never sees a half written collection.
package state

import (
	"slices"
	"sync"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/session"
)

// PageSize is the number of transactions per ledger page.
const PageSize = 100

// Handle is an opaque live chart, owned by the store once registered.
type Handle = any

// Releaser frees the resources of a chart handle.
type Releaser interface {
	Release(Handle)
}

// Store is the application state. It is safe for concurrent use.
type Store struct {
	commit     sync.Mutex // orders Reset and Commit
	mu         sync.Mutex
	session    *session.Store
	releaser   Releaser
	generation uint64 // incremented by Reset

	accounts     []arthik.Account
	transactions []arthik.Transaction
	recurrences  []arthik.Recurrence
	notes        []arthik.Note
	dashboard    *arthik.Dashboard

	page int

	editingTransactionID string
	editingAccountName   string
	editingRecurrenceID  string
	editingNoteID        string

	activeTab arthik.Tab
	charts    map[arthik.ChartName]Handle
}

// New returns an empty store bound to the session sess.
func New(sess *session.Store) *Store {
	return &Store{
		session:   sess,
		page:      1,
		activeTab: arthik.TabDashboard,
		charts:    make(map[arthik.ChartName]Handle),
	}
}

// SetReleaser sets the function releasing replaced chart handles.
func (s *Store) SetReleaser(r Releaser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaser = r
}

// Session returns the session the store is bound to.
func (s *Store) Session() *session.Store { return s.session }

func (s *Store) SetAccounts(accounts []arthik.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = slices.Clone(accounts)
}

func (s *Store) SetTransactions(txs []arthik.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = slices.Clone(txs)
}

func (s *Store) SetRecurrences(rs []arthik.Recurrence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recurrences = slices.Clone(rs)
}

func (s *Store) SetNotes(notes []arthik.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = slices.Clone(notes)
}

func (s *Store) SetDashboard(d arthik.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.BudgetVsExpenses = slices.Clone(d.BudgetVsExpenses)
	d.HistoricalData = slices.Clone(d.HistoricalData)
	s.dashboard = &d
}

// SetPage sets the current ledger page. Pages start at 1.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = max(page, 1)
}

func (s *Store) SetEditingTransactionID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingTransactionID = id
}

func (s *Store) SetEditingAccountName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingAccountName = name
}

func (s *Store) SetEditingRecurrenceID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingRecurrenceID = id
}

func (s *Store) SetEditingNoteID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingNoteID = id
}

func (s *Store) SetActiveTab(tab arthik.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

func (s *Store) Accounts() []arthik.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.accounts)
}

func (s *Store) Transactions() []arthik.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

func (s *Store) Recurrences() []arthik.Recurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recurrences)
}

func (s *Store) Notes() []arthik.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

// Dashboard returns the last dashboard payload, and false if none was loaded.
func (s *Store) Dashboard() (arthik.Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dashboard == nil {
		return arthik.Dashboard{}, false
	}
	return *s.dashboard, true
}

func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Store) EditingTransactionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingTransactionID
}

func (s *Store) EditingAccountName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingAccountName
}

func (s *Store) EditingRecurrenceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingRecurrenceID
}

func (s *Store) EditingNoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingNoteID
}

func (s *Store) ActiveTab() arthik.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// Reset returns the store to its initial state: collections, markers and
// charts are dropped, the page is 1, the tab is the dashboard, and the
// session is cleared. Nothing observes an intermediate state.
func (s *Store) Reset() error {
	s.commit.Lock()
	defer s.commit.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.accounts, s.transactions, s.recurrences, s.notes = nil, nil, nil, nil
	s.dashboard = nil
	s.page = 1
	s.editingTransactionID, s.editingAccountName, s.editingRecurrenceID, s.editingNoteID = "", "", "", ""
	s.activeTab = arthik.TabDashboard
	s.releaseAll()
	if s.session == nil {
		return nil
	}
	return s.session.Clear()
}

// Generation returns the number of resets so far. A fetch records it before
// the request and hands it to Commit with the response.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Commit runs f, typically a few setters, unless the store was reset since
// generation gen. It reports whether f ran. A response that was in flight
// during a logout is dropped this way instead of resurrecting stale data.
func (s *Store) Commit(gen uint64, f func()) bool {
	s.commit.Lock()
	defer s.commit.Unlock()
	if s.Generation() != gen {
		return false
	}
	f()
	return true
}
