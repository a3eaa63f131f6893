package state

import (
	"slices"

	"github.com/etnz/arthik"
)

// Snapshot is a consistent copy of the store, for renderers.
type Snapshot struct {
	Accounts     []arthik.Account
	Transactions []arthik.Transaction
	Recurrences  []arthik.Recurrence
	Notes        []arthik.Note
	Dashboard    arthik.Dashboard
	HasDashboard bool

	Page int

	EditingTransactionID string
	EditingAccountName   string
	EditingRecurrenceID  string
	EditingNoteID        string

	ActiveTab     arthik.Tab
	Authenticated bool
}

// Snapshot returns a copy of the whole store taken in one critical section.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Accounts:             slices.Clone(s.accounts),
		Transactions:         slices.Clone(s.transactions),
		Recurrences:          slices.Clone(s.recurrences),
		Notes:                slices.Clone(s.notes),
		Page:                 s.page,
		EditingTransactionID: s.editingTransactionID,
		EditingAccountName:   s.editingAccountName,
		EditingRecurrenceID:  s.editingRecurrenceID,
		EditingNoteID:        s.editingNoteID,
		ActiveTab:            s.activeTab,
	}
	if s.dashboard != nil {
		snap.Dashboard = *s.dashboard
		snap.HasDashboard = true
	}
	if s.session != nil {
		snap.Authenticated = s.session.IsAuthenticated()
	}
	return snap
}

// TotalPages returns the number of ledger pages for n transactions, at least 1.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// PageOf returns the transactions displayed on page.
func PageOf(txs []arthik.Transaction, page int) []arthik.Transaction {
	start := (page - 1) * PageSize
	if page < 1 || start >= len(txs) {
		return nil
	}
	end := min(start+PageSize, len(txs))
	return txs[start:end]
}

// TotalPages is the number of pages of the snapshot ledger.
func (s Snapshot) TotalPages() int { return TotalPages(len(s.Transactions)) }

// PageTransactions is the current page of the snapshot ledger.
func (s Snapshot) PageTransactions() []arthik.Transaction { return PageOf(s.Transactions, s.Page) }

// TotalPages is the number of ledger pages.
func (s *Store) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPages(len(s.transactions))
}

// PageTransactions returns a copy of the current ledger page.
func (s *Store) PageTransactions() []arthik.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(PageOf(s.transactions, s.page))
}

// ChangePage moves the ledger page by delta. It reports false, leaving the
// page unchanged, if the new page is out of range.
func (s *Store) ChangePage(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.page + delta
	if next < 1 || next > TotalPages(len(s.transactions)) {
		return false
	}
	s.page = next
	return true
}

// ClampPage brings the page back in range after the ledger shrank.
func (s *Store) ClampPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = min(max(s.page, 1), TotalPages(len(s.transactions)))
}
