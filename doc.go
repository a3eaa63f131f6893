// Package arthik provides the types and rules of a client for a personal
// double-entry bookkeeping backend.
//
// The backend keeps accounts, transactions moving money between them,
// recurring transactions and free-form notes. This package defines them as
// they travel on the wire, together with the validation applied to forms
// before anything is sent:
//   - Accounts are grouped by Category. Liabilities carry due dates and
//     Expenses a monthly budget.
//   - Transactions move an Amount from one account to another at a Date.
//   - Recurrences are templates applied once a month on a day of the month.
//   - Notes are markdown text attached to the planner.
//
// Money is a fixed point decimal amount. It is formatted in the display
// currency, or masked when amounts are hidden.
//
// The sub packages build the client on top of it: api talks to the backend,
// state holds what was loaded, renderer turns it into markdown views,
// controller implements the user operations, and cmd and tui are the two
// front-ends of the arthik command.
package arthik
