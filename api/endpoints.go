package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/date"
)

// Result is the acknowledgement of a write.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// err returns a *ValidationError for an explicit failure acknowledgement.
func (r Result) err() error {
	if r.Success || (r.Error == "" && r.Message == "") {
		return nil
	}
	if r.Error != "" {
		return &ValidationError{Message: r.Error}
	}
	return &ValidationError{Message: r.Message}
}

// write sends a state changing request and checks its acknowledgement.
func (c *Client) write(ctx context.Context, method, path string, body any) error {
	var res Result
	if err := c.Do(ctx, method, path, body, &res); err != nil {
		return err
	}
	return res.err()
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Session   string `json:"session"`
	CSRFToken string `json:"csrfToken"`
	Message   string `json:"message"`
}

// Login exchanges the password for a session. On success the session store
// holds the new token, and the CSRF token if the backend sent one.
func (c *Client) Login(ctx context.Context, password string) error {
	var res loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{"password": password}, &res, false)
	if errors.Is(err, ErrRateLimited) {
		return ErrTooManyLoginAttempts
	}
	if err != nil {
		return err
	}
	token := res.Token
	if token == "" {
		token = res.Session
	}
	if !res.Success || token == "" {
		return &LoginError{Message: res.Message}
	}
	if err := c.session.SetToken(token); err != nil {
		return err
	}
	if res.CSRFToken != "" {
		return c.session.SetCSRFToken(res.CSRFToken)
	}
	return nil
}

func (c *Client) Accounts(ctx context.Context) ([]arthik.Account, error) {
	var accounts []arthik.Account
	err := c.Do(ctx, http.MethodGet, "/api/accounts", nil, &accounts)
	return accounts, err
}

func (c *Client) AddAccount(ctx context.Context, a arthik.Account) error {
	return c.write(ctx, http.MethodPost, "/api/accounts", a)
}

func (c *Client) DeleteAccount(ctx context.Context, name string) error {
	return c.write(ctx, http.MethodDelete, "/api/accounts/"+url.PathEscape(name), nil)
}

// Transactions lists transactions, newest first. A non-zero month restricts
// the list to that month.
func (c *Client) Transactions(ctx context.Context, month date.Date) ([]arthik.Transaction, error) {
	path := "/api/transactions"
	if !month.IsZero() {
		path += "?month=" + url.QueryEscape(month.Format("2006-01"))
	}
	var txs []arthik.Transaction
	err := c.Do(ctx, http.MethodGet, path, nil, &txs)
	return txs, err
}

// SaveTransaction creates the transaction, or replaces it when in.ID is set.
func (c *Client) SaveTransaction(ctx context.Context, in arthik.TransactionInput) error {
	return c.write(ctx, http.MethodPost, "/api/transactions", in)
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil)
}

func (c *Client) Dashboard(ctx context.Context) (arthik.Dashboard, error) {
	var d arthik.Dashboard
	err := c.Do(ctx, http.MethodGet, "/api/dashboard", nil, &d)
	return d, err
}

// Settings are the settings stored by the backend.
type Settings struct {
	Theme      string `json:"theme,omitempty"`
	DateFormat string `json:"dateFormat,omitempty"`
}

func (c *Client) Settings(ctx context.Context) (Settings, error) {
	var s Settings
	err := c.Do(ctx, http.MethodGet, "/api/settings", nil, &s)
	return s, err
}

// SettingsUpdate changes the settings. Empty fields are left unchanged.
type SettingsUpdate struct {
	Theme       string `json:"theme,omitempty"`
	DateFormat  string `json:"dateFormat,omitempty"`
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

func (c *Client) UpdateSettings(ctx context.Context, u SettingsUpdate) error {
	return c.write(ctx, http.MethodPost, "/api/settings", u)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.UpdateSettings(ctx, SettingsUpdate{OldPassword: oldPassword, NewPassword: newPassword})
}

func (c *Client) SetTheme(ctx context.Context, theme string) error {
	return c.UpdateSettings(ctx, SettingsUpdate{Theme: theme})
}

func (c *Client) Recurrences(ctx context.Context) ([]arthik.Recurrence, error) {
	var rs []arthik.Recurrence
	err := c.Do(ctx, http.MethodGet, "/api/recurrence", nil, &rs)
	return rs, err
}

func (c *Client) SaveRecurrence(ctx context.Context, r arthik.Recurrence) error {
	return c.write(ctx, http.MethodPost, "/api/recurrence", r)
}

func (c *Client) DeleteRecurrence(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, "/api/recurrence/"+url.PathEscape(id), nil)
}

// ApplyRecurrence asks the backend to create the transaction of a recurrence
// and move its next date.
func (c *Client) ApplyRecurrence(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodPost, "/api/recurrence/apply/"+url.PathEscape(id), nil)
}

func (c *Client) Notes(ctx context.Context) ([]arthik.Note, error) {
	var notes []arthik.Note
	err := c.Do(ctx, http.MethodGet, "/api/notes", nil, &notes)
	return notes, err
}

// SaveNote creates the note, or replaces it when n.ID is set.
func (c *Client) SaveNote(ctx context.Context, n arthik.Note) error {
	return c.write(ctx, http.MethodPost, "/api/notes", n)
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil)
}
