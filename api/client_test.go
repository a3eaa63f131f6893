package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/api/apitest"
	"github.com/etnz/arthik/date"
	"github.com/etnz/arthik/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, opts ...Option) (*Client, *apitest.Backend) {
	t.Helper()
	backend := apitest.New(t)
	return New(backend.URL(), session.New(session.NewMemoryStorage()), opts...), backend
}

func login(t *testing.T, c *Client) {
	t.Helper()
	require.NoError(t, c.Login(context.Background(), "secret"))
}

func TestMissingCSRF(t *testing.T) {
	c, backend := newClient(t)
	require.NoError(t, c.Session().SetToken("token"))

	err := c.AddAccount(context.Background(), arthik.Account{Name: "Cash", Category: arthik.Assets})
	assert.ErrorIs(t, err, ErrMissingCSRF)
	assert.Empty(t, backend.Requests(), "no request must be sent without a CSRF token")
	assert.Equal(t, KindPrecondition, Classify(err))
	assert.Equal(t, MsgSessionError, UserMessage(err, "Failed"))
}

func TestLogin(t *testing.T) {
	c, backend := newClient(t)
	login(t, c)

	assert.True(t, c.Session().IsAuthenticated())
	assert.Equal(t, backend.Token(), c.Session().Token())
	assert.Equal(t, backend.CSRF(), c.Session().CSRFToken())
}

func TestLoginRefused(t *testing.T) {
	c, _ := newClient(t)
	err := c.Login(context.Background(), "wrong")
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "Invalid password", UserMessage(err, "Login failed"))
	assert.False(t, c.Session().IsAuthenticated())
}

func TestLoginUnauthorized(t *testing.T) {
	calls := 0
	c, backend := newClient(t, WithUnauthorizedHandler(func() { calls++ }))
	backend.Fail(http.MethodPost, "/api/login", http.StatusUnauthorized)

	err := c.Login(context.Background(), "wrong")
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.NotErrorIs(t, err, ErrAuthenticationFailed)
	assert.Zero(t, calls, "a refused login is not a forced logout")
	assert.Equal(t, KindValidation, Classify(err))
	assert.Equal(t, MsgLoginFailed, UserMessage(err, "Login failed"))
}

func TestLoginLocked(t *testing.T) {
	c, backend := newClient(t)
	backend.LockLogin()
	err := c.Login(context.Background(), "secret")
	assert.ErrorIs(t, err, ErrTooManyLoginAttempts)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, MsgTooManyLogins, UserMessage(err, "Login failed"))
}

func TestCSRFRotation(t *testing.T) {
	c, backend := newClient(t)
	login(t, c)
	first := c.Session().CSRFToken()

	_, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	rotated := c.Session().CSRFToken()
	assert.NotEqual(t, first, rotated)
	assert.Equal(t, backend.CSRF(), rotated)

	// the write carries the rotated token, or the backend would refuse it.
	require.NoError(t, c.AddAccount(context.Background(), arthik.Account{Name: "Cash", Category: arthik.Assets}))
	reqs := backend.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, rotated, last.CSRF)
	assert.Equal(t, "Bearer "+backend.Token(), last.Auth)
}

func TestRequestIDs(t *testing.T) {
	c, backend := newClient(t)
	login(t, c)
	_, err := c.Accounts(context.Background())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range backend.Requests() {
		assert.NotEmpty(t, r.RequestID)
		assert.False(t, seen[r.RequestID], "request id %q reused", r.RequestID)
		seen[r.RequestID] = true
	}
}

func TestUnauthorized(t *testing.T) {
	calls := 0
	c, backend := newClient(t, WithUnauthorizedHandler(func() { calls++ }))
	login(t, c)
	backend.Expire()

	_, err := c.Accounts(context.Background())
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, KindAuth, Classify(err))
	assert.Empty(t, UserMessage(err, "Failed to load accounts"))
}

func TestValidationErrors(t *testing.T) {
	c, backend := newClient(t)
	login(t, c)
	ctx := context.Background()
	require.NoError(t, c.AddAccount(ctx, arthik.Account{Name: "Cash", Category: arthik.Assets}))

	// JSON body
	err := c.AddAccount(ctx, arthik.Account{Name: "Cash", Category: arthik.Assets})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Account already exists", validationErr.Message)

	// plain text body
	err = c.DeleteTransaction(ctx, "missing")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Transaction ID required", UserMessage(err, "Failed"))

	backend.Fail(http.MethodGet, "/api/notes", http.StatusBadRequest)
	_, err = c.Notes(ctx)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Bad Request", validationErr.Message)
}

func TestSettingsRefused(t *testing.T) {
	c, _ := newClient(t)
	login(t, c)
	err := c.ChangePassword(context.Background(), "not-the-password", "newpassword")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid old password", validationErr.Message)
}

func TestStatusErrors(t *testing.T) {
	c, backend := newClient(t)
	login(t, c)
	backend.Fail(http.MethodGet, "/api/dashboard", http.StatusInternalServerError)
	_, err := c.Dashboard(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "Failed to load dashboard", UserMessage(err, "Failed to load dashboard"))

	backend.Fail(http.MethodGet, "/api/accounts", http.StatusTooManyRequests)
	_, err = c.Accounts(context.Background())
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, MsgRateLimited, UserMessage(err, "Failed"))
}

func TestTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1", session.New(session.NewMemoryStorage()))
	_, err := c.Accounts(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, KindTransport, Classify(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrMissingCSRF, KindPrecondition},
		{&arthik.InputError{Message: "Input is required"}, KindPrecondition},
		{ErrAuthenticationFailed, KindAuth},
		{ErrTooManyLoginAttempts, KindRateLimit},
		{&ValidationError{Message: "bad"}, KindValidation},
		{&LoginError{}, KindValidation},
		{&StatusError{Code: 500}, KindTransport},
		{errors.New("boom"), KindTransport},
	}
	for _, test := range tests {
		if got := Classify(test.err); got != test.want {
			t.Errorf("Classify(%v) = %v; want %v", test.err, got, test.want)
		}
	}
}

func TestTypedEndpoints(t *testing.T) {
	c, backend := newClient(t)
	backend.Accounts = []arthik.Account{{Name: "Bank Account", Category: arthik.Assets}, {Name: "Food & Dining", Category: arthik.Expenses}}
	login(t, c)
	ctx := context.Background()

	require.NoError(t, c.SaveTransaction(ctx, arthik.TransactionInput{
		From: "Bank Account", To: "Food & Dining", Description: "lunch", Amount: arthik.M(12), Date: "2024-03-20", Time: "12:30",
	}))
	txs, err := c.Transactions(ctx, date.MustParse("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "lunch", txs[0].Description)

	require.NoError(t, c.DeleteAccount(ctx, "Food & Dining"))
	accounts, err := c.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	require.NoError(t, c.SetTheme(ctx, "dark"))
	settings, err := c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
}
