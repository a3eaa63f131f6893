// Package apitest provides an in-memory arthik backend for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/date"
	"github.com/gin-gonic/gin"
)

// Request is a request received by the Backend.
type Request struct {
	Method    string
	Path      string
	Auth      string
	CSRF      string
	RequestID string
}

// Backend is a fake of the arthik backend served over HTTP.
// Fields can be set directly before the first request.
type Backend struct {
	mu sync.Mutex

	Password     string
	Accounts     []arthik.Account
	Transactions []arthik.Transaction
	Recurrences  []arthik.Recurrence
	Notes        []arthik.Note
	Dashboard    arthik.Dashboard
	Theme        string

	token       string
	csrf        string
	csrfCount   int
	idCount     int
	loginLocked bool
	failures    map[string]int
	delays      map[string]time.Duration
	requests    []Request

	server *httptest.Server
}

// New starts a Backend accepting password "secret". It is closed at the end of the test.
func New(t testing.TB) *Backend {
	gin.SetMode(gin.TestMode)
	b := &Backend{
		Password: "secret",
		Theme:    "light",
		failures: make(map[string]int),
		delays:   make(map[string]time.Duration),
	}
	b.server = httptest.NewServer(b.router())
	t.Cleanup(b.server.Close)
	return b
}

// URL is the base URL of the backend.
func (b *Backend) URL() string { return b.server.URL }

// Fail makes every following "METHOD path" request answer status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = status
}

// Delay makes every following "METHOD path" request wait d before being served.
func (b *Backend) Delay(method, path string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delays[method+" "+path] = d
}

// Heal removes every failure set with Fail.
func (b *Backend) Heal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]int)
}

// Expire invalidates the current session: authenticated requests get 401.
func (b *Backend) Expire() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = ""
}

// LockLogin makes logins answer 429.
func (b *Backend) LockLogin() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loginLocked = true
}

// Token is the token of the current session.
func (b *Backend) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// CSRF is the CSRF token expected on the next write.
func (b *Backend) CSRF() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.csrf
}

// Requests returns a copy of the received requests.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Calls counts the received "METHOD path" requests.
func (b *Backend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// TransactionsN sets n transactions, one per minute, newest first.
func (b *Backend) TransactionsN(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b.Transactions = make([]arthik.Transaction, n)
	for i := range n {
		b.Transactions[i] = arthik.Transaction{
			ID:          fmt.Sprintf("tx-%d", i+1),
			From:        "Bank Account",
			To:          "Food",
			Description: fmt.Sprintf("purchase %d", i+1),
			Amount:      arthik.M(i + 1),
			Date:        start.Add(time.Duration(n-i) * time.Minute),
		}
	}
}

// nextID returns a fresh id with the given prefix. Must be called with b.mu held.
func (b *Backend) nextID(prefix string) string {
	b.idCount++
	return fmt.Sprintf("%s-%d", prefix, b.idCount)
}

// rotate issues a new CSRF token. Must be called with b.mu held.
func (b *Backend) rotate() string {
	b.csrfCount++
	b.csrf = fmt.Sprintf("csrf-%d", b.csrfCount)
	return b.csrf
}

func (b *Backend) record(c *gin.Context) {
	b.mu.Lock()
	b.requests = append(b.requests, Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Auth:      c.GetHeader("Authorization"),
		CSRF:      c.GetHeader("X-CSRF-Token"),
		RequestID: c.GetHeader("X-Request-ID"),
	})
	key := c.Request.Method + " " + c.Request.URL.Path
	status, failing := b.failures[key]
	delay := b.delays[key]
	b.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		c.String(status, http.StatusText(status))
		c.Abort()
		return
	}
	c.Next()
}

func (b *Backend) authenticate(c *gin.Context) {
	b.mu.Lock()
	token, csrf := b.token, b.csrf
	b.mu.Unlock()

	if token == "" || c.GetHeader("Authorization") != "Bearer "+token {
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}
	if c.Request.Method != http.MethodGet && c.GetHeader("X-CSRF-Token") != csrf {
		c.String(http.StatusForbidden, "Invalid CSRF token")
		c.Abort()
		return
	}
	c.Next()
}

func success(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }

func (b *Backend) router() *gin.Engine {
	r := gin.New()
	r.Use(b.record)
	r.POST("/api/login", b.login)

	a := r.Group("/api", b.authenticate)
	a.GET("/accounts", b.getAccounts)
	a.POST("/accounts", b.addAccount)
	a.DELETE("/accounts/:name", b.deleteAccount)
	a.GET("/transactions", b.getTransactions)
	a.POST("/transactions", b.saveTransaction)
	a.DELETE("/transactions/:id", b.deleteTransaction)
	a.GET("/dashboard", b.getDashboard)
	a.GET("/settings", b.getSettings)
	a.POST("/settings", b.updateSettings)
	a.GET("/recurrence", b.getRecurrences)
	a.POST("/recurrence", b.saveRecurrence)
	a.DELETE("/recurrence/:id", b.deleteRecurrence)
	a.POST("/recurrence/apply/:id", b.applyRecurrence)
	a.GET("/notes", b.getNotes)
	a.POST("/notes", b.saveNote)
	a.DELETE("/notes/:id", b.deleteNote)
	return r
}

func (b *Backend) login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loginLocked {
		c.String(http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.")
		return
	}
	if req.Password != b.Password {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid password"})
		return
	}
	b.token = b.nextID("token")
	c.JSON(http.StatusOK, gin.H{"success": true, "token": b.token, "csrfToken": b.rotate()})
}

func (b *Backend) getAccounts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, append([]arthik.Account{}, b.Accounts...))
}

func (b *Backend) addAccount(c *gin.Context) {
	var a arthik.Account
	if err := c.ShouldBindJSON(&a); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := arthik.FindAccount(b.Accounts, a.Name); exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account already exists"})
		return
	}
	b.Accounts = append(b.Accounts, a)
	success(c)
}

func (b *Backend) deleteAccount(c *gin.Context) {
	name := c.Param("name")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, a := range b.Accounts {
		if a.Name == name {
			b.Accounts = append(b.Accounts[:i], b.Accounts[i+1:]...)
			success(c)
			return
		}
	}
	c.String(http.StatusBadRequest, "account not found")
}

func (b *Backend) getTransactions(c *gin.Context) {
	month := c.Query("month")
	b.mu.Lock()
	defer b.mu.Unlock()
	txs := []arthik.Transaction{}
	for _, tx := range b.Transactions {
		if month == "" || tx.Date.Format("2006-01") == month {
			txs = append(txs, tx)
		}
	}
	c.JSON(http.StatusOK, txs)
}

func (b *Backend) saveTransaction(c *gin.Context) {
	var in arthik.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	at, err := in.At(time.UTC)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid date/time format")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := arthik.FindAccount(b.Accounts, in.From); !ok && len(b.Accounts) > 0 {
		c.String(http.StatusBadRequest, "Invalid account(s)")
		return
	}
	tx := arthik.Transaction{ID: in.ID, From: in.From, To: in.To, Description: in.Description, Amount: in.Amount, Date: at}
	if tx.ID == "" {
		tx.ID = b.nextID("tx")
		b.Transactions = append([]arthik.Transaction{tx}, b.Transactions...)
		success(c)
		return
	}
	for i := range b.Transactions {
		if b.Transactions[i].ID == tx.ID {
			b.Transactions[i] = tx
			success(c)
			return
		}
	}
	c.String(http.StatusBadRequest, "transaction not found")
}

func (b *Backend) deleteTransaction(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, tx := range b.Transactions {
		if tx.ID == id {
			b.Transactions = append(b.Transactions[:i], b.Transactions[i+1:]...)
			success(c)
			return
		}
	}
	c.String(http.StatusBadRequest, "Transaction ID required")
}

func (b *Backend) getDashboard(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.Dashboard
	d.CSRFToken = b.rotate()
	c.JSON(http.StatusOK, d)
}

func (b *Backend) getSettings(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"theme": b.Theme, "dateFormat": "YYYY-MM-DD"})
}

func (b *Backend) updateSettings(c *gin.Context) {
	var req struct {
		Theme       string `json:"theme"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if req.Theme == "light" || req.Theme == "dark" {
		b.Theme = req.Theme
	}
	if req.OldPassword != "" && req.NewPassword != "" {
		if req.OldPassword != b.Password {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "Invalid old password"})
			return
		}
		b.Password = req.NewPassword
	}
	success(c)
}

func (b *Backend) getRecurrences(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, append([]arthik.Recurrence{}, b.Recurrences...))
}

func (b *Backend) saveRecurrence(c *gin.Context) {
	var r arthik.Recurrence
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.ID == "" {
		r.ID = b.nextID("rec")
		b.Recurrences = append(b.Recurrences, r)
		success(c)
		return
	}
	for i := range b.Recurrences {
		if b.Recurrences[i].ID == r.ID {
			b.Recurrences[i] = r
			success(c)
			return
		}
	}
	c.String(http.StatusBadRequest, "recurrence not found")
}

func (b *Backend) deleteRecurrence(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.Recurrences {
		if r.ID == id {
			b.Recurrences = append(b.Recurrences[:i], b.Recurrences[i+1:]...)
			success(c)
			return
		}
	}
	c.String(http.StatusInternalServerError, "Failed to delete recurrence")
}

func (b *Backend) applyRecurrence(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.Recurrences {
		if r.ID != id {
			continue
		}
		tx := arthik.Transaction{
			ID:          b.nextID("tx"),
			From:        r.From,
			To:          r.To,
			Description: r.Description,
			Amount:      r.Amount,
			Date:        r.NextDate.Time(),
		}
		b.Transactions = append([]arthik.Transaction{tx}, b.Transactions...)
		b.Recurrences[i].NextDate = date.New(r.NextDate.Year(), r.NextDate.Month()+1, r.DayOfMonth)
		success(c)
		return
	}
	c.String(http.StatusNotFound, "Recurrence not found")
}

func (b *Backend) getNotes(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, append([]arthik.Note{}, b.Notes...))
}

func (b *Backend) saveNote(c *gin.Context) {
	var n arthik.Note
	if err := c.ShouldBindJSON(&n); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	if len([]rune(n.Content)) > arthik.MaxNoteContentLength || strings.TrimSpace(n.Heading) == "" {
		c.String(http.StatusBadRequest, "input validation failed")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if n.ID == "" {
		n.ID = b.nextID("note")
		if n.Created == "" {
			n.Created = time.Now().Format("2006-01-02 15:04:05")
		}
		b.Notes = append(b.Notes, n)
		success(c)
		return
	}
	for i := range b.Notes {
		if b.Notes[i].ID == n.ID {
			if n.Created == "" {
				n.Created = b.Notes[i].Created
			}
			b.Notes[i] = n
			success(c)
			return
		}
	}
	c.String(http.StatusBadRequest, "note not found")
}

func (b *Backend) deleteNote(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range b.Notes {
		if n.ID == id {
			b.Notes = append(b.Notes[:i], b.Notes[i+1:]...)
			success(c)
			return
		}
	}
	c.String(http.StatusBadRequest, "Note ID required")
}
