package nav

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/api"
	"github.com/etnz/arthik/api/apitest"
	"github.com/etnz/arthik/chart"
	"github.com/etnz/arthik/controller"
	"github.com/etnz/arthik/renderer"
	"github.com/etnz/arthik/session"
	"github.com/etnz/arthik/state"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	views   map[arthik.Tab]string
	shown   map[arthik.Tab]int
	notices []string
	logins  int
}

func (r *recorder) Show(tab arthik.Tab, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[tab] = content
	r.shown[tab]++
}

func (r *recorder) Notify(n controller.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n.Message)
}

func (r *recorder) Confirm(string) bool { return true }

func (r *recorder) ShowLogin(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins++
}

func (r *recorder) count(tab arthik.Tab) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shown[tab]
}

func (r *recorder) view(tab arthik.Tab) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[tab]
}

func setup(t *testing.T) (*Navigator, *apitest.Backend, *recorder) {
	t.Helper()
	backend := apitest.New(t)
	backend.Accounts = []arthik.Account{{Name: "Bank Account", Category: arthik.Assets, IncludeInNetWorth: true, CurrentBalance: arthik.M(1500)}}
	backend.Dashboard = arthik.Dashboard{TotalAssets: arthik.M(1500), NetWorth: arthik.M(1500), MonthIncome: arthik.M(100)}
	backend.TransactionsN(250)

	sess := session.New(session.NewMemoryStorage())
	store := state.New(sess)
	ui := &recorder{views: make(map[arthik.Tab]string), shown: make(map[arthik.Tab]int)}
	c := controller.New(&controller.Env{
		Store:   store,
		API:     api.New(backend.URL(), sess),
		Charts:  chart.NewRenderer(&chart.TextBackend{}, store),
		UI:      ui,
		Logger:  zerolog.Nop(),
		Options: renderer.Options{Currency: "USD"},
	})
	n := New(c, 0)
	t.Cleanup(n.Close)
	return n, backend, ui
}

func login(t *testing.T, n *Navigator) {
	t.Helper()
	require.True(t, n.Dispatch(context.Background(), Action{Kind: Login, Text: "secret"}))
}

func TestShowRunsTabLoad(t *testing.T) {
	n, backend, _ := setup(t)
	ctx := context.Background()
	login(t, n)
	assert.Equal(t, arthik.TabDashboard, n.Active())

	require.True(t, n.Dispatch(ctx, Action{Kind: NextPage}))
	require.True(t, n.Show(ctx, arthik.TabLedger))
	assert.Equal(t, arthik.TabLedger, n.Active())
	assert.Equal(t, 1, n.Controllers().Env.Store.Page(), "the ledger opens on its first page")
	assert.Equal(t, 2, backend.Calls(http.MethodGet, "/api/transactions"))

	require.True(t, n.Show(ctx, arthik.TabPlanner))
	assert.Equal(t, 1, backend.Calls(http.MethodGet, "/api/recurrence"))
	assert.Equal(t, 1, backend.Calls(http.MethodGet, "/api/notes"))

	require.True(t, n.Show(ctx, arthik.TabAccounts))
	assert.Equal(t, 2, backend.Calls(http.MethodGet, "/api/accounts"))

	require.True(t, n.Show(ctx, arthik.TabDashboard))
	assert.Equal(t, 2, backend.Calls(http.MethodGet, "/api/dashboard"))

	assert.False(t, n.Show(ctx, arthik.Tab("settings")))
}

func TestShowLoggedOut(t *testing.T) {
	n, backend, ui := setup(t)
	assert.False(t, n.Show(context.Background(), arthik.TabLedger))
	assert.Equal(t, 1, ui.logins)
	assert.Equal(t, arthik.TabLogin, n.Active())
	assert.Empty(t, backend.Requests())
}

func TestCycle(t *testing.T) {
	n, _, _ := setup(t)
	ctx := context.Background()
	login(t, n)
	require.True(t, n.Dispatch(ctx, Action{Kind: PreviousTab}))
	assert.Equal(t, arthik.TabPlanner, n.Active())
	require.True(t, n.Dispatch(ctx, Action{Kind: NextTab}))
	assert.Equal(t, arthik.TabDashboard, n.Active())
}

func TestDispatchPages(t *testing.T) {
	n, _, ui := setup(t)
	ctx := context.Background()
	login(t, n)

	assert.False(t, n.Dispatch(ctx, Action{Kind: PreviousPage}))
	assert.True(t, n.Dispatch(ctx, Action{Kind: NextPage}))
	assert.True(t, n.Dispatch(ctx, Action{Kind: NextPage}))
	assert.False(t, n.Dispatch(ctx, Action{Kind: NextPage}))
	assert.Contains(t, ui.view(arthik.TabLedger), "Page 3 of 3")
}

func TestDispatchToggleHideAmounts(t *testing.T) {
	n, _, ui := setup(t)
	ctx := context.Background()
	login(t, n)

	require.True(t, n.Dispatch(ctx, Action{Kind: ToggleHideAmounts}))
	assert.Contains(t, ui.view(arthik.TabDashboard), renderer.Hidden)
	require.True(t, n.Dispatch(ctx, Action{Kind: ToggleHideAmounts}))
	assert.NotContains(t, ui.view(arthik.TabDashboard), renderer.Hidden)
}

func TestDispatchEditCancel(t *testing.T) {
	n, _, ui := setup(t)
	ctx := context.Background()
	login(t, n)

	require.True(t, n.Dispatch(ctx, Action{Kind: EditTransaction, ID: "tx-3"}))
	assert.Contains(t, ui.view(arthik.TabLedger), "Editing transaction tx-3")
	require.True(t, n.Dispatch(ctx, Action{Kind: CancelTransaction}))
	assert.NotContains(t, ui.view(arthik.TabLedger), "Editing transaction")
}

func TestDispatchUnknown(t *testing.T) {
	n, _, _ := setup(t)
	assert.False(t, n.Dispatch(context.Background(), Action{Kind: numKinds}))
}

func TestKindNames(t *testing.T) {
	seen := make(map[string]Kind)
	for k := Kind(0); k < numKinds; k++ {
		name := k.String()
		if name == "" || strings.HasPrefix(name, "Kind(") {
			t.Errorf("kind %d has no name", k)
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("kinds %d and %d are both named %q", prev, k, name)
		}
		seen[name] = k
	}
}

func TestResizeOnlyOnDashboard(t *testing.T) {
	n, _, ui := setup(t)
	ctx := context.Background()

	// logged out
	n.Resized(80)
	time.Sleep(2 * MinQuietPeriod)
	assert.Zero(t, ui.count(arthik.TabDashboard))

	login(t, n)
	before := ui.count(arthik.TabDashboard)
	for w := 70; w < 80; w++ {
		n.Dispatch(ctx, Action{Kind: Resize, Width: w})
	}
	assert.Eventually(t, func() bool { return ui.count(arthik.TabDashboard) > before }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(2 * MinQuietPeriod)
	assert.Equal(t, before+1, ui.count(arthik.TabDashboard), "a burst of resizes draws once")

	require.True(t, n.Show(ctx, arthik.TabLedger))
	before = ui.count(arthik.TabDashboard)
	n.Resized(100)
	time.Sleep(2 * MinQuietPeriod)
	assert.Equal(t, before, ui.count(arthik.TabDashboard), "resizes are ignored off the dashboard")
}

func TestDebouncer(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	d := NewDebouncer(time.Millisecond, func() {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})
	assert.Equal(t, MinQuietPeriod, d.Quiet())

	d.Trigger()
	d.Trigger()
	d.Stop()
	time.Sleep(2 * MinQuietPeriod)
	mu.Lock()
	assert.Zero(t, calls)
	mu.Unlock()

	d.Trigger()
	time.Sleep(2 * MinQuietPeriod)
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}
