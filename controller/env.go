// Package controller implements the user flows of the client: loading,
// creating, editing and deleting each entity, logging in and out, and the
// settings.
//
// A controller never returns a backend failure to its caller. It shows a
// notice, logs what deserves it, and leaves the state store as it was. The
// boolean results only tell the caller whether the flow went through, so a
// command line can set its exit status.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/api"
	"github.com/etnz/arthik/chart"
	"github.com/etnz/arthik/renderer"
	"github.com/etnz/arthik/session"
	"github.com/etnz/arthik/state"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Level is the severity of a Notice.
type Level int

const (
	Info Level = iota
	Success
	Failure
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Failure:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message for the user.
type Notice struct {
	Level   Level
	Message string
}

// UI is what the controllers need from a user interface.
//
// Show and ShowLogin may be called from several goroutines: the forced
// logout of an expired session runs wherever the failing request ran.
type UI interface {
	// Show replaces the content of the view of tab.
	Show(tab arthik.Tab, content string)
	// Notify shows n to the user.
	Notify(n Notice)
	// Confirm asks a yes/no question. It blocks until answered.
	Confirm(prompt string) bool
	// ShowLogin switches to the login view, with msg as a notice if not empty.
	ShowLogin(msg string)
}

// Env is the environment shared by the controllers.
type Env struct {
	Store   *state.Store
	API     *api.Client
	Charts  *chart.Renderer
	UI      UI
	Logger  zerolog.Logger
	Options renderer.Options
	Prefs   *session.PreferenceStore // optional, preferences are not durable without it
	Now     func() time.Time         // defaults to time.Now

	mu sync.Mutex // guards Options once controllers run
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// localNow is now in the display location.
func (e *Env) localNow() time.Time {
	now := e.now()
	if loc := e.options().Location; loc != nil {
		now = now.In(loc)
	}
	return now
}

func (e *Env) options() renderer.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Options
}

func (e *Env) setHideAmounts(hide bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Options.HideAmounts = hide
}

// notify shows a notice of level l.
func (e *Env) notify(l Level, msg string) { e.UI.Notify(Notice{Level: l, Message: msg}) }

// fail reports err, the failure of the flow described by what, e.g. "Failed
// to load accounts". Authentication failures are not reported: the forced
// logout already told the user.
func (e *Env) fail(what string, err error) {
	kind := api.Classify(err)
	switch kind {
	case api.KindNone:
		return
	case api.KindAuth:
		e.Logger.Debug().Err(err).Msg(what)
		return
	case api.KindTransport:
		e.Logger.Error().Err(err).Msg(what)
	default:
		e.Logger.Info().Err(err).Str("kind", kind.String()).Msg(what)
	}
	e.notify(Failure, api.UserMessage(err, what))
}

// load is one collection reload.
type load struct {
	what   string                      // notice on failure
	fetch  func(context.Context) error // fetches and commits the collection
	render func()                      // renders the views of the collection
}

// reload runs the fetches of loads concurrently, then renders the views of
// the ones that succeeded, in order, and reports the failures. A failing
// fetch does not cancel the others. Nothing is rendered if the store was
// reset in between.
func (e *Env) reload(ctx context.Context, loads ...load) bool {
	gen := e.Store.Generation()
	errs := make([]error, len(loads))
	var g errgroup.Group
	for i, l := range loads {
		g.Go(func() error {
			errs[i] = l.fetch(ctx)
			return nil
		})
	}
	g.Wait()

	ok := true
	current := e.Store.Generation() == gen
	for i, l := range loads {
		if errs[i] != nil {
			ok = false
			e.fail(l.what, errs[i])
			continue
		}
		if current && l.render != nil {
			l.render()
		}
	}
	return ok && current
}

// fetch returns a load fetch committing the result of get with set, unless
// the store was reset while the request was in flight.
func fetch[T any](e *Env, get func(context.Context) (T, error), set func(T)) func(context.Context) error {
	return func(ctx context.Context) error {
		gen := e.Store.Generation()
		v, err := get(ctx)
		if err != nil {
			return err
		}
		e.Store.Commit(gen, func() { set(v) })
		return nil
	}
}
