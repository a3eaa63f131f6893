package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/api"
	"github.com/etnz/arthik/chart"
	"github.com/etnz/arthik/controller"
	"github.com/etnz/arthik/renderer"
	"github.com/etnz/arthik/session"
	"github.com/etnz/arthik/state"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Standard streams of the commands.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// printer is the controller.UI of one-shot commands: views are kept until
// printed, notices go to stderr and confirmations are asked on stdin.
type printer struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	yes    bool
	views  map[arthik.Tab]string
}

func newPrinter(in io.Reader, out, errOut io.Writer, yes bool) *printer {
	return &printer{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		yes:    yes,
		views:  make(map[arthik.Tab]string),
	}
}

func (p *printer) Show(tab arthik.Tab, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views[tab] = content
}

func (p *printer) Notify(n controller.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch n.Level {
	case controller.Success:
		fmt.Fprintf(p.errOut, "✅ %s\n", n.Message)
	case controller.Failure:
		fmt.Fprintf(p.errOut, "Error: %s\n", n.Message)
	default:
		fmt.Fprintln(p.errOut, n.Message)
	}
}

func (p *printer) Confirm(prompt string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.yes {
		return true
	}
	fmt.Fprintf(p.errOut, "%s [y/N] ", prompt)
	line, _ := p.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *printer) ShowLogin(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if message != "" {
		fmt.Fprintln(p.errOut, message)
	}
	fmt.Fprintln(p.errOut, "Run 'arthik login' to open a session.")
}

// ask prompts for a line on stdin.
func (p *printer) ask(prompt string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.errOut, prompt)
	line, _ := p.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func (p *printer) view(tab arthik.Tab) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	content, ok := p.views[tab]
	return content, ok
}

// print writes the last view of tab in the output format.
func (p *printer) print(tab arthik.Tab, dark bool) subcommands.ExitStatus {
	content, ok := p.view(tab)
	if !ok {
		fmt.Fprintf(p.errOut, "Error: nothing to show for %s\n", tab)
		return subcommands.ExitFailure
	}
	out, err := render(content, *format, dark)
	if err != nil {
		fmt.Fprintf(p.errOut, "Error rendering %s: %v\n", tab, err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(p.out, out)
	return subcommands.ExitSuccess
}

// newEnv wires the client around ui. The returned func releases it.
func newEnv(ui controller.UI, logger zerolog.Logger) (*controller.Env, func()) {
	sess := session.New(session.FileStorage{})
	store := state.New(sess)
	env := &controller.Env{
		Store:   store,
		API:     api.New(*serverURL, sess),
		Charts:  chart.NewRenderer(&chart.TextBackend{}, store),
		UI:      ui,
		Logger:  logger,
		Options: renderer.Options{Currency: *currency},
	}

	path, err := session.DefaultPreferencesPath()
	if err != nil {
		logger.Warn().Err(err).Msg("preferences are not stored")
		return env, func() {}
	}
	prefs, err := session.OpenPreferences(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("preferences are not stored")
		return env, func() {}
	}
	env.Prefs = prefs
	return env, func() {
		if err := prefs.Close(); err != nil {
			logger.Warn().Err(err).Msg("cannot close preferences")
		}
	}
}

// open returns the controllers of a one-shot command, printing on the standard streams.
func open() (*controller.Controllers, *printer, func()) {
	ui := newPrinter(stdin, stdout, stderr, *assumeYes)
	env, done := newEnv(ui, log.Logger)
	return controller.New(env), ui, done
}

// authenticated restores the saved session, and reports whether there is one.
func authenticated(c *controller.Controllers) bool {
	if err := c.Env.Store.Session().Hydrate(); err != nil {
		c.Env.Logger.Warn().Err(err).Msg("cannot restore session")
	}
	if !c.Authenticated() {
		c.Env.UI.ShowLogin("")
		return false
	}
	return true
}

func dark(c *controller.Controllers) bool { return c.Settings.Preferences().DarkMode }

func status(ok bool) subcommands.ExitStatus {
	if ok {
		return subcommands.ExitSuccess
	}
	return subcommands.ExitFailure
}
