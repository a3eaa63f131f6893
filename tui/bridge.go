package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/etnz/arthik"
	"github.com/etnz/arthik/controller"
)

type showMsg struct {
	tab     arthik.Tab
	content string
}

type noticeMsg controller.Notice

type loginMsg struct{ message string }

// confirmMsg asks the question of a controller, which waits on reply.
type confirmMsg struct {
	prompt string
	reply  chan<- bool
}

// doneMsg ends an action.
type doneMsg struct{}

// Bridge is the controller.UI of the terminal front-end. It turns every call
// into a message of the running program, so the model is only ever touched
// by the program loop.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewBridge returns a Bridge posting nowhere until attached.
func NewBridge() *Bridge { return &Bridge{} }

// Attach posts the messages to p.
func (b *Bridge) Attach(p *tea.Program) { b.attach(p.Send) }

func (b *Bridge) attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

// Detach drops the messages from now on.
func (b *Bridge) Detach() { b.attach(nil) }

func (b *Bridge) post(msg tea.Msg) bool {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

func (b *Bridge) Show(tab arthik.Tab, content string) { b.post(showMsg{tab, content}) }

func (b *Bridge) Notify(n controller.Notice) { b.post(noticeMsg(n)) }

func (b *Bridge) ShowLogin(message string) { b.post(loginMsg{message}) }

// Confirm blocks until the user answers. It must not be called from the
// program loop. A detached Bridge answers no.
func (b *Bridge) Confirm(prompt string) bool {
	reply := make(chan bool, 1)
	if !b.post(confirmMsg{prompt, reply}) {
		return false
	}
	return <-reply
}
