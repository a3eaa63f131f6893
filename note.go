package arthik

import (
	"time"

	"github.com/etnz/arthik/date"
)

// Note is a free-form planner note. An empty ID means not yet created.
type Note struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Content string `json:"content"`
	Created string `json:"created,omitempty"`
}

// NoteInput is the form of a note being written.
type NoteInput struct {
	Heading string
	Content string
}

// CreatedAt parses the creation timestamp. The backend has used both RFC3339
// and "2006-01-02 15:04:05".
func (n Note) CreatedAt() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", date.DateFormat} {
		if t, err := time.Parse(layout, n.Created); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindNote returns the note with the given id.
func FindNote(notes []Note, id string) (Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}
