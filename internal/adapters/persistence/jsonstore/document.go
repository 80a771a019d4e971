package jsonstore

import (
	"encoding/json"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
)

// Document is the persisted layout of database.json
type Document struct {
	Accounts        []*models.Account        `json:"adminUsers"`
	ContactMessages []*models.ContactMessage `json:"contactMessages"`
	VirtualTours    []*models.TourRequest    `json:"virtualTours"`
	Sequences       Sequences                `json:"sequences"`
}

// Sequences holds the last identifier handed out per collection.
// They only grow, so identifiers are never reused after a delete.
type Sequences struct {
	Accounts        uint `json:"adminUsers"`
	ContactMessages uint `json:"contactMessages"`
	VirtualTours    uint `json:"virtualTours"`
}

func newDocument() *Document {
	return &Document{
		Accounts:        []*models.Account{},
		ContactMessages: []*models.ContactMessage{},
		VirtualTours:    []*models.TourRequest{},
	}
}

func (d *Document) marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// normalize fills nil collections and raises sequences to at least the
// highest stored id (files written before sequences existed carry none).
func (d *Document) normalize() {
	if d.Accounts == nil {
		d.Accounts = []*models.Account{}
	}
	if d.ContactMessages == nil {
		d.ContactMessages = []*models.ContactMessage{}
	}
	if d.VirtualTours == nil {
		d.VirtualTours = []*models.TourRequest{}
	}

	for _, a := range d.Accounts {
		d.Sequences.Accounts = max(d.Sequences.Accounts, a.ID)
	}
	for _, m := range d.ContactMessages {
		d.Sequences.ContactMessages = max(d.Sequences.ContactMessages, m.ID)
	}
	for _, t := range d.VirtualTours {
		d.Sequences.VirtualTours = max(d.Sequences.VirtualTours, t.ID)
	}
}

// clone deep-copies the document so a mutation can be prepared without
// touching the committed state
func (d *Document) clone() *Document {
	c := &Document{
		Accounts:        cloneRecords(d.Accounts),
		ContactMessages: cloneRecords(d.ContactMessages),
		VirtualTours:    cloneRecords(d.VirtualTours),
		Sequences:       d.Sequences,
	}
	for _, a := range c.Accounts {
		if a.LastLogin != nil {
			t := *a.LastLogin
			a.LastLogin = &t
		}
	}
	return c
}

func cloneRecords[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}
