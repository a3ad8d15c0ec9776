package model

import (
	"encoding/json"
	"fmt"
)

// Message is a free-form annotation inserted into a group's stream. It never
// counts toward the group's pass/total totals.
type Message struct {
	Kind  MessageKind
	Text  string
	Group int64
	Label string
}

// Render implements Printable.
func (m *Message) Render(_ bool) string {
	return fmt.Sprintf("%s: %s", m.Kind.Label(), m.Text)
}

// Passing implements Printable.
func (m *Message) Passing() bool { return true }

// GroupID implements Printable.
func (m *Message) GroupID() int64 { return m.Group }

// GroupLabel implements Printable.
func (m *Message) GroupLabel() string { return m.Label }

func (m *Message) renumber(offset int64) { m.Group += offset }

// MarshalJSON implements json.Marshaler with the frozen report field names.
func (m *Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Kind       string `json:"kind"`
		Message    string `json:"message"`
		GroupID    int64  `json:"groupId"`
		GroupLabel string `json:"groupLabel"`
	}{"testMessage", m.Kind.String(), m.Text, m.Group, m.Label})
}
