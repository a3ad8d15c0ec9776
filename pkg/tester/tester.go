// Package tester is an embeddable assertion-and-reporting engine. Callers
// register comparisons, ranged invocations or vector-driven invocations of
// arbitrary callables and the engine aggregates pass/fail outcomes into a
// hierarchical report, rendered as text or JSON.
//
// All checks execute synchronously on the caller's goroutine. A Tester may be
// used from several goroutines at once; three independent locks protect the
// finished-group list, the group under construction and the settings map.
package tester

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polyllc/gotester/pkg/model"
)

const defaultGroupName = "(default)"

// Tester owns an ordered, append-only list of finished groups plus the group
// currently under construction, and exposes the public check operations.
type Tester struct {
	groupsMu   sync.Mutex // guards groups
	currentMu  sync.Mutex // guards current and out
	settingsMu sync.Mutex // guards settings

	groups   []*model.Group
	current  *model.Group
	nextID   atomic.Int64 // monotonic group-id counter, never reused
	settings map[Setting]bool
	out      io.Writer
}

// New creates a Tester with an implicit "(default)" group under construction.
func New() *Tester {
	return &Tester{
		current:  model.NewGroup(defaultGroupName),
		settings: make(map[Setting]bool),
		out:      os.Stdout,
	}
}

// UpdateSetting sets a boolean engine option.
func (t *Tester) UpdateSetting(s Setting, v bool) {
	t.settingsMu.Lock()
	defer t.settingsMu.Unlock()
	t.settings[s] = v
}

// GetSetting reads a boolean engine option.
func (t *Tester) GetSetting(s Setting) bool {
	t.settingsMu.Lock()
	defer t.settingsMu.Unlock()
	return t.settings[s]
}

// SetOutput redirects immediate (PrintSync) rendering. The default is stdout.
func (t *Tester) SetOutput(w io.Writer) {
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	t.out = w
}

// SetStatus overrides the current group's status.
func (t *Tester) SetStatus(s model.Status) {
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	t.current.SetStatus(s)
}

// Note appends a free-form annotation to the current group. Notes never move
// the pass/total counters.
func (t *Tester) Note(text string, kind model.MessageKind) {
	id := t.nextGroupID()
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	msg := &model.Message{Kind: kind, Text: text, Group: id, Label: t.current.Name()}
	t.current.Append(msg)
	if t.GetSetting(PrintSync) {
		fmt.Fprintln(t.out, msg.Render(false))
	}
}

// Run executes fn against a fresh, isolated sub-Tester that shares this
// Tester's settings, recording everything fn checks under a group called
// name. A panic or returned error ends the group FailureEarly instead of
// propagating. The finished groups are moved into this Tester with their ids
// renumbered from its counter, so merged reports keep globally unique ids.
func (t *Tester) Run(name string, fn func(sub *Tester) error) {
	sub := New()
	sub.current = model.NewGroup(name)
	t.settingsMu.Lock()
	for s, v := range t.settings {
		sub.settings[s] = v
	}
	t.settingsMu.Unlock()
	t.currentMu.Lock()
	sub.out = t.out
	t.currentMu.Unlock()

	if sub.GetSetting(PrintSync) {
		fmt.Fprintln(sub.out, sub.currentRender(false, model.All))
	}

	start := time.Now()
	if err := invokeRun(fn, sub); err != nil {
		sub.Note("Test ended prematurely: "+err.Error(), model.KindFail)
		sub.SetStatus(model.FailureEarly)
	}
	elapsed := time.Since(start)

	sub.currentMu.Lock()
	finished := sub.current
	sub.currentMu.Unlock()
	finished.Finalize(elapsed)

	sub.groupsMu.Lock()
	moved := append(sub.groups, finished)
	sub.groups = nil
	sub.groupsMu.Unlock()

	span := sub.nextID.Load()
	offset := t.nextID.Add(span) - span

	t.groupsMu.Lock()
	defer t.groupsMu.Unlock()
	for _, g := range moved {
		g.Renumber(offset)
		t.groups = append(t.groups, g)
	}
}

func invokeRun(fn func(*Tester) error, sub *Tester) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(sub)
}

// GroupSummary is a caller-owned snapshot of one group's aggregate state.
type GroupSummary struct {
	Name       string
	Status     model.Status
	NumPassing int
	NumTotal   int
	Elapsed    time.Duration
}

// Summaries returns one summary per finished group plus the group under
// construction, in report order.
func (t *Tester) Summaries() []GroupSummary {
	t.groupsMu.Lock()
	groups := append([]*model.Group(nil), t.groups...)
	t.groupsMu.Unlock()

	summaries := make([]GroupSummary, 0, len(groups)+1)
	for _, g := range groups {
		summaries = append(summaries, summarize(g))
	}
	t.currentMu.Lock()
	summaries = append(summaries, summarize(t.current))
	t.currentMu.Unlock()
	return summaries
}

func summarize(g *model.Group) GroupSummary {
	return GroupSummary{
		Name:       g.Name(),
		Status:     g.Status(),
		NumPassing: g.NumPassing(),
		NumTotal:   g.NumTotal(),
		Elapsed:    g.Elapsed(),
	}
}

// Render produces the full text report: each finished group's block followed
// by the still-open current group.
func (t *Tester) Render(collapse bool, filter model.Filter) string {
	var b strings.Builder
	t.groupsMu.Lock()
	groups := append([]*model.Group(nil), t.groups...)
	t.groupsMu.Unlock()
	for _, g := range groups {
		b.WriteString(g.Render(collapse, filter))
		b.WriteByte('\n')
	}
	b.WriteString(t.currentRender(collapse, filter))
	return b.String()
}

// WriteReport writes the text report to w.
func (t *Tester) WriteReport(w io.Writer, collapse bool, filter model.Filter) error {
	_, err := io.WriteString(w, t.Render(collapse, filter))
	return err
}

// JSON renders the whole report as a {"testResults":[...]} envelope, with the
// still-open current group first for visibility into in-progress state.
func (t *Tester) JSON() ([]byte, error) {
	var parts []json.RawMessage

	t.currentMu.Lock()
	cur, err := json.Marshal(t.current)
	t.currentMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("encode current group: %w", err)
	}
	parts = append(parts, cur)

	t.groupsMu.Lock()
	groups := append([]*model.Group(nil), t.groups...)
	t.groupsMu.Unlock()
	for _, g := range groups {
		raw, err := json.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("encode group %q: %w", g.Name(), err)
		}
		parts = append(parts, raw)
	}

	return json.Marshal(struct {
		TestResults []json.RawMessage `json:"testResults"`
	}{parts})
}

func (t *Tester) currentRender(collapse bool, filter model.Filter) string {
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	return t.current.Render(collapse, filter)
}

// nextGroupID allocates the next group id. Every check call is a new group.
func (t *Tester) nextGroupID() int64 {
	return t.nextID.Add(1)
}

func (t *Tester) currentName() string {
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	return t.current.Name()
}

func (t *Tester) markFailureEarly() {
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	t.current.SetStatus(model.FailureEarly)
}

// addResult appends a result copy to the current group and updates its
// counters. Nothing more is recorded once the group ended FailureEarly.
func (t *Tester) addResult(r model.Result) {
	t.currentMu.Lock()
	defer t.currentMu.Unlock()
	if t.current.Status() == model.FailureEarly {
		return
	}
	stored := r.Clone()
	t.current.Append(&stored)
	t.current.RecordOutcome(stored.Passed)
	if t.GetSetting(PrintSync) {
		fmt.Fprintln(t.out, stored.Render(false))
	}
}

func (t *Tester) addResults(results []model.Result) {
	for i := range results {
		t.addResult(results[i])
	}
}
