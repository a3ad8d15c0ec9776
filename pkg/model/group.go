package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Group is one named batch of checks with aggregate pass/total counts and a
// lifecycle status. It owns its children. A Group is not safe for concurrent
// use on its own; the aggregator serializes access to it.
type Group struct {
	name       string
	status     Status
	printables []Printable
	numPassing int
	numTotal   int
	elapsed    time.Duration
}

// NewGroup creates an empty group in the NotFinished state.
func NewGroup(name string) *Group {
	return &Group{name: name, status: NotFinished}
}

// Name returns the group's name.
func (g *Group) Name() string { return g.name }

// Status returns the group's lifecycle status.
func (g *Group) Status() Status { return g.status }

// SetStatus overrides the group's status.
func (g *Group) SetStatus(s Status) { g.status = s }

// NumPassing returns the count of passing Result children.
func (g *Group) NumPassing() int { return g.numPassing }

// NumTotal returns the count of Result children.
func (g *Group) NumTotal() int { return g.numTotal }

// Elapsed returns the group's measured duration.
func (g *Group) Elapsed() time.Duration { return g.elapsed }

// SetElapsed records the group's measured duration.
func (g *Group) SetElapsed(d time.Duration) { g.elapsed = d }

// Len returns the number of children of any kind.
func (g *Group) Len() int { return len(g.printables) }

// Append takes ownership of a child. Only results passed through
// RecordOutcome move the counters; appending alone never does.
func (g *Group) Append(p Printable) {
	g.printables = append(g.printables, p)
}

// RecordOutcome folds one result verdict into the counters.
func (g *Group) RecordOutcome(passed bool) {
	if passed {
		g.numPassing++
	}
	g.numTotal++
}

// Finalize derives the terminal status from the counters, unless an early
// status was already set, and records the elapsed time.
func (g *Group) Finalize(elapsed time.Duration) {
	g.elapsed = elapsed
	if g.status != NotFinished {
		return
	}
	if g.numPassing == g.numTotal {
		g.status = Success
	} else {
		g.status = Failure
	}
}

// Renumber shifts the group id of every child by offset. Used when a nested
// run's groups are merged into a parent aggregator so merged reports keep
// globally unique ids.
func (g *Group) Renumber(offset int64) {
	for _, p := range g.printables {
		if rn, ok := p.(renumberer); ok {
			rn.renumber(offset)
		}
	}
}

// Render produces the group's text block: a header line followed by one
// prefixed line per child kept by the filter.
func (g *Group) Render(collapse bool, filter Filter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %d/%d passed | Status: %s in %f sec\n",
		g.name, g.numPassing, g.numTotal, g.status, g.elapsed.Seconds())
	b.WriteString("----------------------------------------------------------\n")
	for _, p := range g.printables {
		if !filter.keeps(p.Passing()) {
			continue
		}
		fmt.Fprintf(&b, "|- %s\n", p.Render(collapse))
	}
	return b.String()
}

// MarshalJSON implements json.Marshaler with the frozen report field names.
func (g *Group) MarshalJSON() ([]byte, error) {
	printables := g.printables
	if printables == nil {
		printables = []Printable{}
	}
	return json.Marshal(struct {
		Name       string      `json:"name"`
		Status     string      `json:"status"`
		NumPassing int         `json:"numPassing"`
		NumTotal   int         `json:"numTotal"`
		Elapsed    float64     `json:"elapsed"`
		Printables []Printable `json:"printables"`
	}{g.name, g.status.String(), g.numPassing, g.numTotal, g.elapsed.Seconds(), printables})
}
