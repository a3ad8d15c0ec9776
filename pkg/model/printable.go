// Package model defines the entity family a test run is reported through:
// Printables (results, errors, free-form messages) and the Group that owns
// and aggregates them.
package model

import (
	"encoding/json"
	"fmt"
)

// Printable is anything that can appear in a group's result stream.
type Printable interface {
	json.Marshaler

	// Render returns the display text. Collapse drops secondary detail.
	Render(collapse bool) string
	// Passing reports the pass state used by report filters. Entries with no
	// pass semantics (messages, detached errors) report true.
	Passing() bool
	// GroupID is the id of the check invocation that produced this entry.
	GroupID() int64
	// GroupLabel is the name of the owning group.
	GroupLabel() string
}

// renumberer lets the owning Group shift ids when a nested run is merged
// into a parent. Implemented by every Printable in this package.
type renumberer interface {
	renumber(offset int64)
}

// Status is the lifecycle state of a Group.
type Status int

// Group statuses.
const (
	NotFinished Status = iota
	Success
	Failure
	SuccessEarly
	FailureEarly
)

// statusNames keeps the exact strings earlier report consumers parse.
var statusNames = map[Status]string{
	NotFinished:  "DID NOT FINISH",
	Success:      "SUCCESS",
	Failure:      "FAILURE",
	SuccessEarly: "SUCCESS EARLY",
	FailureEarly: "FAILURE EARLY",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "none"
}

// ParseStatus maps a rendered status string back to its Status.
func ParseStatus(text string) (Status, error) {
	for status, name := range statusNames {
		if name == text {
			return status, nil
		}
	}
	return NotFinished, fmt.Errorf("unknown status %q", text)
}

// MessageKind classifies a free-form Message.
type MessageKind int

// Message kinds.
const (
	KindLog MessageKind = iota
	KindWarning
	KindSevere
	KindFail
)

var kindNames = map[MessageKind]string{
	KindLog:     "log",
	KindWarning: "warning",
	KindSevere:  "severe",
	KindFail:    "fail",
}

func (k MessageKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "log"
}

// Label returns the uppercase prefix used in rendered report lines.
func (k MessageKind) Label() string {
	switch k {
	case KindWarning:
		return "WARNING"
	case KindSevere:
		return "SEVERE"
	case KindFail:
		return "FAIL"
	default:
		return "LOG"
	}
}

// Filter selects which children a group render includes.
type Filter int

// Render filters.
const (
	All Filter = iota
	PassingOnly
	FailingOnly
)

// ParseFilter maps a CLI flag value to a Filter.
func ParseFilter(text string) (Filter, error) {
	switch text {
	case "", "all", "both":
		return All, nil
	case "passing", "pass":
		return PassingOnly, nil
	case "failing", "fail":
		return FailingOnly, nil
	}
	return All, fmt.Errorf("unknown filter %q (want all, passing or failing)", text)
}

func (f Filter) keeps(passing bool) bool {
	switch f {
	case PassingOnly:
		return passing
	case FailingOnly:
		return !passing
	default:
		return true
	}
}
