package model

import (
	"fmt"
	"runtime"
)

// CallSite is an opaque call-site descriptor attached to results for
// diagnostics. The engine treats it as an input and never interprets it.
type CallSite struct {
	Location string // file:line
	Function string // enclosing function
}

const notSpecified = "(not specified)"

// Capture records the call site skip frames above the caller. It is a
// convenience for callers that do not supply their own descriptor.
func Capture(skip int) CallSite {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallSite{Location: notSpecified, Function: notSpecified}
	}
	site := CallSite{
		Location: fmt.Sprintf("%s:%d", file, line),
		Function: notSpecified,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = fn.Name()
	}
	return site
}

func (c CallSite) orUnspecified() CallSite {
	if c.Location == "" {
		c.Location = notSpecified
	}
	if c.Function == "" {
		c.Function = notSpecified
	}
	return c
}
