package clock

import (
	"context"
	"strings"
	"time"
	_ "time/tzdata" // time zones are resolved without the host database

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/tools"
)

// ToolName is the name of the clock tool
const ToolName = "get_current_time"

// Layout of the reported time
const Layout = "2006-01-02 15:04:05 MST-0700"

// Request is the input of the tool
type Request struct {
	City string `json:"city" yaml:"city" jsonschema:"title=City,description=Name of the city,example=New York" validate:"required" fake:"New York"`
}

// Result is the output of the tool
type Result struct {
	City     string `json:"city" yaml:"city"`
	Timezone string `json:"timezone" yaml:"timezone"`
	Time     string `json:"time" yaml:"time"`
	Report   string `json:"report" yaml:"report"`
}

// Zones maps lower-case city names to IANA time zones
var Zones = map[string]struct {
	City string
	Zone string
}{
	"new york": {City: "New York", Zone: "America/New_York"},
}

// Clock returns the time in a city
type Clock struct {
	now func() time.Time
}

// New returns the clock tool using the system time
func New() (*tools.Function[Request, Result], error) {
	return NewWithClock(time.Now)
}

// NewWithClock returns the clock tool with the provided time source
func NewWithClock(now func() time.Time) (*tools.Function[Request, Result], error) {
	if now == nil {
		return nil, errors.New("time source is required")
	}
	c := &Clock{now: now}
	return tools.NewFunction(ToolName,
		"Returns the current local time in a city.",
		c.Lookup)
}

// Lookup returns the current time in the city
func (c *Clock) Lookup(_ context.Context, req *Request) (*Result, error) {
	z, ok := Zones[strings.ToLower(strings.TrimSpace(req.City))]
	if !ok {
		return nil, errors.WithMessagef(tools.ErrNotFound, "timezone information for %q is not available", req.City)
	}
	loc, err := time.LoadLocation(z.Zone)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load time zone %s", z.Zone)
	}

	now := c.now().In(loc).Format(Layout)
	return &Result{
		City:     z.City,
		Timezone: z.Zone,
		Time:     now,
		Report:   "The current time in " + z.City + " is " + now,
	}, nil
}
