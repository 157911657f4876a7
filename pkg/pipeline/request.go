package pipeline

import (
	"github.com/elclanrs/templee/pkg/query"
	"github.com/elclanrs/templee/pkg/types"
)

// Request is a self-contained render job, the wire format of the WebAssembly
// entrypoints.
type Request struct {
	Records  []types.Record `json:"records"`
	Template []string       `json:"template"`
	Wrap     string         `json:"wrap,omitempty"`
	Steps    []string       `json:"steps,omitempty"`
}

// Response carries either the rendered output or an error message.
type Response struct {
	HTML    string         `json:"html,omitempty"`
	Records []types.Record `json:"records,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Query parses the request steps and applies them to its records.
func (r Request) Query(opts ...query.Option) (*query.Collection, error) {
	steps, err := ParseSteps(r.Steps)
	if err != nil {
		return nil, err
	}
	return Apply(query.New(r.Records, opts...), steps), nil
}

// Render runs the query and expands the template over the result.
func (r Request) Render(opts ...query.Option) (string, error) {
	c, err := r.Query(opts...)
	if err != nil {
		return "", err
	}
	return c.HTMLParts(r.Template, r.Wrap), nil
}
