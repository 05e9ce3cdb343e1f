package llm

import "context"

// StaticGenerator returns canned text. Used in tests and as the
// explicit "no model configured" backend.
type StaticGenerator struct {
	Text string
	Err  error

	// Requests records every call for assertions.
	Requests []Request
}

func (g *StaticGenerator) Name() string { return "static" }

func (g *StaticGenerator) Generate(_ context.Context, req Request) (string, error) {
	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Text, nil
}
