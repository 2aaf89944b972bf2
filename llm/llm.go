package llm

import (
	"context"

	"google.golang.org/genai"
)

type Model interface {
	Name() string
	Generate(ctx context.Context, req *Request) (*Response, error)
}

type Request struct {
	Contents       []*genai.Content
	GenerateConfig *genai.GenerateContentConfig
}

type Response struct {
	Content      *genai.Content
	TurnComplete bool
}

// Text returns the concatenated text parts of the response content.
func (r *Response) Text() string {
	if r == nil || r.Content == nil {
		return ""
	}
	var out string
	for _, part := range r.Content.Parts {
		out += part.Text
	}
	return out
}
