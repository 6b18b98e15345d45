// Package llm defines the model-client contract shared by providers.
package llm

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model    string
	Messages []Message
}

type Result struct {
	Text string
}

// Client is implemented by each model provider.
type Client interface {
	Chat(ctx context.Context, req Request) (Result, error)
}

// Generator adapts a Client to single-prompt generation with a fixed
// model.
type Generator struct {
	Client Client
	Model  string
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.Client.Chat(ctx, Request{
		Model:    g.Model,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
