package main

import (
	"context"

	"github.com/tokenburn/tokenburn/internal/bench"
	"github.com/tokenburn/tokenburn/internal/chat"
)

// chatStreamClient adapts the chat-completion transport to the engine's
// collaborator interface.
type chatStreamClient struct {
	client *chat.Client
}

func (c *chatStreamClient) StreamCompletion(ctx context.Context, model, prompt string, maxTokens int) (bench.FragmentStream, error) {
	reader, err := c.client.StreamCompletion(ctx, model, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return &chatFragmentStream{reader: reader}, nil
}

type chatFragmentStream struct {
	reader *chat.ChunkReader
}

func (s *chatFragmentStream) Recv(ctx context.Context) (bench.Fragment, error) {
	chunk, err := s.reader.Next(ctx)
	if err != nil {
		return bench.Fragment{}, err
	}
	return bench.Fragment{Content: chunk.Content, Terminal: chunk.Done}, nil
}

func (s *chatFragmentStream) Close() error {
	return s.reader.Close()
}
