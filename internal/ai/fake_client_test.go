package ai

import (
	"context"
	"sync"

	"paper2plan/internal/domain"
)

// fakeClient records requests and replays canned answers
type fakeClient struct {
	mu           sync.Mutex
	caps         Capabilities
	generateText string
	generateErr  error
	chatReply    domain.ChatReply
	chatErr      error
	generated    []GenerateRequest
	chats        []ChatRequest
	block        chan struct{}
}

func (f *fakeClient) Capabilities() Capabilities { return f.caps }

func (f *fakeClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, req)
	return f.generateText, f.generateErr
}

func (f *fakeClient) Chat(_ context.Context, req ChatRequest) (domain.ChatReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = append(f.chats, req)
	return f.chatReply, f.chatErr
}

func (f *fakeClient) generateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.generated)
}

func fakeFactory(c *fakeClient) Factory {
	return func(context.Context, ProviderConfig) (Client, error) {
		return c, nil
	}
}
