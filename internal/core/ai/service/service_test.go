package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reverse-cookbook/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	lastPrompt string
	response   string
	err        error
	healthy    bool
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.lastPrompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *recordingProvider) Health(ctx context.Context) bool { return p.healthy }
func (p *recordingProvider) GetModel() string                { return "recording" }
func (p *recordingProvider) GetTimeout() time.Duration       { return time.Second }
func (p *recordingProvider) Close() error                    { return nil }

func TestProcessRequestTrimsPrompt(t *testing.T) {
	p := &recordingProvider{response: "ok"}
	svc := NewService(&config.Config{}, p, nil)

	resp, err := svc.ProcessRequest(context.Background(), "  Generate recipes  \n")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.False(t, resp.CacheHit)
	assert.Equal(t, "Generate recipes", p.lastPrompt)
}

func TestProcessRequestPropagatesProviderError(t *testing.T) {
	p := &recordingProvider{err: errors.New("connection refused")}
	svc := NewService(&config.Config{}, p, nil)

	_, err := svc.ProcessRequest(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestHealthDelegatesToProvider(t *testing.T) {
	p := &recordingProvider{healthy: true}
	svc := NewService(&config.Config{}, p, nil)
	assert.True(t, svc.Health(context.Background()))

	p.healthy = false
	assert.False(t, svc.Health(context.Background()))
}
