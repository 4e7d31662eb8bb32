package enrich

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/medclean-cli/internal/resilience"
	"github.com/sells-group/medclean-cli/pkg/anthropic"
)

// mockClient returns canned responses for CreateMessage.
type mockClient struct {
	response *anthropic.MessageResponse
	err      error
	lastReq  anthropic.MessageRequest
	calls    int
}

func (m *mockClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func TestCleanTerm(t *testing.T) {
	mock := &mockClient{response: textResponse("Hypertension\n")}
	c := New(mock, Options{Model: "claude-haiku-4-5-20251001", RatePerSecond: 1000})

	got, err := c.CleanTerm(context.Background(), "hypertention")
	require.NoError(t, err)
	assert.Equal(t, "Hypertension", got)

	require.Equal(t, 1, mock.calls)
	require.Len(t, mock.lastReq.Messages, 1)
	assert.Contains(t, mock.lastReq.Messages[0].Content, "Text: hypertention")
	require.NotNil(t, mock.lastReq.Temperature)
	assert.Zero(t, *mock.lastReq.Temperature)
}

func TestCleanTermAPIError(t *testing.T) {
	mock := &mockClient{err: eris.New("overloaded")}
	c := New(mock, Options{RatePerSecond: 1000})

	_, err := c.CleanTerm(context.Background(), "dm2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clean term")
}

func TestCleanTermEmptyResponse(t *testing.T) {
	mock := &mockClient{response: textResponse("  ")}
	c := New(mock, Options{RatePerSecond: 1000})

	_, err := c.CleanTerm(context.Background(), "dm2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

// flakyClient fails with a transient error until failures is exhausted.
type flakyClient struct {
	failures int
	calls    int
}

func (f *flakyClient) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, resilience.NewTransientError(eris.New("429 too many requests"), 429)
	}
	return textResponse("Hemoglobin"), nil
}

func TestCleanTermRetriesTransientErrors(t *testing.T) {
	mock := &flakyClient{failures: 2}
	c := New(mock, Options{RatePerSecond: 1000})

	got, err := c.CleanTerm(context.Background(), "hb")
	require.NoError(t, err)
	assert.Equal(t, "Hemoglobin", got)
	assert.Equal(t, 3, mock.calls)
}

func TestCleanTermContextCancelled(t *testing.T) {
	mock := &mockClient{response: textResponse("x")}
	c := New(mock, Options{RatePerSecond: 0.001})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// First call consumes the burst token, second blocks on the limiter and
	// must observe the cancelled context.
	_, _ = c.CleanTerm(context.Background(), "a")
	_, err := c.CleanTerm(ctx, "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
