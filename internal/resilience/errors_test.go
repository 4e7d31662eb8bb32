package resilience

import (
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTransientExplicit(t *testing.T) {
	err := NewTransientError(eris.New("overloaded"), 529)
	assert.True(t, IsTransient(err))
}

func TestIsTransientWrapped(t *testing.T) {
	inner := NewTransientError(eris.New("rate limited"), 429)
	assert.True(t, IsTransient(fmt.Errorf("clean term: %w", inner)))
	assert.True(t, IsTransient(eris.Wrap(inner, "clean term")))
}

func TestIsTransientNil(t *testing.T) {
	assert.False(t, IsTransient(nil))
}

func TestIsTransientPermanentError(t *testing.T) {
	assert.False(t, IsTransient(eris.New("invalid request: prompt too long")))
}

func TestIsTransientSyscallErrors(t *testing.T) {
	assert.True(t, IsTransient(fmt.Errorf("write tcp: %w", syscall.ECONNRESET)))
	assert.True(t, IsTransient(fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)))
}

func TestIsTransientNetTimeout(t *testing.T) {
	var err net.Error = &net.DNSError{Err: "lookup timed out", IsTimeout: true}
	assert.True(t, IsTransient(err))
}

func TestIsTransientStringHeuristics(t *testing.T) {
	for _, msg := range []string{
		"read: connection reset by peer",
		"write: broken pipe",
		"net/http: TLS handshake timeout",
		"Post \"https://api\": i/o timeout",
	} {
		assert.True(t, IsTransient(eris.New(msg)), msg)
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504, 529} {
		assert.True(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}

func TestTransientErrorUnwrap(t *testing.T) {
	inner := eris.New("root cause")
	te := NewTransientError(inner, 503)

	require.ErrorIs(t, te, inner)
	assert.Equal(t, 503, te.StatusCode)
	assert.Equal(t, "root cause", te.Error())
}
