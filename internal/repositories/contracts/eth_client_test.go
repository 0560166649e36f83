package contracts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialContextKeepsURL(t *testing.T) {
	// http transports connect lazily, no node is needed here
	client, err := DialContext(context.Background(), "http://127.0.0.1:8545")
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, "http://127.0.0.1:8545", client.URL())
}

func TestDialContextInvalidURL(t *testing.T) {
	_, err := DialContext(context.Background(), "foo://bar")
	require.Error(t, err)
}
