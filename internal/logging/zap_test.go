package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewZapLogger(t *testing.T) {
	for _, dev := range []bool{true, false} {
		l, err := NewZapLogger(dev)
		require.NoError(t, err)
		require.NotNil(t, l)

		child := l.With("component", "test")
		require.NotNil(t, child)
		child.Info(context.Background(), "hello", "k", "v")
	}
}

func TestNopLoggerSatisfiesInterface(t *testing.T) {
	var l Logger = NewNopLogger()
	l.Info(context.Background(), "ignored")
	require.Equal(t, l.With("k", "v"), l.With())
}
