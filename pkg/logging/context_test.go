package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/backend-api/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Same(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger round trips", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		assert.Same(t, tl.Logger, logging.FromContext(ctx))

		logging.FromContext(ctx).Info().Str("path", "/").Msg("request")
		assert.True(t, tl.Contains(`"path":"/"`))
		assert.Len(t, tl.Lines(), 1)
	})

	t.Run("WithLogger nil stores default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, logging.Default(), logging.FromContext(ctx))
	})
}
