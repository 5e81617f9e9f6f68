package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/recommendations/internal/recommendation/domain"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestRunPublishURLSchema(t *testing.T) {
	ctx := context.Background()
	schema := domain.NewURLSchema("recommendations", "/api/recommendations")

	t.Run("success", func(t *testing.T) {
		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, "url-schema", []byte(nil), mock.MatchedBy(func(value []byte) bool {
			var published domain.URLSchema
			return json.Unmarshal(value, &published) == nil &&
				published.Service == "recommendations" &&
				published.Endpoints[0].Path == "^/api/recommendations/"
		})).Return(nil).Once()

		var out bytes.Buffer
		err := RunPublishURLSchema(ctx, publisher, discardLogger(), &out, "url-schema", schema)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "URL schema was published")
		publisher.AssertExpectations(t)
	})

	t.Run("publish error", func(t *testing.T) {
		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, "url-schema", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		var out bytes.Buffer
		err := RunPublishURLSchema(ctx, publisher, discardLogger(), &out, "url-schema", schema)

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, out.String())
	})
}
