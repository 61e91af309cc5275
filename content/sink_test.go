package content

import (
	"context"
	"testing"

	"github.com/hupe1980/editorialmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.ContentSink = (*InMemorySink)(nil)

func TestInMemorySink_PublishRefusesMalformed(t *testing.T) {
	s := NewInMemorySink()

	assert.Error(t, s.Publish(context.Background(), core.Article{Title: "t"}))
	assert.Error(t, s.Publish(context.Background(), core.Article{Body: "b"}))
	assert.Empty(t, s.Articles())
}

func TestInMemorySink_PublishRetainsOrder(t *testing.T) {
	s := NewInMemorySink()

	require.NoError(t, s.Publish(context.Background(), core.Article{ID: "1", Title: "first", Body: "b"}))
	require.NoError(t, s.Publish(context.Background(), core.Article{ID: "2", Title: "second", Body: "b"}))

	articles := s.Articles()
	require.Len(t, articles, 2)
	assert.Equal(t, "first", articles[0].Title)
	assert.Equal(t, "second", articles[1].Title)
}
