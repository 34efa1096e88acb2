package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"swapdmarket/internal/domain/entity"
)

func TestNewPublisher_WithoutURLIsNoop(t *testing.T) {
	p := NewPublisher("")

	assert.IsType(t, noop{}, p)
	assert.NoError(t, p.PublishChatCreated(context.Background(), &entity.Chat{ID: "c1"}))
	assert.NoError(t, p.PublishEscrowRequested(context.Background(), "c1", &entity.Message{}))
	assert.NoError(t, p.PublishProductDeleted(context.Background(), "p1", "u1", 0))
	assert.NoError(t, p.Close())
}
