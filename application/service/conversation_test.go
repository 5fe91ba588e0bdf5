package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevault/codevault/internal/database"
)

func TestConversationService_StartStoresBothSides(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	conv, err := env.chats.Start(ctx, "Hello!")
	require.NoError(t, err)
	assert.Equal(t, "Hello!", conv.Title())

	loaded, err := env.chats.Get(ctx, conv.ID())
	require.NoError(t, err)
	require.Len(t, loaded.Messages(), 2)
	assert.True(t, loaded.Messages()[0].FromUser())
	assert.Equal(t, "Hello!", loaded.Messages()[0].Content())
	assert.False(t, loaded.Messages()[1].FromUser())
	assert.Equal(t, "Here is an answer.", loaded.Messages()[1].Content())
}

func TestConversationService_SendAppendsReply(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	conv, err := env.chats.Start(ctx, "Hello!")
	require.NoError(t, err)

	env.generator.content = "Use testify for assertions."
	reply, err := env.chats.Send(ctx, conv.ID(), "What testing library should I use for my code?")
	require.NoError(t, err)
	assert.False(t, reply.FromUser())
	assert.Equal(t, "Use testify for assertions.", reply.Content())

	loaded, err := env.chats.Get(ctx, conv.ID())
	require.NoError(t, err)
	assert.Len(t, loaded.Messages(), 4)
}

func TestConversationService_SendMissingConversation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.chats.Send(context.Background(), 99, "hi")
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestConversationService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	conv, err := env.chats.Start(ctx, "Hello!")
	require.NoError(t, err)
	require.NoError(t, env.chats.Delete(ctx, conv.ID()))

	_, err = env.chats.Get(ctx, conv.ID())
	require.ErrorIs(t, err, database.ErrNotFound)
}
