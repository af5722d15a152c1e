package simstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flarexio/simstore/embedding/lookup"
)

func TestLoggingMiddleware(t *testing.T) {
	assert := assert.New(t)

	core, logs := observer.New(zapcore.InfoLevel)

	provider := lookup.NewProvider(newTable())
	svc := LoggingMiddleware(zap.New(core))(NewService(provider))

	ctx := context.Background()

	err := svc.Put(ctx, "alice", []string{"I love cats", "I love dogs"})
	assert.NoError(err)

	match, err := svc.Query(ctx, "alice", "I adore my kitten")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("I love cats", match.Text)

	_, err = svc.Query(ctx, "bob", "I adore my kitten")
	assert.ErrorIs(err, ErrNotFound)

	stored := logs.FilterMessage("strings stored").All()
	if assert.Len(stored, 1) {
		fields := stored[0].ContextMap()
		assert.Equal("put", fields["action"])
		assert.Equal("alice", fields["user_name"])
		assert.Equal(int64(2), fields["count"])
	}

	found := logs.FilterMessage("most similar string found").All()
	if assert.Len(found, 1) {
		assert.Equal(int64(0), found[0].ContextMap()["index"])
	}

	failed := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if assert.Len(failed, 1) {
		assert.Equal("bob", failed[0].ContextMap()["user_name"])
		assert.Contains(failed[0].Message, "no data found")
	}
}
