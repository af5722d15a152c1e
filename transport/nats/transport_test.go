package nats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/stretchr/testify/assert"

	"github.com/flarexio/simstore"
)

func TestErrorCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("400", ErrorCode(fmt.Errorf("%w: user_name is required", simstore.ErrInvalidInput)))
	assert.Equal("404", ErrorCode(fmt.Errorf("%w for user: bob", simstore.ErrNotFound)))
	assert.Equal("502", ErrorCode(fmt.Errorf("%w: %w", simstore.ErrEmbeddingFailure, errors.New("boom"))))
	assert.Equal("500", ErrorCode(errors.New("anything else")))
}

func TestErrorFromHeaders(t *testing.T) {
	assert := assert.New(t)

	msg := nats.NewMsg("edges.test.simstore.query")
	assert.NoError(Error(msg))

	msg.Header.Set(micro.ErrorCodeHeader, "404")
	msg.Header.Set(micro.ErrorHeader, "no data found for user: bob")

	err := Error(msg)
	assert.ErrorIs(err, simstore.ErrNotFound)
	assert.Equal("404:no data found for user: bob", err.Error())

	msg.Header.Set(micro.ErrorCodeHeader, "500")
	msg.Header.Del(micro.ErrorHeader)

	err = Error(msg)
	assert.Error(err)
	assert.NotErrorIs(err, simstore.ErrNotFound)
	assert.Contains(err.Error(), "unknown error")

	assert.Error(Error(nil))
}
