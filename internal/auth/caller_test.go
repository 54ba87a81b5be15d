package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	c := &Caller{ID: uuid.New(), Role: "miembro"}
	ctx := WithCaller(context.Background(), c)
	assert.Same(t, c, FromContext(ctx))

	anon := WithCaller(context.Background(), nil)
	assert.Nil(t, FromContext(anon))
}
