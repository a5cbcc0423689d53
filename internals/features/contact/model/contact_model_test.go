package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionMessage(t *testing.T) {
	assert.True(t, CanTransitionMessage(MessageNew, MessageRead))
	assert.True(t, CanTransitionMessage(MessageNew, MessageReplied))
	assert.True(t, CanTransitionMessage(MessageRead, MessageReplied))

	assert.False(t, CanTransitionMessage(MessageRead, MessageNew))
	assert.False(t, CanTransitionMessage(MessageReplied, MessageRead), "replied is terminal")
	assert.False(t, CanTransitionMessage(MessageReplied, MessageNew))
	assert.False(t, CanTransitionMessage(MessageNew, MessageNew))
}
