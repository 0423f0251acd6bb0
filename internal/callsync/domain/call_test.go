package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartedAt_Milliseconds(t *testing.T) {
	c := Call{StartTime: 1713600000000} // 13 digits
	assert.Equal(t, time.UnixMilli(1713600000000), c.StartedAt())
}

func TestStartedAt_Seconds(t *testing.T) {
	c := Call{StartTime: 1713600000} // 10 digits
	assert.Equal(t, time.Unix(1713600000, 0), c.StartedAt())
}

func TestHasTranscript(t *testing.T) {
	assert.False(t, Call{}.HasTranscript())
	assert.True(t, Call{Transcript: "hello"}.HasTranscript())
}
