package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartupTimer_RecordsPhasesInOrder(t *testing.T) {
	timer := NewStartupTimer()

	timer.Mark("config")
	timer.MarkDuration("parallel_init", 5*time.Millisecond)
	timer.Mark("window")

	assert.Equal(t, []string{"config", "parallel_init", "window"}, timer.Phases())
	assert.Positive(t, timer.Total())
	timer.Log(testCtx())
}
