package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("maria@example.com", "Maria")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcomeEmail, task.Type())

	var payload WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "maria@example.com", payload.To)
	assert.Equal(t, "Maria", payload.FirstName)
}
