package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseIntent_WhenResponseIsPlainJSON_ParsesIt(t *testing.T) {
	intent, err := parseIntent(`{"action":"create_task","title":"Fix login","priority":"HIGH"}`)

	require.NoError(t, err)
	assert.Equal(t, "create_task", intent.Action)
	assert.Equal(t, "Fix login", intent.Title)
	assert.Equal(t, "HIGH", intent.Priority)
}

func Test_ParseIntent_WhenResponseIsWrappedInCodeFence_ParsesIt(t *testing.T) {
	completion := "```json\n{\"action\":\"reply\",\"reply\":\"You have 3 open tasks.\"}\n```"

	intent, err := parseIntent(completion)

	require.NoError(t, err)
	assert.Equal(t, "reply", intent.Action)
	assert.Equal(t, "You have 3 open tasks.", intent.Reply)
}

func Test_ParseIntent_WhenResponseHasSurroundingProse_ParsesIt(t *testing.T) {
	completion := `Sure, here you go: {"action":"create_task","title":"Ship release"} Let me know!`

	intent, err := parseIntent(completion)

	require.NoError(t, err)
	assert.Equal(t, "Ship release", intent.Title)
}

func Test_ParseIntent_WhenResponseContainsNoJSON_Fails(t *testing.T) {
	_, err := parseIntent("I could not understand the request.")

	assert.Error(t, err)
}

func Test_ParseIntent_WhenJSONIsMalformed_Fails(t *testing.T) {
	_, err := parseIntent(`{"action": "create_task", "title": }`)

	assert.Error(t, err)
}
