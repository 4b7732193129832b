package webhooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SubscribesTo_WhenEventListIsEmpty_MatchesEverything(t *testing.T) {
	webhook := &Webhook{}

	assert.True(t, webhook.SubscribesTo("task.created"))
	assert.True(t, webhook.SubscribesTo("task.deleted"))
}

func Test_SubscribesTo_WhenEventListIsSet_MatchesOnlyListedEvents(t *testing.T) {
	webhook := &Webhook{Events: []string{"task.created", "task.updated"}}

	assert.True(t, webhook.SubscribesTo("task.created"))
	assert.True(t, webhook.SubscribesTo("task.updated"))
	assert.False(t, webhook.SubscribesTo("task.deleted"))
}
