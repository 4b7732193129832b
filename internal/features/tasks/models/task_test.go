package tasks_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_IsVisibleTo_WhenUserIsCreator_ReturnsTrue(t *testing.T) {
	creatorID := uuid.New()
	task := &Task{CreatorID: creatorID}

	assert.True(t, task.IsVisibleTo(creatorID))
}

func Test_IsVisibleTo_WhenUserIsAssignee_ReturnsTrue(t *testing.T) {
	assigneeID := uuid.New()
	task := &Task{CreatorID: uuid.New(), AssigneeID: &assigneeID}

	assert.True(t, task.IsVisibleTo(assigneeID))
}

func Test_IsVisibleTo_WhenUserIsUnrelated_ReturnsFalse(t *testing.T) {
	assigneeID := uuid.New()
	task := &Task{CreatorID: uuid.New(), AssigneeID: &assigneeID}

	assert.False(t, task.IsVisibleTo(uuid.New()))
}

func Test_IsVisibleTo_WhenTaskIsUnassigned_OnlyCreatorSeesIt(t *testing.T) {
	task := &Task{CreatorID: uuid.New()}

	assert.False(t, task.IsVisibleTo(uuid.New()))
}
