package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tasks_dto "chorey/internal/features/tasks/dto"
	tasks_enums "chorey/internal/features/tasks/enums"
	tasks_models "chorey/internal/features/tasks/models"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const systemPrompt = `You are a task-management assistant. Interpret the user's command and respond
with a single JSON object, no markdown, with these fields:
  "action": one of "create_task", "list_tasks", "complete_task", "answer"
  "title": task title when action is create_task or complete_task
  "description": task description, may be empty
  "priority": one of LOW, MEDIUM, HIGH, URGENT, or empty
  "dueDate": due date in RFC 3339 or YYYY-MM-DD format, or empty
  "reply": a short natural-language confirmation or answer for the user`

// ErrRateLimited marks commands rejected by the per-organization limiter.
var ErrRateLimited = errors.New("assistant rate limit exceeded")

// TaskCommander is the slice of the tasks feature the assistant needs.
type TaskCommander interface {
	IngressTask(
		organizationID uuid.UUID,
		creatorID uuid.UUID,
		request *tasks_dto.IngressTaskRequestDTO,
	) (*tasks_models.Task, error)
	ListOrganizationTasks(organizationID uuid.UUID) (*tasks_dto.ListTasksResponseDTO, error)
	CompleteTaskByTitle(
		organizationID uuid.UUID,
		completerID uuid.UUID,
		title string,
	) (*tasks_models.Task, error)
}

type AssistantService struct {
	modelClient   *ModelClient
	taskCommander TaskCommander
	logger        *slog.Logger

	limitersMu sync.Mutex
	limiters   map[uuid.UUID]*rate.Limiter
}

func NewAssistantService(modelClient *ModelClient, taskCommander TaskCommander, logger *slog.Logger) *AssistantService {
	return &AssistantService{
		modelClient:   modelClient,
		taskCommander: taskCommander,
		logger:        logger,
		limiters:      make(map[uuid.UUID]*rate.Limiter),
	}
}

// ProcessCommand interprets a natural-language command on behalf of an API
// key and executes the resolved intent in the key's organization.
func (s *AssistantService) ProcessCommand(
	ctx context.Context,
	organizationID uuid.UUID,
	creatorID uuid.UUID,
	command string,
) (string, error) {
	if !s.limiter(organizationID).Allow() {
		return "", ErrRateLimited
	}

	completion, err := s.modelClient.Complete(ctx, systemPrompt, command)
	if err != nil {
		s.logger.Error("assistant model call failed",
			slog.String("organizationId", organizationID.String()),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("assistant model call failed: %w", err)
	}

	intent, err := parseIntent(completion)
	if err != nil {
		s.logger.Error("assistant returned unparseable intent",
			slog.String("organizationId", organizationID.String()),
			slog.String("error", err.Error()))
		return "", err
	}

	switch intent.Action {
	case "create_task":
		if err := s.createTask(organizationID, creatorID, intent); err != nil {
			return "", err
		}
	case "list_tasks":
		return s.listTasks(organizationID)
	case "complete_task":
		if intent.Title == "" {
			return "", errors.New("assistant did not name the task to complete")
		}
		if _, err := s.taskCommander.CompleteTaskByTitle(organizationID, creatorID, intent.Title); err != nil {
			return "", err
		}
	}

	if intent.Reply == "" {
		return "Done.", nil
	}

	return intent.Reply, nil
}

func (s *AssistantService) listTasks(organizationID uuid.UUID) (string, error) {
	response, err := s.taskCommander.ListOrganizationTasks(organizationID)
	if err != nil {
		return "", err
	}

	if len(response.Tasks) == 0 {
		return "There are no tasks in this organization.", nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "There are %d tasks:\n", len(response.Tasks))
	for _, task := range response.Tasks {
		fmt.Fprintf(&builder, "- %s (%s)\n", task.Title, task.Status)
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}

func (s *AssistantService) createTask(organizationID, creatorID uuid.UUID, intent *commandIntent) error {
	if intent.Title == "" {
		return errors.New("assistant did not produce a task title")
	}

	request := &tasks_dto.IngressTaskRequestDTO{
		Title:       intent.Title,
		Description: intent.Description,
		Source:      "assistant",
	}

	if intent.Priority != "" {
		priority := tasks_enums.TaskPriority(strings.ToUpper(intent.Priority))
		if priority.IsValid() {
			request.Priority = &priority
		}
	}

	if intent.DueDate != "" {
		request.DueDate = intent.DueDate
	}

	_, err := s.taskCommander.IngressTask(organizationID, creatorID, request)
	return err
}

// parseIntent tolerates models that wrap JSON in prose or code fences by
// extracting the outermost object.
func parseIntent(completion string) (*commandIntent, error) {
	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("assistant response contains no JSON object")
	}

	var intent commandIntent
	if err := json.Unmarshal([]byte(completion[start:end+1]), &intent); err != nil {
		return nil, fmt.Errorf("failed to parse assistant response: %w", err)
	}

	return &intent, nil
}

func (s *AssistantService) limiter(organizationID uuid.UUID) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()

	limiter, exists := s.limiters[organizationID]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(2), 5)
		s.limiters[organizationID] = limiter
	}

	return limiter
}
