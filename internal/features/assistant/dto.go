package assistant

type CommandRequestDTO struct {
	Command string `json:"command" binding:"required,min=1,max=2000"`
}

type CommandResponseDTO struct {
	Response string `json:"response"`
}

// commandIntent is the structured output the model is prompted to produce.
type commandIntent struct {
	Action      string `json:"action"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Reply       string `json:"reply"`
}
