package models

// Query and form keys shared by the API, its client and the UI.
const (
	ParamFlashcardID  = "flashcardId"
	ParamToolID       = "toolId"
	ParamSelectedTool = "selectedTool"
	ParamFlipped      = "flipped"
)

type StudyTool struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	Flashcards []Flashcard `json:"flashcards"`
}

type Flashcard struct {
	ID       uint64 `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	ToolID   uint64 `json:"toolId"`
}

// CreateReq is the body of POST /api/study-tools. A non-blank Name creates a
// study tool, otherwise the flashcard fields are used.
type CreateReq struct {
	Name     string `json:"name"`
	ToolID   uint64 `json:"toolId"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type StudyToolReq struct {
	Name string `json:"name" validate:"required"`
}

type FlashcardReq struct {
	ToolID   uint64 `json:"toolId" validate:"required"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type StudyToolListResp struct {
	Message string      `json:"message"`
	Data    []StudyTool `json:"data"`
}

type StudyToolResp struct {
	Message string    `json:"message"`
	Data    StudyTool `json:"data"`
}

type FlashcardResp struct {
	Message string    `json:"message"`
	Data    Flashcard `json:"data"`
}

type MessageResp struct {
	Message string `json:"message"`
}

type ErrorResp struct {
	Error string `json:"error"`
}
