package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/db"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/service"
)

func (s *HTTPServer) StudyToolList(c echo.Context) error {
	tools, err := s.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch study tools").SetInternal(err)
	}

	return c.JSON(http.StatusOK, models.StudyToolListResp{
		Message: "Study tools fetched",
		Data:    toStudyTools(tools),
	})
}

// StudyToolCreate creates a study tool when the body has a name, a flashcard otherwise.
func (s *HTTPServer) StudyToolCreate(c echo.Context) error {
	req := models.CreateReq{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}

	if strings.TrimSpace(req.Name) != "" {
		return s.createTool(c, models.StudyToolReq{Name: req.Name})
	}
	return s.createFlashcard(c, models.FlashcardReq{
		ToolID:   req.ToolID,
		Question: req.Question,
		Answer:   req.Answer,
	})
}

func (s *HTTPServer) createTool(c echo.Context, req models.StudyToolReq) error {
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields).SetInternal(err)
	}

	tool, err := s.svc.CreateTool(c.Request().Context(), req.Name)
	if err != nil {
		return createError(err)
	}

	return c.JSON(http.StatusCreated, models.StudyToolResp{
		Message: "Study tool created",
		Data:    toStudyTool(*tool),
	})
}

func (s *HTTPServer) createFlashcard(c echo.Context, req models.FlashcardReq) error {
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields).SetInternal(err)
	}

	card, err := s.svc.CreateFlashcard(c.Request().Context(), req.ToolID, req.Question, req.Answer)
	if err != nil {
		return createError(err)
	}

	return c.JSON(http.StatusCreated, models.FlashcardResp{
		Message: "Flashcard created",
		Data:    toFlashcard(*card),
	})
}

// createError maps service failures of both create operations. An unknown
// toolId is a store constraint failure, not a client error.
func createError(err error) error {
	if errors.Is(err, service.ErrValidation) {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create item").SetInternal(err)
}

// StudyToolDelete deletes one flashcard, one study tool with its flashcards, or
// everything, depending on which query parameter is present.
func (s *HTTPServer) StudyToolDelete(c echo.Context) error {
	ctx := c.Request().Context()
	query := c.QueryParams()

	switch {
	case query.Has(models.ParamFlashcardID):
		id, err := parseID(query.Get(models.ParamFlashcardID))
		if err != nil {
			return err
		}
		if err := s.svc.DeleteFlashcard(ctx, id); err != nil {
			if errors.Is(err, service.ErrFlashcardNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Flashcard not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete flashcard").SetInternal(err)
		}
		return c.JSON(http.StatusOK, models.MessageResp{Message: "Flashcard deleted"})

	case query.Has(models.ParamToolID):
		id, err := parseID(query.Get(models.ParamToolID))
		if err != nil {
			return err
		}
		if err := s.svc.DeleteTool(ctx, id); err != nil {
			if errors.Is(err, service.ErrToolNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Study tool not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete study tool").SetInternal(err)
		}
		return c.JSON(http.StatusOK, models.MessageResp{Message: "Study tool deleted"})
	}

	if err := s.svc.Reset(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reset database").SetInternal(err)
	}
	return c.JSON(http.StatusOK, models.MessageResp{Message: "Database reset successfully"})
}

func toStudyTools(tools []db.StudyTool) []models.StudyTool {
	resp := make([]models.StudyTool, len(tools))
	for i := range tools {
		resp[i] = toStudyTool(tools[i])
	}
	return resp
}

func toStudyTool(tool db.StudyTool) models.StudyTool {
	cards := make([]models.Flashcard, len(tool.Flashcards))
	for i := range tool.Flashcards {
		cards[i] = toFlashcard(tool.Flashcards[i])
	}
	return models.StudyTool{
		ID:         tool.ID,
		Name:       tool.Name,
		Flashcards: cards,
	}
}

func toFlashcard(card db.Flashcard) models.Flashcard {
	return models.Flashcard{
		ID:       card.ID,
		Question: card.Question,
		Answer:   card.Answer,
		ToolID:   card.ToolID,
	}
}
