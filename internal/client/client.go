// Package client talks to the study tools JSON API over HTTP.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/config"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
)

const studyToolsPath = "/api/study-tools"

// APIError is a non-2xx answer of the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	rc *resty.Client
}

func New(cfg *config.Config) *Client {
	return NewWithBaseURL(cfg.APIBaseURL)
}

func NewWithBaseURL(baseURL string) *Client {
	rc := resty.New().
		SetHostURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{rc: rc}
}

func (c *Client) ListTools(ctx context.Context) ([]models.StudyTool, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&models.StudyToolListResp{}).
		SetError(&models.ErrorResp{}).
		Get(studyToolsPath)
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "list study tools")
	}

	got := resp.Result().(*models.StudyToolListResp)
	if got.Data == nil {
		return []models.StudyTool{}, nil
	}
	return got.Data, nil
}

func (c *Client) CreateTool(ctx context.Context, name string) (*models.StudyTool, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(models.CreateReq{Name: name}).
		SetResult(&models.StudyToolResp{}).
		SetError(&models.ErrorResp{}).
		Post(studyToolsPath)
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "create study tool")
	}

	got := resp.Result().(*models.StudyToolResp)
	return &got.Data, nil
}

func (c *Client) CreateFlashcard(ctx context.Context, toolID uint64, question, answer string) (*models.Flashcard, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(models.CreateReq{ToolID: toolID, Question: question, Answer: answer}).
		SetResult(&models.FlashcardResp{}).
		SetError(&models.ErrorResp{}).
		Post(studyToolsPath)
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "create flashcard")
	}

	got := resp.Result().(*models.FlashcardResp)
	return &got.Data, nil
}

func (c *Client) DeleteFlashcard(ctx context.Context, id uint64) error {
	return c.delete(ctx, map[string]string{models.ParamFlashcardID: strconv.FormatUint(id, 10)})
}

func (c *Client) DeleteTool(ctx context.Context, id uint64) error {
	return c.delete(ctx, map[string]string{models.ParamToolID: strconv.FormatUint(id, 10)})
}

// Reset deletes every study tool and flashcard.
func (c *Client) Reset(ctx context.Context) error {
	return c.delete(ctx, nil)
}

func (c *Client) delete(ctx context.Context, query map[string]string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&models.MessageResp{}).
		SetError(&models.ErrorResp{}).
		Delete(studyToolsPath)
	return errors.Wrap(check(resp, err), "delete")
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}

	msg := http.StatusText(resp.StatusCode())
	if e, ok := resp.Error().(*models.ErrorResp); ok && e.Error != "" {
		msg = e.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
