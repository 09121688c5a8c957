package transport

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/ui"
)

const paramNotice = "notice"

type (
	toolForm struct {
		Name string `form:"name"`
	}

	flashcardForm struct {
		Question string   `form:"question"`
		Answer   string   `form:"answer"`
		Flipped  []string `form:"flipped"`
	}

	flashcardDeleteForm struct {
		ToolID  uint64   `form:"toolId" validate:"required"`
		Flipped []string `form:"flipped"`
	}

	resetForm struct {
		SelectedTool string `form:"selectedTool"`
	}
)

// Home renders the deck preview header and the main view for the current
// selection, with the cards named by ?flipped= showing their answer.
func (s *HTTPServer) Home(c echo.Context) error {
	ctx := c.Request().Context()
	query := c.QueryParams()
	sel := ui.SelectionFromQuery(query)

	main := ui.NewMainView(s.api, sel, s.logger)
	defer main.Close()
	preview := ui.NewDeckPreview(s.api, s.logger)

	main.Refresh(ctx)
	preview.Refresh(ctx)
	main.SetFlipped(ui.ParseFlipped(query[models.ParamFlipped])...)

	page := ui.NewPage(main, preview, ui.ParseNotice(c.QueryParam(paramNotice)))
	return c.Render(http.StatusOK, "layout", page)
}

func (s *HTTPServer) ToolCreate(c echo.Context) error {
	form := toolForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}

	main := ui.NewMainView(s.api, ui.NewSelection(), s.logger, ui.WithDeferredRefresh())
	defer main.Close()

	// failures are logged by the view; the redirect shows the current list either way
	_ = main.CreateTool(c.Request().Context(), form.Name)
	return redirect(c, ui.URLFor(0), ui.NoticeNone)
}

func (s *HTTPServer) FlashcardCreate(c echo.Context) error {
	toolID, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	form := flashcardForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}

	sel := ui.NewSelection()
	sel.Set(toolID)
	main := ui.NewMainView(s.api, sel, s.logger, ui.WithDeferredRefresh())
	defer main.Close()

	_ = main.AddFlashcard(c.Request().Context(), form.Question, form.Answer)
	return redirect(c, ui.URLWithFlips(toolID, ui.ParseFlipped(form.Flipped)), ui.NoticeNone)
}

func (s *HTTPServer) ToolDelete(c echo.Context) error {
	toolID, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	sel := ui.NewSelection()
	sel.Set(toolID)
	main := ui.NewMainView(s.api, sel, s.logger, ui.WithDeferredRefresh())
	defer main.Close()

	alert := &noticeAlert{}
	if err := main.DeleteSelectedTool(c.Request().Context(), formConfirm(c), alert); err != nil {
		return redirect(c, ui.URLFor(toolID), alert.notice)
	}
	return redirect(c, ui.URLFor(0), ui.NoticeNone)
}

func (s *HTTPServer) FlashcardDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	form := flashcardDeleteForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}

	ctx := c.Request().Context()
	sel := ui.NewSelection()
	sel.Set(form.ToolID)
	main := ui.NewMainView(s.api, sel, s.logger)
	defer main.Close()
	main.Refresh(ctx)
	main.SetFlipped(ui.ParseFlipped(form.Flipped)...)

	// the refresh after a successful delete drops the card from the address
	card := main.Card(id)
	if card == nil {
		card = ui.NewFlipCard(s.api, models.Flashcard{ID: id, ToolID: form.ToolID}, s.logger, main.Refresh)
	}
	alert := &noticeAlert{}
	_ = card.Delete(ctx, formConfirm(c), alert)
	return redirect(c, main.URL(), alert.notice)
}

// Reset wipes everything and goes back to the deck list. A declined or failed
// reset stays on the current page.
func (s *HTTPServer) Reset(c echo.Context) error {
	form := resetForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}
	current, _ := ui.ParseSelected(form.SelectedTool)

	preview := ui.NewDeckPreview(s.api, s.logger)

	target := ui.URLFor(current)
	alert := &noticeAlert{}
	_ = preview.Reset(c.Request().Context(), formConfirm(c), alert, func() {
		target = ui.URLFor(0)
	})
	return redirect(c, target, alert.notice)
}

// formConfirm reads the answer the browser's confirm prompt left in the form.
func formConfirm(c echo.Context) ui.Confirmer {
	return ui.ConfirmFunc(func(prompt string) bool {
		return c.FormValue("confirm") == "yes"
	})
}

// noticeAlert keeps the last alert so it can travel with the redirect.
type noticeAlert struct {
	notice ui.Notice
}

func (a *noticeAlert) Alert(n ui.Notice) {
	a.notice = n
}

func redirect(c echo.Context, target string, notice ui.Notice) error {
	if notice != ui.NoticeNone {
		u, err := url.Parse(target)
		if err != nil {
			return errors.Wrap(err, "parse redirect target")
		}
		q := u.Query()
		q.Set(paramNotice, string(notice))
		u.RawQuery = q.Encode()
		target = u.String()
	}
	return c.Redirect(http.StatusSeeOther, target)
}
