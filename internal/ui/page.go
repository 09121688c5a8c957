package ui

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Assets is the stylesheet and script served under /static.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}

func Templates() (*template.Template, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return t, nil
}

type Page struct {
	Title   string
	Notice  string
	Loading bool
	Preview PreviewView
	// exactly one of Home and Deck is set once loaded
	Home *HomeView
	Deck *DeckView
}

type PreviewView struct {
	Loading     bool
	HideDelayMS int64
	Items       []DeckSummary
	ResetPrompt string
	SelectedID  uint64
}

type HomeView struct {
	Tools []DeckSummary
}

type DeckView struct {
	ID           uint64
	Name         string
	Cards        []CardView
	DeletePrompt string
}

type CardView struct {
	ID           uint64
	Question     string
	Answer       string
	Flipped      bool
	Deleting     bool
	DeletePrompt string
}

func NewPage(main *MainView, preview *DeckPreview, notice Notice) Page {
	selected, _ := main.SelectedID()
	page := Page{
		Title:   "Flashcards App",
		Notice:  notice.Message(),
		Loading: main.Loading(),
		Preview: PreviewView{
			Loading:     preview.Loading(),
			HideDelayMS: preview.HideDelay().Milliseconds(),
			Items:       preview.Items(),
			ResetPrompt: PromptReset,
			SelectedID:  selected,
		},
	}
	if page.Loading {
		return page
	}

	tool := main.SelectedTool()
	if tool == nil {
		page.Home = &HomeView{Tools: summarize(main.Tools())}
		return page
	}

	deck := &DeckView{
		ID:           tool.ID,
		Name:         tool.Name,
		Cards:        make([]CardView, 0, len(tool.Flashcards)),
		DeletePrompt: PromptDeleteTool,
	}
	for _, fc := range main.Cards() {
		card := fc.Card()
		deck.Cards = append(deck.Cards, CardView{
			ID:           card.ID,
			Question:     card.Question,
			Answer:       card.Answer,
			Flipped:      fc.Flipped(),
			Deleting:     fc.Deleting(),
			DeletePrompt: PromptDeleteFlashcard,
		})
	}
	page.Deck = deck
	return page
}
