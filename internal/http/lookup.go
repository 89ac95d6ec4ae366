package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordly/internal/dictionary"
	"github.com/mrlokans/wordly/internal/entities"
	"github.com/mrlokans/wordly/internal/services"
)

// LookupResponse is returned for a successful lookup or an empty query.
type LookupResponse struct {
	Term       string               `json:"term,omitempty"`
	Found      bool                 `json:"found"`
	Prompt     bool                 `json:"prompt,omitempty"`
	Message    string               `json:"message,omitempty"`
	Entries    []entities.WordEntry `json:"entries,omitempty"`
	IsFavorite map[string]bool      `json:"is_favorite,omitempty"`
	Audio      []string             `json:"audio,omitempty"`
	RequestID  string               `json:"request_id,omitempty"`
}

// SearchSessionHeader identifies the caller's search box. Lookups sharing a
// session supersede each other; lookups without one are independent.
const SearchSessionHeader = "X-Search-Session"

type LookupController struct {
	service  *services.LookupService
	sessions *services.SessionRegistry
}

func NewLookupController(service *services.LookupService) *LookupController {
	return &LookupController{
		service:  service,
		sessions: services.NewSessionRegistry(service, services.DefaultMaxSessions),
	}
}

// Lookup searches the dictionary for a word.
// GET /api/lookup?word=hello
func (lc *LookupController) Lookup(c *gin.Context) {
	search := lc.service.Search
	if id := c.GetHeader(SearchSessionHeader); id != "" {
		search = lc.sessions.Get(id).Search
	}

	result, err := search(c.Request.Context(), c.Query("word"))
	if errors.Is(err, services.ErrSuperseded) {
		respondError(c, http.StatusConflict, err.Error(), "superseded")
		return
	}
	if err != nil {
		respondInternalError(c, err, "lookup")
		return
	}

	if result.Prompt {
		c.JSON(http.StatusOK, LookupResponse{Prompt: true, Message: result.Message()})
		return
	}

	out := result.Outcome
	switch out.Kind {
	case dictionary.OutcomeFound:
		var audio []string
		for _, entry := range out.Entries {
			audio = append(audio, entry.PlayableAudio()...)
		}
		c.JSON(http.StatusOK, LookupResponse{
			Term:       result.Term,
			Found:      true,
			Entries:    out.Entries,
			IsFavorite: result.Favorites,
			Audio:      audio,
			RequestID:  out.RequestID,
		})
	case dictionary.OutcomeNotFound:
		c.JSON(http.StatusNotFound, out.APIError)
	case dictionary.OutcomeInvalidInput:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   result.Message(),
			Code:    out.Kind.String(),
			Details: out.Message,
		})
	default:
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   result.Message(),
			Code:    out.Kind.String(),
			Details: out.Message,
		})
	}
}
