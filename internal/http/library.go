package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordly/internal/database/library"
	"github.com/mrlokans/wordly/internal/entities"
	"github.com/mrlokans/wordly/internal/services"
)

// AddWordRequest is the request body for adding a word to a collection.
type AddWordRequest struct {
	Word string `json:"word" binding:"required"`
}

type LibraryController struct {
	store services.WordLibrary
}

func NewLibraryController(store services.WordLibrary) *LibraryController {
	return &LibraryController{store: store}
}

// parseCollectionParam resolves the :collection URL parameter.
func parseCollectionParam(c *gin.Context) (entities.Collection, bool) {
	collection, err := entities.ParseCollection(c.Param("collection"))
	if err != nil {
		respondNotFound(c, "collection")
		return "", false
	}
	return collection, true
}

// ListWords returns all words in a collection.
// GET /api/:collection
func (lc *LibraryController) ListWords(c *gin.Context) {
	collection, ok := parseCollectionParam(c)
	if !ok {
		return
	}

	words, err := lc.store.List(collection)
	if err != nil {
		respondInternalError(c, err, "list "+string(collection))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": collection,
		"words":      words,
	})
}

// AddWord adds a word to a collection.
// POST /api/:collection
func (lc *LibraryController) AddWord(c *gin.Context) {
	collection, ok := parseCollectionParam(c)
	if !ok {
		return
	}

	var req AddWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "word is required")
		return
	}

	if err := lc.store.Add(collection, req.Word); err != nil {
		if errors.Is(err, library.ErrEmptyWord) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "add to "+string(collection))
		return
	}

	respondCreated(c, gin.H{
		"collection": collection,
		"word":       req.Word,
	})
}

// ContainsWord reports whether a word is in a collection.
// GET /api/:collection/:word
func (lc *LibraryController) ContainsWord(c *gin.Context) {
	collection, ok := parseCollectionParam(c)
	if !ok {
		return
	}
	word, ok := parseWordParam(c, "word")
	if !ok {
		return
	}

	contains, err := lc.store.Contains(collection, word)
	if err != nil {
		respondInternalError(c, err, "contains in "+string(collection))
		return
	}

	c.JSON(http.StatusOK, gin.H{"word": word, "contains": contains})
}

// RemoveWord removes every occurrence of a word from a collection.
// Removing a word that is not present succeeds.
// DELETE /api/:collection/:word
func (lc *LibraryController) RemoveWord(c *gin.Context) {
	collection, ok := parseCollectionParam(c)
	if !ok {
		return
	}
	word, ok := parseWordParam(c, "word")
	if !ok {
		return
	}

	if err := lc.store.Remove(collection, word); err != nil {
		respondInternalError(c, err, "remove from "+string(collection))
		return
	}

	respondSuccess(c, "removed")
}

// ToggleFavorite flips the favourite state of a word.
// POST /api/favorites/:word/toggle
func (lc *LibraryController) ToggleFavorite(c *gin.Context) {
	word, ok := parseWordParam(c, "word")
	if !ok {
		return
	}

	isFavorite, err := lc.store.Toggle(entities.CollectionFavorites, word)
	if err != nil {
		respondInternalError(c, err, "toggle favourite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"word": word, "is_favorite": isFavorite})
}

// ClearHistory removes all history entries.
// DELETE /api/history
func (lc *LibraryController) ClearHistory(c *gin.Context) {
	if err := lc.store.Clear(entities.CollectionHistory); err != nil {
		respondInternalError(c, err, "clear history")
		return
	}

	respondSuccess(c, "history cleared")
}
