// file: internal/server/handlers.go
// version: 1.1.0
// guid: 4eed43bc-db38-4afd-97a2-eb697448b27d

package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/jdfalk/bookshelf/internal/openlibrary"
	"github.com/jdfalk/bookshelf/internal/stats"
)

// ProfileRequest is the body of PUT /profile.
type ProfileRequest struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

// HistoryRequest is the body of POST /history.
type HistoryRequest struct {
	Term string `json:"term"`
}

// TopTermsResponse lists the most searched terms.
type TopTermsResponse struct {
	Terms   []models.TermCount `json:"terms"`
	Summary string             `json:"summary"`
}

// HealthResponse reports liveness plus a few store sizes.
type HealthResponse struct {
	Status    string `json:"status"`
	Favorites int    `json:"favorites"`
	History   int    `json:"history"`
	Uptime    string `json:"uptime"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Favorites: s.svc.Favorites.Count(),
		History:   len(s.svc.History.List()),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) getProfile(c *gin.Context) {
	profile, ok := s.svc.Profiles.Get()
	if !ok {
		RespondWithNotFound(c, "profile", "")
		return
	}
	RespondWithOK(c, profile)
}

func (s *Server) setProfile(c *gin.Context) {
	ol := operationLogger(c, "setProfile")

	var req ProfileRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}

	profile, err := s.svc.Profiles.Set(req.Name, req.Genre)
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}
	ol.AddDetail("genre", profile.Genre)
	ol.LogSuccess(http.StatusOK)
	RespondWithOK(c, profile)
}

func (s *Server) listFavorites(c *gin.Context) {
	favs := s.svc.Favorites.List()
	RespondWithList(c, favs, len(favs))
}

func (s *Server) addFavorite(c *gin.Context) {
	ol := operationLogger(c, "addFavorite")

	var rec models.BookRecord
	if HandleBindError(c, c.ShouldBindJSON(&rec)) {
		return
	}
	ol.SetResourceID(rec.Key)

	if err := s.svc.Favorites.Add(rec); err != nil {
		RespondWithServiceError(c, err)
		return
	}
	ol.LogSuccess(http.StatusCreated)
	RespondWithCreated(c, rec)
}

// removeFavorite takes the key from the wildcard path. Open Library keys
// start with a slash ("/works/OL1W"), which the wildcard keeps; keys
// without one are matched with the slash stripped.
func (s *Server) removeFavorite(c *gin.Context) {
	ol := operationLogger(c, "removeFavorite")

	key := c.Param("key")
	if !s.svc.Favorites.Contains(key) {
		key = strings.TrimPrefix(key, "/")
	}
	if key == "" {
		RespondWithValidationError(c, "key", "must not be empty")
		return
	}
	ol.SetResourceID(key)
	if !s.svc.Favorites.Contains(key) {
		ol.LogWarning(fmt.Sprintf("favorite %q not found, nothing removed", key))
	}

	if err := s.svc.Favorites.Remove(key); err != nil {
		ol.LogError(http.StatusInternalServerError, err)
		RespondWithServiceError(c, err)
		return
	}
	ol.LogSuccess(http.StatusNoContent)
	RespondWithNoContent(c)
}

func (s *Server) findFavorites(c *gin.Context) {
	matches := s.svc.Favorites.Find(c.Query("q"))
	RespondWithList(c, matches, len(matches))
}

func (s *Server) listHistory(c *gin.Context) {
	entries := s.svc.History.List()
	RespondWithList(c, entries, len(entries))
}

func (s *Server) recordHistory(c *gin.Context) {
	var req HistoryRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		RespondWithValidationError(c, "term", "enter a search term")
		return
	}
	if err := s.svc.History.Record(term); err != nil {
		RespondWithServiceError(c, err)
		return
	}
	RespondWithCreated(c, term)
}

func (s *Server) topTerms(c *gin.Context) {
	k := ParseQueryInt(c, "k", s.svc.TopK())
	if k <= 0 {
		RespondWithValidationError(c, "k", "must be positive")
		return
	}
	rows := s.svc.Stats.TopTerms(k)
	RespondWithOK(c, TopTermsResponse{Terms: rows, Summary: stats.Summary(rows)})
}

// searchFilter reads ?filter=, with ?has_cover=true as a shorthand.
func searchFilter(c *gin.Context) openlibrary.Filter {
	if ParseQueryBool(c, "has_cover", false) {
		return openlibrary.FilterHasCover
	}
	return openlibrary.ParseFilter(c.Query("filter"))
}

func (s *Server) search(c *gin.Context) {
	ol := operationLogger(c, "search")

	res, err := s.svc.Search(c.Request.Context(), c.Query("q"), searchFilter(c))
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}
	ol.AddDetail("results", len(res.Books))
	ol.LogSuccess(http.StatusOK)
	RespondWithOK(c, res)
}

func (s *Server) recommend(c *gin.Context) {
	res, err := s.svc.Recommend(c.Request.Context(), searchFilter(c))
	if err != nil {
		RespondWithServiceError(c, err)
		return
	}
	RespondWithOK(c, res)
}

func (s *Server) export(c *gin.Context) {
	RespondWithOK(c, s.svc.Snapshot())
}

func (s *Server) reset(c *gin.Context) {
	ol := operationLogger(c, "reset")
	if err := s.svc.Reset(); err != nil {
		ol.LogError(http.StatusInternalServerError, err)
		RespondWithInternalError(c, err.Error())
		return
	}
	ol.LogSuccess(http.StatusNoContent)
	RespondWithNoContent(c)
}
