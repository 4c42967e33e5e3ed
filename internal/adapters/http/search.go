package http

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/vinolab/git-indexer/internal/adapters/db"
	"github.com/vinolab/git-indexer/internal/core/domain/entities"
	"github.com/vinolab/git-indexer/pkg/response"
)

// pageSize caps every search result list.
const pageSize = 30

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// SearchHandler answers lookups over indexed data. The query shape decides
// the lookup: a 40-hex string is a commit hash, a string with an @ is an
// author email, anything else is a repository name.
type SearchHandler struct {
	commits db.CommitStore
	authors db.AuthorStore
	repos   db.RepositoryStore
}

// NewSearchHandler creates a new instance of SearchHandler
func NewSearchHandler(commits db.CommitStore, authors db.AuthorStore, repos db.RepositoryStore) *SearchHandler {
	return &SearchHandler{commits: commits, authors: authors, repos: repos}
}

// Search godoc
// @Summary Search indexed commits
// @Param q query string true "commit sha, author email or repository name"
// @Success 200 {object} interface{}
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("q")))
	if query == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	switch {
	case shaPattern.MatchString(query):
		h.bySHA(w, r, query)
	case strings.Contains(query, "@"):
		h.byAuthorEmail(w, r, query)
	default:
		h.byRepositoryName(w, r, query)
	}
}

func (h *SearchHandler) bySHA(w http.ResponseWriter, r *http.Request, sha string) {
	commit, err := h.commits.GetBySHA(r.Context(), sha)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "failed to retrieve commit")
		return
	}
	if commit == nil {
		response.SuccessResponse(w, http.StatusOK, []entities.Commit{})
		return
	}
	response.SuccessResponse(w, http.StatusOK, []entities.Commit{*commit})
}

func (h *SearchHandler) byAuthorEmail(w http.ResponseWriter, r *http.Request, email string) {
	authors, err := h.authors.GetByRealEmail(r.Context(), email)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "failed to retrieve authors")
		return
	}
	if len(authors) == 0 {
		response.SuccessResponse(w, http.StatusOK, []entities.Commit{})
		return
	}

	ids := make([]uint, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
	}

	commits, err := h.commits.ListByAuthorIDs(r.Context(), ids, pageSize)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "failed to retrieve commits")
		return
	}
	response.SuccessResponse(w, http.StatusOK, commits)
}

func (h *SearchHandler) byRepositoryName(w http.ResponseWriter, r *http.Request, name string) {
	repo, err := h.repos.GetByName(r.Context(), name)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "failed to retrieve repository")
		return
	}
	if repo == nil {
		response.SuccessResponse(w, http.StatusOK, []entities.Commit{})
		return
	}

	commits, err := h.commits.ListByRepositoryID(r.Context(), repo.ID, pageSize)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "failed to retrieve commits")
		return
	}
	response.SuccessResponse(w, http.StatusOK, commits)
}
