package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/kinship"
	"github.com/mwhitby/kinship/internal/service"
)

// APIHandlers exposes HTTP handlers for the kinship API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.KinshipService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.KinshipService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleRelationship(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	from, to, ok := personPair(w, r)
	if !ok {
		return
	}

	var result service.RelationshipResult
	var err error
	if v := r.URL.Query().Get("maxLinks"); v != "" {
		maxLinks, parseErr := strconv.Atoi(v)
		if parseErr != nil || maxLinks < 0 {
			writeError(w, http.StatusBadRequest, "invalid maxLinks")
			return
		}
		result, err = h.service.RelationshipWithin(from, to, maxLinks)
	} else {
		result, err = h.service.Relationship(from, to)
	}
	if err != nil {
		h.respondServiceError(w, err, "resolve relationship")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *APIHandlers) handlePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	from, to, ok := personPair(w, r)
	if !ok {
		return
	}

	result, err := h.service.PathBetween(from, to)
	if err != nil {
		h.respondServiceError(w, err, "reconstruct path")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *APIHandlers) handleRelatives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/people/")
	rest = strings.TrimSuffix(rest, "/")
	idStr, found := strings.CutSuffix(rest, "/relatives")
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid person ID")
		return
	}

	relatives, err := h.service.Relatives(domain.PersonID(id))
	if err != nil {
		h.respondServiceError(w, err, "list relatives")
		return
	}

	respondJSON(w, http.StatusOK, relativesResponse{
		ID:        domain.PersonID(id),
		Relatives: relatives,
	})
}

func (h *APIHandlers) handleNetworkSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	respondJSON(w, http.StatusOK, h.service.Summary())
}

func (h *APIHandlers) respondServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, kinship.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, kinship.ErrDataIntegrity):
		h.logger.Error("data integrity violation", "error", err)
		writeError(w, http.StatusInternalServerError, "data integrity violation")
	default:
		h.logger.Error("failed to "+op, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}

type relativesResponse struct {
	ID        domain.PersonID    `json:"id"`
	Relatives []service.Relative `json:"relatives"`
}

// personPair parses the from and to query parameters, writing a 400 response
// when either is missing or malformed.
func personPair(w http.ResponseWriter, r *http.Request) (domain.PersonID, domain.PersonID, bool) {
	query := r.URL.Query()
	fromStr := strings.TrimSpace(query.Get("from"))
	toStr := strings.TrimSpace(query.Get("to"))
	if fromStr == "" || toStr == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return 0, 0, false
	}
	from, err := strconv.Atoi(fromStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from ID")
		return 0, 0, false
	}
	to, err := strconv.Atoi(toStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to ID")
		return 0, 0, false
	}
	return domain.PersonID(from), domain.PersonID(to), true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
