// FilePath: api/resources/api.resource.tags.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// TagHandlers encapsulates the tag-related HTTP handlers
type TagHandlers struct {
	hubservice *hubservice.HubService
}

type registerTagRequest struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

type renameTagRequest struct {
	Name string `json:"name"`
}

// @Summary Register a tag
// @Description Ensure a tag exists for the given hardware address
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body registerTagRequest true "Tag identity"
// @Success 200 {object} models.Tag
// @Failure 400 {object} errors.APIError
// @Router /tags [post]
func (h *TagHandlers) RegisterTag(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req registerTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	tag, err := h.hubservice.EnsureTag(r.Context(), req.ExternalID, req.Name)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to register tag").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, tag)
}

// @Summary List tags
// @Description Get all known tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h *TagHandlers) ListTags(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	tags, err := h.hubservice.GetTags(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to list tags").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, tags)
}

// @Summary Rename a tag
// @Description Update a tag's display name
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body renameTagRequest true "New display name"
// @Success 200 {object} models.Tag
// @Failure 404 {object} errors.APIError
// @Router /tags/{id} [put]
func (h *TagHandlers) RenameTag(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, ok := tagIDFromRequest(w, r, requestID)
	if !ok {
		return
	}

	var req renameTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.RenameTag(r.Context(), id, req.Name); err != nil {
		respondWithError(w, asAPIError(err, "failed to rename tag").WithRequestID(requestID))
		return
	}

	tag, err := h.hubservice.GetTag(r.Context(), id)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get updated tag").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, tag)
}

// @Summary Get tag status
// @Description Current status view: latest reading, trends, today's extrema
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} hubservice.TagStatus
// @Failure 404 {object} errors.APIError
// @Router /tags/{id}/status [get]
func (h *TagHandlers) GetTagStatus(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	id, ok := tagIDFromRequest(w, r, requestID)
	if !ok {
		return
	}

	status, err := h.hubservice.GetTagStatus(r.Context(), id)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get tag status").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

func tagIDFromRequest(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid tag id", err).WithRequestID(requestID))
		return 0, false
	}
	return id, true
}
