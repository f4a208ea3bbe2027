// FilePath: api/resources/api.resource.aggregates.go
package resources

import (
	"net/http"

	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/hubservice"
	"github.com/taghub/taghub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AggregateHandlers encapsulates the rollup-related HTTP handlers
type AggregateHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List daily aggregates
// @Description Get daily min/max rollups, newest first
// @Tags aggregates
// @Produce json
// @Param tag_id query int false "Tag ID"
// @Param date_start query string false "Exclusive lower bound (RFC3339)"
// @Param date_end query string false "Exclusive upper bound (RFC3339)"
// @Param limit query int false "Maximum number of rows"
// @Success 200 {array} models.DailyAggregate
// @Failure 400 {object} errors.APIError
// @Router /aggregates [get]
func (h *AggregateHandlers) ListAggregates(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.AggregateFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	aggregates, err := h.hubservice.Aggregates.List(r.Context(), filters)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to list aggregates").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, aggregates)
}
