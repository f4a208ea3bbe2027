// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/gorilla/schema"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/hubservice"
	"github.com/taghub/taghub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// queryDecoder decodes query strings into filter structs
var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(value string) reflect.Value {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return reflect.ValueOf(parsed)
		}
		return reflect.Value{}
	})
	return d
}

// ReadingHandlers encapsulates the reading-related HTTP handlers
type ReadingHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Ingest sensor readings
// @Description Record a batch of readings pushed by sensor tags
// @Tags readings
// @Accept json
// @Produce json
// @Param readings body []models.ReadingInput true "Array of reading inputs"
// @Success 201 {object} map[string]int
// @Failure 400 {object} errors.APIError
// @Router /readings [post]
func (h *ReadingHandlers) IngestReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var inputs []models.ReadingInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	saved := 0
	itemErrors := []map[string]any{}
	for i := range inputs {
		if _, err := h.hubservice.SaveReading(r.Context(), &inputs[i]); err != nil {
			nuts.L.Warnf("[ReadingHandler] Failed to save reading %d of batch %s: %v", i, requestID, err)
			itemErrors = append(itemErrors, map[string]any{
				"index": i,
				"error": err.Error(),
			})
			// Continue with the rest of the batch even if one item fails
			continue
		}
		saved++
	}

	// A batch where every item was rejected is a client error, not a created
	// resource
	if saved == 0 && len(itemErrors) > 0 {
		respondWithError(w, errors.NewValidationError("no readings in batch could be saved", nil).
			WithDetails(itemErrors).
			WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]int{
		"saved":    saved,
		"rejected": len(itemErrors),
	})
}

// @Summary Query readings
// @Description Get readings newest-first, joined with the tag display name
// @Tags readings
// @Produce json
// @Param tag_id query int false "Tag ID"
// @Param date_start query string false "Exclusive lower bound (RFC3339)"
// @Param date_end query string false "Exclusive upper bound (RFC3339)"
// @Param limit query int false "Maximum number of rows"
// @Success 200 {array} models.ReadingWithTag
// @Failure 400 {object} errors.APIError
// @Router /readings [get]
func (h *ReadingHandlers) QueryReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.ReadingFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	readings, err := h.hubservice.QueryReadings(r.Context(), filters)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to query readings").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}
