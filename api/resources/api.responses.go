package resources

import (
	"encoding/json"
	"net/http"

	"github.com/taghub/taghub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		nuts.L.Errorf("[API] Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	respondWithJSON(w, err.Code, err)
}

// asAPIError maps any error to a structured APIError, wrapping unknown ones
func asAPIError(err error, fallbackMsg string) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr
	}
	return errors.NewInternalError(fallbackMsg, err)
}
