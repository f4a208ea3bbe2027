// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/taghub/taghub/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Readings    *ReadingHandlers
	Tags        *TagHandlers
	Aggregates  *AggregateHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Readings:   &ReadingHandlers{hubservice: svc},
		Tags:       &TagHandlers{hubservice: svc},
		Aggregates: &AggregateHandlers{hubservice: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}
