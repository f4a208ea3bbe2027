package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apierrors "github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/hubservice"
	"github.com/taghub/taghub/internal/models"
	"github.com/taghub/taghub/internal/testutils"
)

type routerFixture struct {
	router     *Router
	tags       *testutils.MockTagRepository
	readings   *testutils.MockReadingRepository
	aggregates *testutils.MockAggregateRepository
}

func newRouterFixture(t *testing.T, ingestKey string) *routerFixture {
	t.Helper()

	tags := &testutils.MockTagRepository{}
	readings := &testutils.MockReadingRepository{}
	aggregates := &testutils.MockAggregateRepository{}

	svc := hubservice.New(tags, readings, aggregates, nil, hubservice.Options{BatteryLowVoltage: 2.5})

	return &routerFixture{
		router:     NewRouter(svc, ingestKey),
		tags:       tags,
		readings:   readings,
		aggregates: aggregates,
	}
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	f := newRouterFixture(t, "")

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIngestReadings_RequiresAPIKey(t *testing.T) {
	f := newRouterFixture(t, "secret-key")

	body := `[{"tag_id": 1, "datetime": "2026-08-27T12:00:00Z", "temperature": 21.5}]`

	// No key
	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body))
	assert.Equal(t, http.StatusUnauthorized, f.do(req).Code)

	// Wrong key
	req = httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body))
	req.Header.Set("X-Api-Key", "not-the-key")
	assert.Equal(t, http.StatusUnauthorized, f.do(req).Code)

	f.readings.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIngestReadings_BatchIsolation(t *testing.T) {
	f := newRouterFixture(t, "secret-key")

	f.tags.On("Get", mock.Anything, int64(1)).Return(&models.Tag{ID: 1, ExternalID: "aa:bb"}, nil)
	f.readings.On("Insert", mock.Anything, mock.AnythingOfType("*models.Reading")).Return(nil)

	// Second item lacks any tag reference and must be rejected without
	// failing the rest of the batch.
	body := `[
		{"tag_id": 1, "datetime": "2026-08-27T12:00:00Z", "temperature": 21.5, "humidity": 48.0},
		{"datetime": "2026-08-27T12:05:00Z", "temperature": 22.0},
		{"tag_id": 1, "datetime": "2026-08-27T12:10:00Z", "humidity": 49.5}
	]`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body))
	req.Header.Set("X-Api-Key", "secret-key")
	rec := f.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var result map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result["saved"])
	assert.Equal(t, 1, result["rejected"])

	f.readings.AssertNumberOfCalls(t, "Insert", 2)
}

func TestIngestReadings_FullyRejectedBatchIsBadRequest(t *testing.T) {
	f := newRouterFixture(t, "")

	// Neither item carries a tag reference
	body := `[
		{"datetime": "2026-08-27T12:00:00Z", "temperature": 21.5},
		{"datetime": "2026-08-27T12:05:00Z", "humidity": 48.0}
	]`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body))
	rec := f.do(req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "validation", apiErr["type"])
	details, ok := apiErr["details"].([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)

	f.readings.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIngestReadings_MalformedBody(t *testing.T) {
	f := newRouterFixture(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader("{not json"))
	rec := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.readings.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestQueryReadings_DecodesFilters(t *testing.T) {
	f := newRouterFixture(t, "")

	f.readings.On("Query", mock.Anything, mock.MatchedBy(func(filters models.ReadingFilters) bool {
		return filters.TagID != nil && *filters.TagID == 7 &&
			filters.DateStart != nil && filters.DateStart.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)) &&
			filters.Limit == 50
	})).Return([]*models.ReadingWithTag{}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet,
		"/api/v1/readings?tag_id=7&date_start=2026-08-20T00:00:00Z&limit=50", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.readings.AssertExpectations(t)
}

func TestListAggregates(t *testing.T) {
	f := newRouterFixture(t, "")

	low, high := 15.0, 25.0
	f.aggregates.On("List", mock.Anything, mock.AnythingOfType("models.AggregateFilters")).
		Return([]*models.DailyAggregate{{
			ID:             "agg_one",
			TagID:          1,
			Date:           time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
			TemperatureMin: &low,
			TemperatureMax: &high,
		}}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/aggregates?tag_id=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 15.0, rows[0]["temperature_min"])
	assert.Equal(t, 25.0, rows[0]["temperature_max"])
}

func TestRegisterTag(t *testing.T) {
	f := newRouterFixture(t, "")

	f.tags.On("EnsureTag", mock.Anything, "aa:bb:cc", "Greenhouse").
		Return(&models.Tag{ID: 3, ExternalID: "aa:bb:cc", Name: "Greenhouse"}, nil)

	body := `{"external_id": "aa:bb:cc", "name": "Greenhouse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", strings.NewReader(body))
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tag models.Tag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tag))
	assert.Equal(t, int64(3), tag.ID)
	assert.Equal(t, "Greenhouse", tag.Name)
}

func TestRenameTag_UnknownTag(t *testing.T) {
	f := newRouterFixture(t, "")

	f.tags.On("Rename", mock.Anything, int64(99), "New").
		Return(apierrors.NewNotFoundError("tag not found", nil))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tags/99", strings.NewReader(`{"name": "New"}`))
	rec := f.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
