package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/config"
	"github.com/GriffinCanCode/numcore/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numcore/internal/providers/numeric"
	"github.com/GriffinCanCode/numcore/internal/service"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
	Reason  types.Reason           `json:"reason"`
}

func setupRouter(t *testing.T, limits config.LimitsConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(numeric.NewProvider(numeric.WithLimits(limits))))

	router := gin.New()
	NewHandlers(registry,
		WithLimits(limits),
		WithMetrics(monitoring.NewMetrics(nil)),
	).Register(router)
	return router
}

func do(t *testing.T, router http.Handler, req *http.Request) (int, response) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestRoutes(t *testing.T) {
	router := setupRouter(t, config.DefaultLimits())

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantReason types.Reason
		check      func(t *testing.T, data map[string]interface{})
	}{
		{
			name:       "process csv",
			method:     http.MethodPost,
			path:       "/api/v1/process/csv",
			body:       "1,2,3\n4,abc,5\r\n",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				stats := data["stats"].(map[string]interface{})
				assert.Equal(t, 5.0, stats["count"])
				assert.Equal(t, 3.0, stats["median"])
				assert.Equal(t, 1.0, data["skipped_tokens"])
			},
		},
		{
			name:       "process csv without numbers",
			method:     http.MethodPost,
			path:       "/api/v1/process/csv",
			body:       "a,b\nc",
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: types.ReasonEmptyInput,
		},
		{
			name:       "process simple",
			method:     http.MethodPost,
			path:       "/api/v1/process/simple",
			body:       "10, 20, 30",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, []interface{}{0.0, 0.5, 1.0}, data["processed_data"])
			},
		},
		{
			name:       "statistics",
			method:     http.MethodPost,
			path:       "/api/v1/statistics",
			body:       `{"numbers": [2, 4, 4, 4, 5, 5, 7, 9]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				stats := data["stats"].(map[string]interface{})
				assert.Equal(t, 2.0, stats["std_dev"])
				assert.Equal(t, 5.0, stats["mean"])
			},
		},
		{
			name:       "statistics with malformed json",
			method:     http.MethodPost,
			path:       "/api/v1/statistics",
			body:       `{"numbers": [`,
			wantStatus: http.StatusBadRequest,
			wantReason: types.ReasonInvalidParams,
		},
		{
			name:       "fibonacci",
			method:     http.MethodGet,
			path:       "/api/v1/fibonacci?count=10",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, 34.0, data["last_value"])
			},
		},
		{
			name:       "fibonacci with non-numeric count",
			method:     http.MethodGet,
			path:       "/api/v1/fibonacci?count=ten",
			wantStatus: http.StatusBadRequest,
			wantReason: types.ReasonInvalidParams,
		},
		{
			name:       "fibonacci without count",
			method:     http.MethodGet,
			path:       "/api/v1/fibonacci",
			wantStatus: http.StatusBadRequest,
			wantReason: types.ReasonInvalidParams,
		},
		{
			name:       "primes",
			method:     http.MethodGet,
			path:       "/api/v1/primes?limit=30",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, 10.0, data["count"])
			},
		},
		{
			name:       "matrix multiply shape mismatch",
			method:     http.MethodPost,
			path:       "/api/v1/matrix/multiply",
			body:       `{"a": [[1, 2]], "b": [[1, 2]]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: types.ReasonShapeMismatch,
		},
		{
			name:       "matrix multiply",
			method:     http.MethodPost,
			path:       "/api/v1/matrix/multiply",
			body:       `{"a": [[1, 2]], "b": [[3], [4]]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, []interface{}{[]interface{}{11.0}}, data["result"])
			},
		},
		{
			name:       "process csv spanning float64 range",
			method:     http.MethodPost,
			path:       "/api/v1/process/csv",
			body:       "-1e308,1e308",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				stats := data["stats"].(map[string]interface{})
				assert.InEpsilon(t, 1e308, stats["std_dev"], 1e-12)
				assert.Equal(t, []interface{}{0.0, 1.0}, data["processed_data"])
			},
		},
		{
			name:       "process csv with overflowing sum",
			method:     http.MethodPost,
			path:       "/api/v1/process/csv",
			body:       "1e308,1e308",
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: types.ReasonNumericOverflow,
		},
		{
			name:       "matrix product overflow",
			method:     http.MethodPost,
			path:       "/api/v1/matrix/multiply",
			body:       `{"a": [[1e308, 1e308]], "b": [[10], [10]]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: types.ReasonNumericOverflow,
		},
		{
			name:       "pi with zero iterations",
			method:     http.MethodGet,
			path:       "/api/v1/pi?iterations=0",
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: types.ReasonDegenerateIteration,
		},
		{
			name:       "seeded pi",
			method:     http.MethodGet,
			path:       "/api/v1/pi?iterations=1000&seed=18446744073709551615",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.InDelta(t, 3.14, data["estimate"], 0.3)
			},
		},
		{
			name:       "execute unknown tool",
			method:     http.MethodPost,
			path:       "/services/execute",
			body:       `{"tool_id": "numeric.sort", "params": {}}`,
			wantStatus: http.StatusNotFound,
			wantReason: types.ReasonUnknownTool,
		},
		{
			name:       "execute without tool id",
			method:     http.MethodPost,
			path:       "/services/execute",
			body:       `{"params": {}}`,
			wantStatus: http.StatusBadRequest,
			wantReason: types.ReasonInvalidParams,
		},
		{
			name:       "execute greet",
			method:     http.MethodPost,
			path:       "/services/execute",
			body:       `{"tool_id": "numeric.greet"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Contains(t, data["message"], "numcore")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if strings.HasPrefix(tt.body, "{") {
				req.Header.Set("Content-Type", "application/json")
			}

			status, resp := do(t, router, req)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus == http.StatusOK, resp.Success)
			assert.Equal(t, tt.wantReason, resp.Reason)
			if tt.check != nil {
				tt.check(t, resp.Data)
			}
		})
	}
}

func TestMatrixDemo(t *testing.T) {
	router := setupRouter(t, config.DefaultLimits())
	status, resp := do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/matrix/demo", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{
		[]interface{}{58.0, 64.0},
		[]interface{}{139.0, 154.0},
	}, resp.Data["result"])
}

func TestBodyLimit(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxInputBytes = 8
	router := setupRouter(t, limits)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/csv", strings.NewReader("1,2,3,4,5,6"))
	status, resp := do(t, router, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, types.ReasonLimitExceeded, resp.Reason)
}

func multipartUpload(t *testing.T, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProcessUpload(t *testing.T) {
	router := setupRouter(t, config.DefaultLimits())

	t.Run("gzip csv", func(t *testing.T) {
		var gz bytes.Buffer
		zw := gzip.NewWriter(&gz)
		_, err := zw.Write([]byte("1,2,3\n4,5,6\n"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		status, resp := do(t, router, multipartUpload(t, "data.csv.gz", gz.Bytes()))
		require.Equal(t, http.StatusOK, status)
		stats := resp.Data["stats"].(map[string]interface{})
		assert.Equal(t, 6.0, stats["count"])
		assert.Equal(t, 3.5, stats["mean"])

		source := resp.Data["source"].(map[string]interface{})
		assert.Equal(t, "data.csv.gz", source["name"])
		assert.Equal(t, "gzip", source["compression"])
	})

	t.Run("binary content", func(t *testing.T) {
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
		status, resp := do(t, router, multipartUpload(t, "image.png", png))
		assert.Equal(t, http.StatusUnsupportedMediaType, status)
		assert.Equal(t, types.ReasonInvalidParams, resp.Reason)
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/process/upload", nil)
		status, _ := do(t, router, req)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestServiceListing(t *testing.T) {
	router := setupRouter(t, config.DefaultLimits())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services?category=math", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Services []types.Service `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Services, 1)
	assert.Equal(t, "numeric", listed.Services[0].ID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services?category=system", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Services)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services?q=fibonacci", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Services, 1)
}

func TestHealthAndRoot(t *testing.T) {
	router := setupRouter(t, config.DefaultLimits())

	for _, path := range []string{"/", "/health", "/api/v1/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestStatusFor(t *testing.T) {
	msg := "x"
	tests := []struct {
		result *types.Result
		want   int
	}{
		{nil, http.StatusInternalServerError},
		{&types.Result{Success: true}, http.StatusOK},
		{&types.Result{Error: &msg, Reason: types.ReasonInvalidParams}, http.StatusBadRequest},
		{&types.Result{Error: &msg, Reason: types.ReasonUnknownTool}, http.StatusNotFound},
		{&types.Result{Error: &msg, Reason: types.ReasonLimitExceeded}, http.StatusRequestEntityTooLarge},
		{&types.Result{Error: &msg, Reason: types.ReasonUnavailable}, http.StatusServiceUnavailable},
		{&types.Result{Error: &msg, Reason: types.ReasonEmptyInput}, http.StatusUnprocessableEntity},
		{&types.Result{Error: &msg, Reason: types.ReasonShapeMismatch}, http.StatusUnprocessableEntity},
		{&types.Result{Error: &msg, Reason: types.ReasonNumericOverflow}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.result))
	}
}
