package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/instagen/internal/api"
	"github.com/jonesrussell/instagen/internal/config"
	"github.com/jonesrussell/instagen/internal/imagegen"
	"github.com/jonesrussell/instagen/internal/llm"
	"github.com/jonesrussell/instagen/internal/logger"
	"github.com/jonesrussell/instagen/internal/pipeline"
	"github.com/jonesrussell/instagen/internal/storage"
)

const writeResponse = `SHORT CAPTION:
Punchy caption here!

LONG CAPTION:
A longer caption with the full story and a call to action.

HASHTAGS:
#one #two #three`

type urlProvider struct{}

func (urlProvider) Name() string { return "stub" }

func (urlProvider) Generate(context.Context, string, imagegen.Params) (*imagegen.Image, error) {
	return &imagegen.Image{URL: "http://img/1.png"}, nil
}

func testRouter(t *testing.T, mock *llm.Mock) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Service: config.ServiceConfig{Name: "instagen", Version: "1.0.0"},
		Content: config.ContentConfig{HashtagLimit: 30, ShortCaptionLimit: 150, LongCaptionLimit: 2200},
		Images:  config.ImageConfig{Provider: "stub", Count: 2, Width: 1024, Height: 1024},
		Output:  config.OutputConfig{ResultsDir: t.TempDir()},
	}

	images := imagegen.NewClient(urlProvider{}, cfg.Images, logger.NewNop())
	orch := pipeline.New(cfg, mock, images, nil, logger.NewNop())
	store := storage.NewResultStore(cfg.Output.ResultsDir)
	handler := api.NewHandler(orch, store, cfg, logger.NewNop())

	router := gin.New()
	api.SetupRoutes(router, handler)
	return router
}

func happyMock() *llm.Mock {
	return &llm.Mock{Responses: []string{
		"research findings",
		writeResponse,
		writeResponse,
		"A detailed cinematic shot of the subject in golden hour light",
	}}
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t, happyMock())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "instagen", body["service"])
}

func TestReadyCheck(t *testing.T) {
	router := testRouter(t, happyMock())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_Success(t *testing.T) {
	router := testRouter(t, happyMock())

	payload := bytes.NewBufferString(`{"topic": "Urban Beekeeping"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", payload)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Package)
	assert.Equal(t, "Urban Beekeeping", string(resp.Package.Topic))
	assert.Equal(t, "Punchy caption here!", resp.Package.ShortCaption)
	assert.Len(t, resp.Package.ImagePrompts, 2)
	assert.NotEmpty(t, resp.ResultPath)
}

func TestGenerate_MissingTopic(t *testing.T) {
	router := testRouter(t, happyMock())

	payload := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", payload)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_MalformedBody(t *testing.T) {
	router := testRouter(t, happyMock())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_PipelineFailure(t *testing.T) {
	mock := happyMock()
	mock.Errors = map[int]error{0: assert.AnError}
	router := testRouter(t, mock)

	payload := bytes.NewBufferString(`{"topic": "Urban Beekeeping"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", payload)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestListAndGetPackages(t *testing.T) {
	router := testRouter(t, happyMock())

	// Generate one package first so there is something to list.
	payload := bytes.NewBufferString(`{"topic": "Urban Beekeeping"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Packages []string `json:"packages"`
		Total    int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages/"+list.Packages[0], http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPackage_NotFound(t *testing.T) {
	router := testRouter(t, happyMock())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages/missing.json", http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
