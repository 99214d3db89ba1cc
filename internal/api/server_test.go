package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

func TestHealthCheck(t *testing.T) {
	s := NewServer()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestLatestReport(t *testing.T) {
	s := NewServer()

	// 404 before any run has been published
	req := httptest.NewRequest("GET", "/api/v1/report", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s.SetReport(&types.RunReport{
		RunID:  "run-1",
		Passed: 2,
		Results: []types.ConfigReport{
			{Name: "full", Status: types.ConfigPass},
			{Name: "minimal", Status: types.ConfigPass},
		},
	})

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var report types.RunReport
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "run-1", report.RunID)
	assert.Len(t, report.Results, 2)
}
