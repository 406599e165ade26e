package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/presenceboard/ingest"
	"github.com/camden-git/presenceboard/repository"
)

type fakeStatusRepo struct {
	roster   map[uint]bool
	statuses map[uint]int
	storeErr error

	viewRows []repository.ViewRow
	viewErr  error
}

func (f *fakeStatusRepo) Exists(personID uint) (bool, error) {
	if f.storeErr != nil {
		return false, f.storeErr
	}
	return f.roster[personID], nil
}

func (f *fakeStatusRepo) SetStatus(personID uint, status int, timestamp string) (*int, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	old, existed := f.statuses[personID]
	f.statuses[personID] = status
	if !existed {
		return nil, nil
	}
	return &old, nil
}

func (f *fakeStatusRepo) ListView() ([]repository.ViewRow, error) {
	if f.viewErr != nil {
		return nil, f.viewErr
	}
	return f.viewRows, nil
}

type nopAuditor struct{}

func (nopAuditor) RecordFormatError(string) {}

func (nopAuditor) RecordUnregisteredID(string, string) {}

func (nopAuditor) RecordStatusChange(uint, int, int, string) {}

func newStatusHandler(repo *fakeStatusRepo) *StatusHandler {
	return &StatusHandler{
		Ingest:     ingest.NewService(repo, nopAuditor{}),
		StatusRepo: repo,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUpdateStatusMissingData(t *testing.T) {
	handler := newStatusHandler(&fakeStatusRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/status_update", nil)
	rec := httptest.NewRecorder()
	handler.UpdateStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["result"])
	assert.Equal(t, "missing_data", body["reason"])
}

func TestUpdateStatusOutcomeMapping(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		storeErr       error
		expectedCode   int
		expectedResult string
		expectedReason string
	}{
		{
			name:           "success",
			payload:        "5,1",
			expectedCode:   http.StatusOK,
			expectedResult: "ok",
		},
		{
			name:           "format error",
			payload:        "5",
			expectedCode:   http.StatusBadRequest,
			expectedResult: "error",
			expectedReason: "format_error",
		},
		{
			name:           "invalid status",
			payload:        "5,2",
			expectedCode:   http.StatusBadRequest,
			expectedResult: "error",
			expectedReason: "invalid_status",
		},
		{
			name:           "store failure",
			payload:        "5,1",
			storeErr:       errors.New("disk gone"),
			expectedCode:   http.StatusInternalServerError,
			expectedResult: "error",
			expectedReason: "db_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeStatusRepo{
				roster:   map[uint]bool{5: true},
				statuses: map[uint]int{},
				storeErr: tt.storeErr,
			}
			handler := newStatusHandler(repo)

			req := httptest.NewRequest(http.MethodGet, "/api/status_update?data="+tt.payload, nil)
			rec := httptest.NewRecorder()
			handler.UpdateStatus(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.expectedResult, body["result"])
			if tt.expectedReason != "" {
				assert.Equal(t, tt.expectedReason, body["reason"])
			}
		})
	}
}

func TestStatusView(t *testing.T) {
	status := 1
	timestamp := "2025-01-02 09:00:00"
	repo := &fakeStatusRepo{
		viewRows: []repository.ViewRow{
			{ID: 1, Name: "Ada", Department: "Eng", Room: "A1", Status: &status, Timestamp: &timestamp},
			{ID: 2, Name: "Zed"},
		},
	}
	handler := newStatusHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/status_view", nil)
	rec := httptest.NewRecorder()
	handler.StatusView(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["result"])

	records, ok := body["records"].([]interface{})
	require.True(t, ok)
	require.Len(t, records, 2)

	first := records[0].(map[string]interface{})
	assert.Equal(t, "Ada", first["name"])
	assert.Equal(t, float64(1), first["status"])

	second := records[1].(map[string]interface{})
	assert.Nil(t, second["status"])
	assert.Nil(t, second["timestamp"])
}

func TestStatusViewFailure(t *testing.T) {
	repo := &fakeStatusRepo{viewErr: errors.New("disk gone")}
	handler := newStatusHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/status_view", nil)
	rec := httptest.NewRecorder()
	handler.StatusView(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal_error", body["reason"])
}
