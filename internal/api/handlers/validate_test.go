package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"delivery-route-service/internal/api/dto"

	"github.com/stretchr/testify/require"
)

func TestValidateHandlerAcceptsWellFormedProblem(t *testing.T) {
	h := &ValidateHandler{}

	body, err := json.Marshal(sampleOptimizeBody())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Validate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.ValidateOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Valid)
	require.Equal(t, 1, out.StationCount)
	require.Equal(t, 1, out.VehicleCount)
}

func TestValidateHandlerReturns200OnMalformedBody(t *testing.T) {
	h := &ValidateHandler{}

	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.Validate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.ValidateOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.False(t, out.Valid)
	require.NotEmpty(t, out.Error)
}
