package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, http.StatusNotFound, "Activity not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"detail":"Activity not found"}`, w.Body.String())
}

func TestWriteJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONMessage(w, http.StatusOK, "Signed up a@mergington.edu for Chess Club")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Signed up a@mergington.edu for Chess Club"}`, w.Body.String())
}
