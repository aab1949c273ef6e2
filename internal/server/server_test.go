package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	ts := httptest.NewServer(New(logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

// uploadCSV posts csv as the 'file' multipart field with extra form fields.
func uploadCSV(t *testing.T, url, csvBody string, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "data.csv")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(csvBody))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	resp, err := http.Post(url, w.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body HealthResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "eda-cli", body.Service)
}

func TestQualityFromCSV(t *testing.T) {
	ts := newTestServer(t)

	resp := uploadCSV(t, ts.URL+"/quality-from-csv", "id,cat\n1,a\n2,a\n3,a\n", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Columns []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"columns"`
		Missing struct {
			Overall float64 `json:"overall"`
		} `json:"missing"`
		Flags        map[string]bool `json:"flags"`
		QualityScore float64         `json:"quality_score"`
	}
	decodeJSON(t, resp, &body)

	require.Len(t, body.Columns, 2)
	assert.Equal(t, "id", body.Columns[0].Name)
	assert.Equal(t, "numeric", body.Columns[0].Type)
	assert.Equal(t, "categorical", body.Columns[1].Type)
	assert.Equal(t, 0.0, body.Missing.Overall)
	assert.True(t, body.Flags["too_few_rows"])
	assert.True(t, body.Flags["has_constant_columns"])
	assert.Greater(t, body.QualityScore, 0.0)
}

func TestQualityFlagsFromCSV(t *testing.T) {
	ts := newTestServer(t)

	resp := uploadCSV(t, ts.URL+"/quality-flags-from-csv", "id,cat\n1,a\n2,a\n3,a\n", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body FlagsResponse
	decodeJSON(t, resp, &body)

	assert.Len(t, body.Flags, 5)
	assert.True(t, body.Flags["too_few_rows"])
	assert.False(t, body.Flags["too_many_columns"])
	assert.False(t, body.Flags["too_many_missing"])
	assert.True(t, body.Flags["has_constant_columns"])
	assert.False(t, body.Flags["has_high_cardinality_categoricals"])
}

func TestThresholdOverrides(t *testing.T) {
	ts := newTestServer(t)
	csvBody := "id\n1\n2\n3\n"

	resp := uploadCSV(t, ts.URL+"/quality-flags-from-csv", csvBody, map[string]string{"min_rows": "2"})
	var body FlagsResponse
	decodeJSON(t, resp, &body)
	assert.False(t, body.Flags["too_few_rows"])

	resp = uploadCSV(t, ts.URL+"/quality-flags-from-csv", csvBody, map[string]string{"min_rows": "100"})
	decodeJSON(t, resp, &body)
	assert.True(t, body.Flags["too_few_rows"])
}

func TestBadThresholdValue(t *testing.T) {
	ts := newTestServer(t)

	resp := uploadCSV(t, ts.URL+"/quality-flags-from-csv", "id\n1\n", map[string]string{"min_rows": "lots"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMissingFileField(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "x"))
	require.NoError(t, w.Close())

	resp, err := http.Post(ts.URL+"/quality-from-csv", w.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNonMultipartBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/quality-from-csv", "text/plain", strings.NewReader("id\n1\n"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmptyDatasetIsUnprocessable(t *testing.T) {
	ts := newTestServer(t)

	// header only: zero data rows
	resp := uploadCSV(t, ts.URL+"/quality-from-csv", "a,b\n", nil)
	var body ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Error, "invalid dataset")
}

func TestMalformedCSVIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	resp := uploadCSV(t, ts.URL+"/quality-from-csv", "a,b\n1,2,3\n", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
