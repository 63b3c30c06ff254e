package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/data.csv"))
	assert.True(t, IsURL("http://example.com/data.csv"))
	assert.False(t, IsURL("data/companies.csv"))
	assert.False(t, IsURL("/abs/path.csv"))
	assert.False(t, IsURL("ftp://example.com/data.csv"))
	assert.False(t, IsURL("https://"))
}

func TestSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte("company_name,corp_code\nAcme,001\n"), 0o644))

	result, err := Source(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.Contains(t, result.Text, "Acme")
}

func TestSource_MissingFile(t *testing.T) {
	_, err := Source(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), nil)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "failed to read dataset file")
}

func TestSource_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("company_name\nAcme\n"))
	}))
	defer server.Close()

	result, err := Source(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.Text, "Acme")
}

func TestSource_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := Source(context.Background(), server.URL, nil)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Message, "unexpected status 500")
}

func TestError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	e := &Error{Source: "x", Message: "m", Cause: cause}
	assert.ErrorIs(t, e, os.ErrNotExist)
}
