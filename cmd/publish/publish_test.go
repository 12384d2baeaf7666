package publish

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuwabara/MUBench/internal/prepare"
)

func TestUploadIndex(t *testing.T) {
	reviews := t.TempDir()
	document := "<html>review index</html>"
	require.NoError(t, os.WriteFile(filepath.Join(reviews, prepare.IndexFile), []byte(document), 0644))

	t.Run("posts the index with the token header", func(t *testing.T) {
		t.Setenv("MUBENCH_REVIEW_TOKEN", "s3cret")

		var gotPath, gotAuth, gotContentType string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		opts := &RunOptionsPublish{URL: server.URL, Detector: "mudetect", ReviewsPath: reviews}
		require.NoError(t, uploadIndex(resty.New(), opts))

		assert.Equal(t, "/api/reviews/mudetect", gotPath)
		assert.Equal(t, "Token s3cret", gotAuth)
		assert.Equal(t, "text/html", gotContentType)
		assert.Equal(t, document, string(gotBody))
	})

	t.Run("omits the token header when no token is set", func(t *testing.T) {
		t.Setenv("MUBENCH_REVIEW_TOKEN", "")

		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		opts := &RunOptionsPublish{URL: server.URL, Detector: "mudetect", ReviewsPath: reviews}
		require.NoError(t, uploadIndex(resty.New(), opts))
		assert.Empty(t, gotAuth)
	})

	t.Run("fails when the review site rejects the upload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer server.Close()

		opts := &RunOptionsPublish{URL: server.URL, Detector: "mudetect", ReviewsPath: reviews}
		err := uploadIndex(resty.New(), opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rejected")
	})

	t.Run("fails when the review index is missing", func(t *testing.T) {
		opts := &RunOptionsPublish{URL: "http://127.0.0.1:0", Detector: "mudetect", ReviewsPath: t.TempDir()}
		err := uploadIndex(resty.New(), opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read review index")
	})
}
