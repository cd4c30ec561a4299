package infra_poster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/humanbelnik/cinetally/internal/config"
	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(config.Poster{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	}, WithHTTPClient(srv.Client()))
	return c, srv
}

func TestPosterLink(t *testing.T) {
	t.Run("Should return the poster for a known title", func(t *testing.T) {
		var gotQuery map[string]string

		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"apikey": r.URL.Query().Get("apikey"),
				"t":      r.URL.Query().Get("t"),
				"type":   r.URL.Query().Get("type"),
			}
			w.Write([]byte(`{"Response":"True","Poster":"http://img/interstellar.jpg"}`))
		})
		defer srv.Close()

		link, err := c.PosterLink(context.Background(), "Interstellar", model.KindMovie)

		require.NoError(t, err)
		assert.Equal(t, "http://img/interstellar.jpg", link)
		assert.Equal(t, map[string]string{
			"apikey": "test-key",
			"t":      "Interstellar",
			"type":   "movie",
		}, gotQuery)
	})

	t.Run("Should treat an unknown title as an empty link", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		})
		defer srv.Close()

		link, err := c.PosterLink(context.Background(), "No Such Title", model.KindMovie)

		require.NoError(t, err)
		assert.Empty(t, link)
	})

	t.Run("Should treat an N/A poster as an empty link", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Response":"True","Poster":"N/A"}`))
		})
		defer srv.Close()

		link, err := c.PosterLink(context.Background(), "Obscure", model.KindSeries)

		require.NoError(t, err)
		assert.Empty(t, link)
	})

	t.Run("Should fail on a non-200 status", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		defer srv.Close()

		_, err := c.PosterLink(context.Background(), "Interstellar", model.KindMovie)

		assert.Error(t, err)
	})

	t.Run("Should fail on a malformed payload", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})
		defer srv.Close()

		_, err := c.PosterLink(context.Background(), "Interstellar", model.KindMovie)

		assert.Error(t, err)
	})
}
