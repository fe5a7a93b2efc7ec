package codesearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/tool"
)

type stubEmbedder struct {
	vector []float64
	err    error
	last   string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.last = text
	return s.vector, s.err
}

func TestTool_Run(t *testing.T) {
	t.Run("returns matched chunks", func(t *testing.T) {
		emb := &stubEmbedder{vector: []float64{0.1, 0.2}}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/rest/v1/rpc/match_code_chunks", r.URL.Path)
			require.Equal(t, "svc-key", r.Header.Get("apikey"))
			require.Equal(t, "Bearer svc-key", r.Header.Get("Authorization"))

			var req matchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, []float64{0.1, 0.2}, req.QueryEmbedding)
			require.Equal(t, 5, req.MatchCount)

			_, _ = w.Write([]byte(`[{"file_path":"auth/login.go","content":"func Login() {}","similarity":0.91}]`))
		}))
		defer srv.Close()

		cs := New(srv.URL, "svc-key", emb)

		out, err := cs.Run(context.Background(), "where is login handled")
		require.NoError(t, err)
		require.Contains(t, out, "File: auth/login.go (relevance 0.91)")
		require.Contains(t, out, "func Login() {}")
		require.Equal(t, "where is login handled", emb.last)
	})

	t.Run("missing credentials", func(t *testing.T) {
		cs := New("", "", &stubEmbedder{})

		_, err := cs.Run(context.Background(), "query")
		require.Error(t, err)

		var terr *tool.ToolError
		require.True(t, errors.As(err, &terr))
		require.Equal(t, tool.CodeMissingCredential, terr.Code)
	})

	t.Run("embedder failure", func(t *testing.T) {
		cs := New("https://example.supabase.co", "key", &stubEmbedder{err: errors.New("quota exceeded")})

		_, err := cs.Run(context.Background(), "query")
		require.Error(t, err)
		require.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("no matches", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		cs := New(srv.URL, "key", &stubEmbedder{vector: []float64{0.5}})

		out, err := cs.Run(context.Background(), "nothing here")
		require.NoError(t, err)
		require.Equal(t, "No matching code chunks found.", out)
	})

	t.Run("rpc failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		cs := New(srv.URL, "bad-key", &stubEmbedder{vector: []float64{0.5}})

		_, err := cs.Run(context.Background(), "query")
		require.Error(t, err)

		var terr *tool.ToolError
		require.True(t, errors.As(err, &terr))
		require.Equal(t, tool.CodeHTTP, terr.Code)
	})

	t.Run("truncates long chunks", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"file_path":"big.go","content":"abcdefghij","similarity":0.8}]`))
		}))
		defer srv.Close()

		cs := New(srv.URL, "key", &stubEmbedder{vector: []float64{0.5}}, func(o *Options) {
			o.MaxChunkChars = 4
		})

		out, err := cs.Run(context.Background(), "query")
		require.NoError(t, err)
		require.Contains(t, out, "abcd\n... (truncated)")
		require.NotContains(t, out, "abcdefghij")
	})
}
