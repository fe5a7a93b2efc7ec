package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/tool"
)

func TestTool_Run(t *testing.T) {
	t.Run("returns formatted submissions", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "rust vs go", r.URL.Query().Get("q"))
			require.Equal(t, "3", r.URL.Query().Get("size"))
			_, _ = w.Write([]byte(`{"data":[{"title":"Benchmarks","url":"https://example.com/bench","subreddit":"golang"},{"title":"Discussion","permalink":"/r/rust/comments/abc","subreddit":"rust"}]}`))
		}))
		defer srv.Close()

		rd := New(func(o *Options) { o.BaseURL = srv.URL })

		out, err := rd.Run(context.Background(), "rust vs go")
		require.NoError(t, err)
		require.Contains(t, out, "- [r/golang] Benchmarks\n  https://example.com/bench")
		require.Contains(t, out, "- [r/rust] Discussion\n  https://reddit.com/r/rust/comments/abc")
	})

	t.Run("subreddit filter", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "golang", r.URL.Query().Get("subreddit"))
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		rd := New(func(o *Options) {
			o.BaseURL = srv.URL
			o.Subreddit = "golang"
		})

		out, err := rd.Run(context.Background(), "generics")
		require.NoError(t, err)
		require.Equal(t, "No Reddit submissions found.", out)
	})

	t.Run("api failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		rd := New(func(o *Options) { o.BaseURL = srv.URL })

		_, err := rd.Run(context.Background(), "query")
		require.Error(t, err)

		var terr *tool.ToolError
		require.True(t, errors.As(err, &terr))
		require.Equal(t, tool.CodeHTTP, terr.Code)
	})
}
