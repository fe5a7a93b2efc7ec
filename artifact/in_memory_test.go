package artifact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStore(t *testing.T) {
	t.Run("save and get copy bytes", func(t *testing.T) {
		s := NewInMemoryStore()

		data := []byte("transcript")
		require.NoError(t, s.Save("s1", "r1", data))

		data[0] = 'T'

		out, err := s.Get("s1", "r1")
		require.NoError(t, err)
		require.Equal(t, "transcript", string(out))

		out[0] = 'x'

		out2, err := s.Get("s1", "r1")
		require.NoError(t, err)
		require.Equal(t, "transcript", string(out2))
	})

	t.Run("get missing", func(t *testing.T) {
		s := NewInMemoryStore()

		_, err := s.Get("s1", "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		s := NewInMemoryStore()

		require.NoError(t, s.Save("s1", "r1", []byte("1")))
		require.NoError(t, s.Save("s1", "r2", []byte("2")))

		ids, err := s.List("s1")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"r1", "r2"}, ids)

		require.NoError(t, s.Delete("s1", "r1"))
		require.ErrorIs(t, s.Delete("s1", "r1"), ErrNotFound)

		ids, err = s.List("s1")
		require.NoError(t, err)
		require.Equal(t, []string{"r2"}, ids)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		s := NewInMemoryStore()

		require.NoError(t, s.Save("s1", "r1", []byte("one")))

		_, err := s.Get("s2", "r1")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
