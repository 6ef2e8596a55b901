package optimistic

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	t.Run(`confirm on successful persist`, func(t *testing.T) {
		s := New([]string{"a", "b"})
		s.Propose([]string{"b", "a"})
		require.Equal(t, []string{"b", "a"}, s.Current())
		require.Equal(t, []string{"a", "b"}, s.Confirmed())

		var saved []string
		result, err := s.Reconcile(func(value []string) error {
			saved = value
			return nil
		})
		require.Nil(t, err)
		require.Equal(t, []string{"b", "a"}, result)
		require.Equal(t, []string{"b", "a"}, saved)
		_, ok := s.Pending()
		require.False(t, ok)
	})

	t.Run(`revert on failed persist`, func(t *testing.T) {
		s := New([]string{"a", "b"})
		s.Propose([]string{"b", "a"})
		result, err := s.Reconcile(func(value []string) error {
			return errors.New("write failed")
		})
		require.EqualError(t, err, "write failed")
		require.Equal(t, []string{"a", "b"}, result)
		require.Equal(t, []string{"a", "b"}, s.Current())
		_, ok := s.Pending()
		require.False(t, ok)
	})

	t.Run(`nothing pending`, func(t *testing.T) {
		s := New(1)
		called := false
		result, err := s.Reconcile(func(value int) error {
			called = true
			return nil
		})
		require.Nil(t, err)
		require.False(t, called)
		require.Equal(t, 1, result)
	})
}
