package wsclient

import (
	"testing"

	fasthttpws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	messages [][]byte
	err      error
	reads    int
}

func (r *fakeReader) ReadMessage() (int, []byte, error) {
	r.reads++
	if len(r.messages) == 0 {
		return 0, nil, r.err
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return websocket.TextMessage, msg, nil
}

func TestDispatch(t *testing.T) {
	t.Run(`stops on close`, func(t *testing.T) {
		reader := &fakeReader{
			messages: [][]byte{[]byte("ping"), []byte("ping")},
			err:      &fasthttpws.CloseError{Code: websocket.CloseGoingAway},
		}
		NewClient("user-1", "job-1", reader).Dispatch()
		require.Equal(t, 3, reader.reads)
	})

	t.Run(`stops on read error`, func(t *testing.T) {
		reader := &fakeReader{err: errors.New("broken pipe")}
		NewClient("user-1", "job-1", reader).Dispatch()
		require.Equal(t, 1, reader.reads)
	})
}
