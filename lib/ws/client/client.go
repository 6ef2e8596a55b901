package wsclient

import (
	"fmt"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Reader - часть websocket.Conn для чтения сообщений клиента
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

func NewClient(userID, jobID string, c Reader) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
		jobID:  jobID,
	}
}

// WsClient - клиент доски вакансии. Сообщения клиента не обрабатываются, чтение нужно
// для обнаружения закрытия соединения.
type WsClient struct {
	conn   Reader
	userID string
	jobID  string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает сообщения до закрытия соединения
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID).WithField("job_id", c.jobID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			return
		}
		logger.WithField("ws_message", fmt.Sprintf("%s", data)).Debug("ws-msg")
	}
}
