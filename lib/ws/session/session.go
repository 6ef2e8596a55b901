package wssession

import (
	"context"
	wsmodels "hr-pipeline-backend/models/ws"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn - часть websocket.Conn, через которую сессия отправляет события
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const sendBuffer = 16

// Session - подписчик событий доски одной вакансии
type Session struct {
	conn   Conn
	jobID  string
	sendCh chan wsmodels.BoardEvent
	stop   context.CancelFunc
	done   chan struct{}
}

func New(jobID string, conn Conn) *Session {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &Session{
		conn:   conn,
		jobID:  jobID,
		sendCh: make(chan wsmodels.BoardEvent, sendBuffer),
		stop:   cancelFn,
		done:   make(chan struct{}),
	}
	go sess.startSend(ctx)
	return sess
}

// Send не блокирует рассылку: при переполненном буфере событие отбрасывается
func (s *Session) Send(event wsmodels.BoardEvent) {
	select {
	case s.sendCh <- event:
	default:
		log.WithField("job_id", s.jobID).
			WithField("code", event.Code).
			Warn("буфер websocket сессии переполнен, событие пропущено")
	}
}

// Close останавливает отправку и закрывает соединение
func (s *Session) Close() {
	s.stop()
	<-s.done
}

func (s *Session) startSend(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).WithField("job_id", s.jobID).Error("ошибка отправки события доски")
				continue
			}
			log.WithField("job_id", s.jobID).WithField("code", msg.Code).Debug("отправлено событие доски")
		}
	}
}

func (s *Session) close() {
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).WithField("job_id", s.jobID).Debug("cant close")
	}
}
