package stream

import (
	"io"

	"github.com/gorilla/websocket"
)

// SocketSink adapts a websocket connection into a Sink. Writes accumulate
// in the connection's current message writer; Flush finalizes the message
// so one flush produces one frame on the wire.
//
// Closing a message writer finalizes that frame only. SocketSink never
// closes the connection itself.
type SocketSink struct {
	conn        *websocket.Conn
	messageType int
	frame       io.WriteCloser
}

// NewSocketSink returns a SocketSink emitting text messages on conn.
func NewSocketSink(conn *websocket.Conn) *SocketSink {
	return &SocketSink{conn: conn, messageType: websocket.TextMessage}
}

// NewBinarySocketSink returns a SocketSink emitting binary messages,
// for non-UTF-8 body encodings.
func NewBinarySocketSink(conn *websocket.Conn) *SocketSink {
	return &SocketSink{conn: conn, messageType: websocket.BinaryMessage}
}

// Write appends p to the current message, opening one if necessary.
func (s *SocketSink) Write(p []byte) (int, error) {
	if s.frame == nil {
		w, err := s.conn.NextWriter(s.messageType)
		if err != nil {
			return 0, err
		}
		s.frame = w
	}
	return s.frame.Write(p)
}

// Flush finalizes the current message. Flushing with no pending message
// is a no-op, so release-time flushes do not emit empty frames.
func (s *SocketSink) Flush() error {
	if s.frame == nil {
		return nil
	}
	err := s.frame.Close()
	s.frame = nil
	return err
}
