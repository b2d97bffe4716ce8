// Copyright 2022 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pool

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sovereignkit/agentcore/utils/jsonw"
)

// WSDialerCreator opens a new connection to a remote pool control
// endpoint; it is called again on every redial attempt.
type WSDialerCreator func() (*websocket.Conn, error)

// wireRequest is what RemoteTransport sends for every initiating call.
type wireRequest struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Handle int32  `json:"handle,omitempty"`
}

// wireAck is what RemoteTransport expects back for every acknowledgement.
type wireAck struct {
	Type   string `json:"type"`
	Handle int32  `json:"handle"`
	Error  string `json:"error,omitempty"`
}

// RemoteTransport is a sample Transport that speaks to a remote pool
// control endpoint over a websocket connection, redialing on read errors
// the same way the notification service's remote client does.
type RemoteTransport struct {
	dc         WSDialerCreator
	maxRedials int

	startOnce sync.Once
	started   bool
	closed    bool

	conn        *websocket.Conn
	commMutex   sync.Mutex
	redialCount int

	nextHandle int32

	exec *Executor
}

// NewRemoteTransport returns a RemoteTransport that dials via dc,
// redialing up to maxRedials times (0 meaning unlimited) on connection
// loss. Acknowledgements read off the socket are forwarded into exec.
func NewRemoteTransport(dc WSDialerCreator, maxRedials int, exec *Executor) *RemoteTransport {
	return &RemoteTransport{dc: dc, maxRedials: maxRedials, exec: exec}
}

func (t *RemoteTransport) checkStarted() error {
	if t.started {
		if t.closed {
			return errors.New("remote pool transport closed")
		}
		return nil
	}
	var err error
	t.startOnce.Do(func() { err = t.start() })
	return err
}

func (t *RemoteTransport) start() error {
	conn, err := t.dc()
	if err != nil {
		return err
	}
	t.conn = conn

	go t.readLoop()

	t.started = true
	return nil
}

func (t *RemoteTransport) readLoop() {
	for {
		_, message, err := t.conn.ReadMessage()
		if err != nil {
			if t.closed {
				return
			}
			log.Err(err).Msg("error reading pool control message")

			if err := t.redial(); err != nil {
				_ = t.Close()
				return
			}
			continue
		}

		var ack wireAck
		if err := jsonw.Unmarshal(message, &ack); err != nil {
			log.Err(err).Str("body", string(message)).Msg("error unmarshalling pool ack")
			continue
		}

		var ackErr error
		if ack.Error != "" {
			ackErr = errors.New(ack.Error)
		}
		result := Result{Err: ackErr}

		switch ack.Type {
		case "OpenAck":
			t.exec.OpenAck(ack.Handle, result)
		case "CloseAck":
			t.exec.CloseAck(ack.Handle, result)
		case "RefreshAck":
			t.exec.RefreshAck(ack.Handle, result)
		default:
			log.Warn().Str("type", ack.Type).Msg("unrecognized pool ack type")
		}
	}
}

func (t *RemoteTransport) redial() error {
	t.commMutex.Lock()
	defer t.commMutex.Unlock()

	if t.closed {
		return errors.New("trying to redial a closed pool transport")
	}

	t.redialCount = 0
	_ = t.conn.Close()

	for {
		if t.maxRedials != 0 && t.redialCount >= t.maxRedials {
			return errors.New("max pool transport redial count exceeded")
		}
		conn, err := t.dc()
		if err == nil {
			t.conn = conn
			return nil
		}
		t.redialCount++
		time.Sleep(time.Second)
	}
}

func (t *RemoteTransport) write(req wireRequest) error {
	if err := t.checkStarted(); err != nil {
		return err
	}

	body, err := jsonw.Marshal(req)
	if err != nil {
		return err
	}

	t.commMutex.Lock()
	defer t.commMutex.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, body)
}

func (t *RemoteTransport) Create(name string, _ []byte) error {
	return t.write(wireRequest{Type: "Create", Name: name})
}

func (t *RemoteTransport) Delete(name string) error {
	return t.write(wireRequest{Type: "Delete", Name: name})
}

func (t *RemoteTransport) InitiateOpen(name string, _ []byte) (int32, error) {
	handle := atomic.AddInt32(&t.nextHandle, 1)
	if err := t.write(wireRequest{Type: "Open", Name: name, Handle: handle}); err != nil {
		return 0, err
	}
	return handle, nil
}

func (t *RemoteTransport) InitiateClose(handle int32) error {
	return t.write(wireRequest{Type: "Close", Handle: handle})
}

func (t *RemoteTransport) InitiateRefresh(handle int32) error {
	return t.write(wireRequest{Type: "Refresh", Handle: handle})
}

func (t *RemoteTransport) Close() error {
	t.commMutex.Lock()
	defer t.commMutex.Unlock()

	t.closed = true
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
