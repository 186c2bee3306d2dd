// Copyright the gdlk-lang contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gdlk-lang/gdlk/pkg/lang/machine"
	"github.com/gdlk-lang/gdlk/pkg/session"
)

// errStepBudget terminates a connection which stepped too many times.
var errStepBudget = errors.New("step budget exhausted")

// connection drives one websocket session. The read loop is the only
// goroutine touching the session; the heartbeat goroutine only sends control
// frames, which gorilla permits concurrently with data writes.
type connection struct {
	conn    *websocket.Conn
	session *session.Session
	log     *logrus.Entry
	steps   int
}

func (c *connection) serve() {
	defer c.conn.Close()
	// Drop the connection once the client stops answering pings.
	_ = c.conn.SetReadDeadline(time.Now().Add(clientTimeout))
	//
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(clientTimeout))
	})
	//
	done := make(chan struct{})
	defer close(done)
	//
	go c.heartbeat(done)
	//
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		//
		response, err := c.process(data)
		//
		if err := c.send(response); err != nil {
			return
		}
		//
		if err != nil {
			c.log.WithError(err).Warn("terminating session")
			c.close(websocket.ClosePolicyViolation, err.Error())
			//
			return
		}
	}
}

func (c *connection) heartbeat(done <-chan struct{}) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	//
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			//
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// process handles one incoming message, producing the event to send back and,
// for violations which must end the session, a terminal error.
func (c *connection) process(data []byte) (outgoingEvent, error) {
	var event incomingEvent
	//
	if err := json.Unmarshal(data, &event); err != nil {
		return malformedEvent(err.Error()), nil
	}
	//
	c.log.WithField("event", event.Type).Debug("handling event")
	//
	switch event.Type {
	case "edit":
		var content editContent
		//
		if err := json.Unmarshal(event.Content, &content); err != nil {
			return malformedEvent(err.Error()), nil
		}
		//
		c.session.Edit(content.Source)
		//
		return sourceEvent(c.session.Source()), nil
	case "compile":
		if errs := c.session.Compile(); errs != nil {
			return compileErrorEvent(errs), nil
		}
		//
		return machineStateEvent(c.session.Machine()), nil
	case "step":
		return c.step()
	default:
		return malformedEvent("unknown event type \"" + event.Type + "\""), nil
	}
}

func (c *connection) step() (outgoingEvent, error) {
	if c.steps >= maxStepsPerConnection {
		return runtimeErrorEvent(errStepBudget.Error()), errStepBudget
	}
	//
	c.steps++
	//
	_, err := c.session.Step()
	//
	switch {
	case errors.Is(err, session.ErrNoCompilation):
		return noCompilationEvent(), nil
	case err != nil:
		// Runtime errors and steps against a terminated machine.
		return runtimeErrorEvent(err.Error()), nil
	default:
		return machineStateEvent(c.session.Machine()), nil
	}
}

func (c *connection) send(event outgoingEvent) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	//
	return c.conn.WriteJSON(event)
}

func (c *connection) close(code int, reason string) {
	deadline := time.Now().Add(writeTimeout)
	message := websocket.FormatCloseMessage(code, reason)
	//
	_ = c.conn.WriteControl(websocket.CloseMessage, message, deadline)
}

// machineStateEvent snapshots a machine into a machine_state event.
func machineStateEvent(m *machine.Machine) outgoingEvent {
	return outgoingEvent{
		Type: "machine_state",
		Content: machineStateContent{
			State:        m.State(),
			IsComplete:   m.IsComplete(),
			IsSuccessful: m.IsSuccessful(),
		},
	}
}
