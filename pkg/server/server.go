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

// Package server exposes the session lifecycle over websockets. Each
// connection is bound to one puzzle and owns one session; all events are JSON
// objects of the form {"type": ..., "content": ...} in both directions.
// Authentication and persistence live outside this package; it depends on a
// puzzle.Store only.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gdlk-lang/gdlk/pkg/puzzle"
	"github.com/gdlk-lang/gdlk/pkg/session"
)

// How often heartbeat pings are sent.
const heartbeatInterval = 5 * time.Second

// How long before lack of client response causes a timeout.
const clientTimeout = 10 * time.Second

// Deadline applied to individual writes.
const writeTimeout = 10 * time.Second

// Upper bound on step events per connection, so a hostile client cannot spin
// the server indefinitely.
const maxStepsPerConnection = 65536

// Server handles websocket sessions against a fixed set of puzzles.
type Server struct {
	store    puzzle.Store
	upgrader websocket.Upgrader
}

// New creates a server backed by a given puzzle store.
func New(store puzzle.Store) *Server {
	return &Server{store: store}
}

// Handler returns the HTTP handler exposing the websocket endpoint at
// /ws/{puzzle}.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/{puzzle}", s.handleSession)
	//
	return mux
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("puzzle")
	//
	log := logrus.WithFields(logrus.Fields{
		"puzzle": name,
		"remote": r.RemoteAddr,
	})
	//
	p, ok := s.store.Get(name)
	if !ok {
		log.Warn("unknown puzzle requested")
		http.NotFound(w, r)
		//
		return
	}
	//
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	//
	log.Info("session opened")
	//
	c := &connection{
		conn:    conn,
		session: session.New(p.Name, p.Hardware, p.Program),
		log:     log,
	}
	//
	c.serve()
	//
	log.Info("session closed")
}
