// Package live recalculates a tank over a WebSocket as the client edits
// its inputs, sending one result per quiet period.
package live

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/debounce"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	WriteTimeout = 10 * time.Second
	ReadLimit    = 64 << 10
)

// Message is what the server sends after each recalculation.
type Message struct {
	Output   *tank.Output `json:"output,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
	Error    string       `json:"error,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

type Handler struct {
	Tank   *tank.Handler
	Window time.Duration
	Clock  clockwork.Clock
	Log    logrus.FieldLogger

	upgrader websocket.Upgrader
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

// Serve upgrades the request and runs the session until the client
// disconnects. Every text frame must hold a full tank input.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger().WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(ReadLimit)

	th := h.Tank
	if th == nil {
		th = &tank.Handler{}
	}

	var writeMu sync.Mutex
	send := func(m Message) {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteJSON(m); err != nil {
			h.logger().WithError(err).Debug("websocket write failed")
		}
	}

	d := debounce.New(h.Clock, h.Window, func(in tank.Input) {
		send(Evaluate(th, in))
	})
	defer d.Stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger().WithError(err).Debug("websocket read error")
			}
			return
		}
		var in tank.Input
		if err := json.Unmarshal(data, &in); err != nil {
			send(Message{Error: "Invalid request payload"})
			continue
		}
		d.Trigger(in)
	}
}

// Evaluate runs one calculation and shapes the outcome for the client.
func Evaluate(th *tank.Handler, in tank.Input) Message {
	out, v, err := th.Run(in)
	switch {
	case !v.IsValid:
		return Message{Errors: v.Errors}
	case errors.Is(err, tank.ErrNonFinite):
		return Message{Error: err.Error(), Warnings: out.Warnings}
	case err != nil:
		return Message{Error: err.Error()}
	}
	return Message{Output: &out}
}
