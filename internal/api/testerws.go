package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"shipquote/internal/model"
)

// Rate tester over WebSocket: the admin UI streams destination/cart edits
// and receives quotes plus the diagnostic report for each message, so a
// merchant can watch options appear while adjusting zone configuration.

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type evaluatePayload struct {
	Destination destinationPayload `json:"destination"`
	Items       []itemPayload      `json:"items"`
}

type evaluateResult struct {
	Quotes []model.Quote          `json:"quotes"`
	Report model.DiagnosticReport `json:"report"`
}

// TesterWSHandler handles GET /v1/shipping/tester/ws
func (s *Server) TesterWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	storeID := s.storeScope(r)

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error { _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	write := func(v any) error { return conn.WriteJSON(v) }
	writeErr := func(id, detail string) {
		payload, _ := json.Marshal(map[string]string{"detail": detail})
		_ = write(wsMessage{Type: "error", ID: id, Payload: payload})
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		switch msg.Type {
		case "ping":
			_ = write(wsMessage{Type: "pong", ID: msg.ID})
		case "evaluate":
			var p evaluatePayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				writeErr(msg.ID, "invalid payload: "+err.Error())
				continue
			}
			if p.Destination.Country == "" {
				writeErr(msg.ID, "destination country is required")
				continue
			}
			cart := model.Reduce(toCartItems(p.Items))
			dest := p.Destination.toModel()
			quotes, err := s.Engine.Quote(r.Context(), storeID, dest, cart)
			if err != nil {
				writeErr(msg.ID, err.Error())
				continue
			}
			report, err := s.Engine.Explain(r.Context(), storeID, dest, cart)
			if err != nil {
				writeErr(msg.ID, err.Error())
				continue
			}
			payload, _ := json.Marshal(evaluateResult{Quotes: quotes, Report: report})
			_ = write(wsMessage{Type: "result", ID: msg.ID, Payload: payload})
		default:
			writeErr(msg.ID, "unknown message type: "+msg.Type)
		}
	}
}
