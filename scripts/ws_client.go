// Package main runs a demo WebSocket client for the shipping rate tester.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/shipping/tester/ws"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	payload, _ := json.Marshal(map[string]any{
		"destination": map[string]string{"country": "AU", "state": "NSW", "postcode": "2000"},
		"items": []map[string]any{
			{"productId": "sku-1", "quantity": 2, "unitPriceCents": 2500, "unitWeightGrams": 400},
		},
	})
	if err := conn.WriteJSON(wsMessage{Type: "evaluate", ID: "1", Payload: payload}); err != nil {
		log.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		log.Fatalf("read: %v", err)
	}
	pretty, _ := json.MarshalIndent(json.RawMessage(msg.Payload), "", "  ")
	fmt.Printf("%s:\n%s\n", msg.Type, pretty)
}
