// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     server
// Description: WebSocket endpoint for editors that re-parse on every keystroke
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox"
	"github.com/msto63/glox/foundation/lox/printer"
)

// wsReadTimeout closes idle connections that stop answering pings
const wsReadTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local editors
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is a client request: "parse", "scan" or "ping"
type WSMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"` // echoed in the response
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse answers one WSMessage: "parse", "scan", "pong" or "error"
type WSResponse struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload describes a rejected request
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler serves ParserService operations over a WebSocket.
// Requests on one connection are answered in order.
type WebSocketHandler struct {
	frontend *lox.Frontend
	metrics  *Metrics
	logger   *gloxlog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(frontend *lox.Frontend, metrics *Metrics, logger *gloxlog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = gloxlog.GetDefault()
	}
	return &WebSocketHandler{
		frontend: frontend,
		metrics:  metrics,
		logger:   logger.WithField("component", "websocket"),
	}
}

// ServeHTTP handles the WebSocket upgrade and the connection
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnWithErr("WebSocket upgrade failed", err)
		return
	}
	h.handleConnection(conn)
}

func (h *WebSocketHandler) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	log := h.logger.WithField("remote", conn.RemoteAddr().String())
	log.Info("WebSocket connection established")

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WarnWithErr("WebSocket read error", err)
			} else {
				log.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		resp := h.handleMessage(msg)
		if err := conn.WriteJSON(resp); err != nil {
			log.WarnWithErr("WebSocket write failed", err)
			return
		}
	}
}

func (h *WebSocketHandler) handleMessage(msg WSMessage) WSResponse {
	start := time.Now()

	switch msg.Type {
	case "ping":
		return WSResponse{Type: "pong", ID: msg.ID}

	case "parse":
		var req ParseRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return wsError(msg.ID, "invalid_payload", "invalid parse payload")
		}
		style, err := printer.ParseStyle(req.Printer)
		if err != nil {
			return wsError(msg.ID, string(gloxerror.GetCode(err)), err.Error())
		}
		res, err := h.frontend.Parse(req.Source)
		if err != nil {
			h.metrics.observeRequest("ws/parse", string(gloxerror.GetCode(err)), time.Since(start))
			return wsError(msg.ID, string(gloxerror.GetCode(err)), err.Error())
		}
		h.metrics.observeSource("parse", len(req.Source), len(res.Diagnostics))
		h.metrics.observeRequest("ws/parse", "OK", time.Since(start))
		return WSResponse{Type: "parse", ID: msg.ID, Payload: NewParseResponse(res, style)}

	case "scan":
		var req ScanRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return wsError(msg.ID, "invalid_payload", "invalid scan payload")
		}
		res, err := h.frontend.Scan(req.Source)
		if err != nil {
			h.metrics.observeRequest("ws/scan", string(gloxerror.GetCode(err)), time.Since(start))
			return wsError(msg.ID, string(gloxerror.GetCode(err)), err.Error())
		}
		h.metrics.observeSource("scan", len(req.Source), len(res.Diagnostics))
		h.metrics.observeRequest("ws/scan", "OK", time.Since(start))
		return WSResponse{Type: "scan", ID: msg.ID, Payload: NewScanResponse(res)}

	default:
		return wsError(msg.ID, "unknown_type", "unknown message type: "+msg.Type)
	}
}

func wsError(id, code, message string) WSResponse {
	return WSResponse{Type: "error", ID: id, Payload: WSErrorPayload{Code: code, Message: message}}
}
