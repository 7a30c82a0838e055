package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming websocket message format.
type wsRequest struct {
	Query string `json:"query"`
}

// wsResponse is the outgoing websocket message format.
type wsResponse struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleChatWS serves the chat widget's websocket transport. Validation
// and error mapping mirror the POST endpoint: an empty query never reaches
// the completion provider, and failures surface as a generic error.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Printf("websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWS(conn, wsResponse{Error: "invalid message format"})
			continue
		}
		if req.Query == "" {
			s.sendWS(conn, wsResponse{Error: "query is required"})
			continue
		}

		// Fresh deadline per message; the connection's own context lives
		// as long as the session does.
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		reply, err := s.svc.Answer(ctx, req.Query)
		cancel()
		if err != nil {
			s.logger.Printf("websocket chat failed: %v", err)
			s.sendWS(conn, wsResponse{Error: "error processing chat"})
			continue
		}

		s.sendWS(conn, wsResponse{Reply: reply})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Printf("websocket write: %v", err)
	}
}
