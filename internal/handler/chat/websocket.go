package chat

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/service/rag"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The browser UI may be served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// wsFrame is one message of the WebSocket chat relay.
type wsFrame struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleChatWS runs the same flow as the SSE route over a WebSocket: one
// JSON request in, delta frames out, a done frame at end of stream.
func (h *Handler) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[chat-ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var payload chatRequest
	if err := conn.ReadJSON(&payload); err != nil {
		writeFrame(conn, wsFrame{Type: "error", Error: "invalid request payload"})
		return
	}
	if len(payload.Messages) == 0 || payload.UserID == "" {
		writeFrame(conn, wsFrame{Type: "error", Error: "messages and userId are required"})
		return
	}

	stream, err := h.svc.Respond(r.Context(), rag.Request{
		Messages:     payload.Messages,
		UserID:       payload.UserID,
		Persona:      payload.Persona,
		SystemPrompt: payload.SystemPrompt,
	})
	if err != nil {
		log.Printf("[chat-ws] request failed: %v", err)
		writeFrame(conn, wsFrame{Type: "error", Error: errs.PublicMessage(err)})
		return
	}
	defer stream.Close()

	for {
		delta, recvErr := stream.Recv()
		if recvErr == io.EOF {
			writeFrame(conn, wsFrame{Type: "done"})
			return
		}
		if recvErr != nil {
			log.Printf("[chat-ws] stream aborted: %v", recvErr)
			writeFrame(conn, wsFrame{Type: "error", Error: "stream interrupted"})
			return
		}

		if !writeFrame(conn, wsFrame{Type: "delta", Content: delta}) {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, frame wsFrame) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[chat-ws] write failed: %v", err)
		return false
	}
	return true
}
