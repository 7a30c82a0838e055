package server

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/docschat/docschat/internal/query"
)

func dialWS(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendWSQuery(t *testing.T, conn *websocket.Conn, query string) wsResponse {
	t.Helper()
	if err := conn.WriteJSON(wsRequest{Query: query}); err != nil {
		t.Fatalf("writing message: %v", err)
	}
	var resp wsResponse
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	return resp
}

func TestChatWS_RepliesToQuery(t *testing.T) {
	svc := &stubAnswerer{reply: "Restart codespaces by running X."}
	s, _ := newTestServer(t, svc, nil, nil)
	conn := dialWS(t, s)

	resp := sendWSQuery(t, conn, "how do I restart?")

	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Reply != svc.reply {
		t.Errorf("reply = %q, want %q", resp.Reply, svc.reply)
	}
}

func TestChatWS_EmptyQueryNeverReachesService(t *testing.T) {
	svc := &stubAnswerer{reply: "unexpected"}
	s, _ := newTestServer(t, svc, nil, nil)
	conn := dialWS(t, s)

	resp := sendWSQuery(t, conn, "")
	if resp.Error != "query is required" {
		t.Errorf("error = %q, want %q", resp.Error, "query is required")
	}
	if len(svc.queries) != 0 {
		t.Errorf("service was called for an empty query: %v", svc.queries)
	}

	// The session stays usable after a rejected message.
	resp = sendWSQuery(t, conn, "real question")
	if resp.Reply != svc.reply {
		t.Errorf("follow-up reply = %q, want %q", resp.Reply, svc.reply)
	}
}

func TestChatWS_PipelineFailureHidesDetail(t *testing.T) {
	svc := &stubAnswerer{err: &query.Error{Stage: "complete", Err: errors.New("api key sk-secret rejected")}}
	s, logBuf := newTestServer(t, svc, nil, nil)
	conn := dialWS(t, s)

	resp := sendWSQuery(t, conn, "anything")

	if resp.Error != "error processing chat" {
		t.Errorf("error = %q, want generic message", resp.Error)
	}
	if strings.Contains(resp.Error, "sk-secret") || strings.Contains(resp.Reply, "sk-secret") {
		t.Error("response leaks the internal error detail")
	}
	if !strings.Contains(logBuf.String(), "sk-secret") {
		t.Error("internal error detail was not logged")
	}
}

// deadlineAnswerer records the deadline of each call's context.
type deadlineAnswerer struct {
	mu        sync.Mutex
	deadlines []time.Time
}

func (a *deadlineAnswerer) Answer(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return "", errors.New("context has no deadline")
	}
	a.mu.Lock()
	a.deadlines = append(a.deadlines, deadline)
	a.mu.Unlock()
	return "ok", nil
}

func TestChatWS_EachMessageGetsFreshDeadline(t *testing.T) {
	// Long-lived sessions must not inherit a deadline fixed at upgrade
	// time: every message answers against its own timeout, so a session
	// older than the HTTP request timeout keeps working.
	svc := &deadlineAnswerer{}
	s, _ := newTestServer(t, svc, nil, nil)
	conn := dialWS(t, s)

	if resp := sendWSQuery(t, conn, "first"); resp.Error != "" {
		t.Fatalf("first message failed: %s", resp.Error)
	}
	time.Sleep(50 * time.Millisecond)
	if resp := sendWSQuery(t, conn, "second"); resp.Error != "" {
		t.Fatalf("second message failed: %s", resp.Error)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.deadlines) != 2 {
		t.Fatalf("recorded %d deadlines, want 2", len(svc.deadlines))
	}
	if !svc.deadlines[1].After(svc.deadlines[0]) {
		t.Errorf("second deadline %v does not advance past first %v; deadline was fixed at upgrade time",
			svc.deadlines[1], svc.deadlines[0])
	}
}
