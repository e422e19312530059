package preview

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialHub connects a WebSocket client to url and waits until the hub has
// registered it.
func dialHub(t *testing.T, hub *ReloadHub, url string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(url, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ReloadMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ReloadMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestReloadHub_Broadcast(t *testing.T) {
	hub := NewReloadHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dialHub(t, hub, srv.URL)

	if sent := hub.NotifyReload("index"); sent != 1 {
		t.Errorf("NotifyReload sent to %d clients, want 1", sent)
	}
	msg := readMessage(t, conn)
	if msg.Type != ReloadTypeFull || msg.File != "index" {
		t.Errorf("got %+v", msg)
	}

	hub.NotifyError("index", "page: root: missing tag")
	msg = readMessage(t, conn)
	if msg.Type != ReloadTypeError || msg.Error != "page: root: missing tag" {
		t.Errorf("got %+v", msg)
	}
}

func TestReloadHub_Close(t *testing.T) {
	hub := NewReloadHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	dialHub(t, hub, srv.URL)
	hub.Close()

	if n := hub.ClientCount(); n != 0 {
		t.Errorf("ClientCount() = %d after Close, want 0", n)
	}
	if sent := hub.NotifyReload("index"); sent != 0 {
		t.Errorf("NotifyReload after Close sent to %d clients", sent)
	}
}

func TestReloadScript(t *testing.T) {
	if !strings.HasPrefix(ReloadScript, "<script>") || !strings.HasSuffix(ReloadScript, "</script>") {
		t.Errorf("ReloadScript is not a script element: %.40q", ReloadScript)
	}
	if !strings.Contains(ReloadScript, ReloadPath) {
		t.Errorf("ReloadScript does not connect to %s", ReloadPath)
	}
}
