package preview

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ryferguson/cornwand/pkg/wand"
)

// ReloadPath is the WebSocket endpoint browsers connect to.
const ReloadPath = "/_wand/reload"

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	File  string            `json:"file,omitempty"`
}

// ReloadHub manages WebSocket connections for live reload.
type ReloadHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
}

// NewReloadHub creates a new reload hub.
func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and holds the connection until the
// browser goes away.
func (h *ReloadHub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// NotifyReload tells every browser to reload.
func (h *ReloadHub) NotifyReload(file string) int {
	return h.broadcast(ReloadMessage{Type: ReloadTypeFull, File: file})
}

// NotifyError shows a decode error in every browser.
func (h *ReloadHub) NotifyError(file, errMsg string) int {
	return h.broadcast(ReloadMessage{Type: ReloadTypeError, File: file, Error: errMsg})
}

// broadcast sends msg to all clients and returns how many received it.
func (h *ReloadHub) broadcast(msg ReloadMessage) int {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	sent := 0
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
			continue
		}
		sent++
	}
	return sent
}

// ClientCount returns the number of connected clients.
func (h *ReloadHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *ReloadHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

const reloadJS = `(function(){
var delay=1000;
function overlay(msg){
var el=document.getElementById('wand-error');
if(!msg){if(el){el.remove();}return;}
if(!el){el=document.createElement('pre');el.id='wand-error';
el.style.cssText='position:fixed;inset:0;margin:0;padding:20px;background:rgba(0,0,0,.9);color:#f55;font:14px monospace;white-space:pre-wrap;z-index:999999';
document.body.appendChild(el);}
el.textContent=msg;}
function connect(){
var proto=location.protocol==='https:'?'wss:':'ws:';
var ws=new WebSocket(proto+'//'+location.host+'` + ReloadPath + `');
ws.onopen=function(){delay=1000;overlay('');};
ws.onmessage=function(e){var m;try{m=JSON.parse(e.data);}catch(err){return;}
if(m.type==='reload'){location.reload();}
else if(m.type==='error'){overlay(m.file+'\n\n'+m.error);}};
ws.onclose=function(){setTimeout(function(){delay=Math.min(delay*2,30000);connect();},delay);};
ws.onerror=function(){ws.close();};}
connect();})();`

// ReloadScript is the <script> element appended to documents when live
// reload is on.
var ReloadScript = wand.Tag("script", reloadJS)
