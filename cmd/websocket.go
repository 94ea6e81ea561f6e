package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"studioBack/internal/models"
)

const (
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	readDeadline  = 120 * time.Second

	// wsTicketTTL is how long a minted connection ticket stays usable.
	wsTicketTTL = time.Minute
)

// WebSocketManager pushes inbox events to connected admin sessions. All
// operations on clients happen in Run.
type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	broadcast  chan models.AdminEvent
	register   chan wsClient
	unregister chan wsUnreg
}

type wsClient struct {
	ID     int
	Socket *websocket.Conn
}

type wsUnreg struct {
	userID int
	conn   *websocket.Conn
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		broadcast:  make(chan models.AdminEvent, 16),
		register:   make(chan wsClient),
		unregister: make(chan wsUnreg),
	}
}

// Notify hands an event to the hub without blocking the mutation that
// produced it.
func (ws *WebSocketManager) Notify(event models.AdminEvent) {
	select {
	case ws.broadcast <- event:
	default:
		log.Printf("ws notify dropped: %s", event.Kind)
	}
}

func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// a reconnecting admin replaces their previous socket
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register admin=%d", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister admin=%d", u.userID)
			}

		case event := <-ws.broadcast:
			for id, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("broadcast error to=%d: %v", id, err)
					_ = conn.Close()
					delete(ws.clients, id)
				}
			}
		}
	}
}

// POST /admin/ws/ticket mints a short-lived token the browser passes in the
// upgrade URL, since websocket clients cannot set an Authorization header.
func (app *application) WebSocketTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ticket, err := app.tokenManager.NewJWT(strconv.Itoa(userID), wsTicketTTL)
	if err != nil {
		app.serverError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"ticket": ticket})
}

// GET /admin/ws?ticket=...
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	sub, err := app.tokenManager.Parse(r.URL.Query().Get("ticket"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	app.wsManager.register <- wsClient{ID: userID, Socket: conn}

	go func() {
		defer func() {
			app.wsManager.unregister <- wsUnreg{userID: userID, conn: conn}
		}()
		conn.SetReadLimit(1 << 16)
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(readDeadline))
		})

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		go func() {
			for range ticker.C {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
