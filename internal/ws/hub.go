// Package ws содержит websocket-слой: ленту живых дропов
// и интерактивную сессию рулетки.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vaultory_backend/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin фильтруется CORS-слоем выше
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Размер буфера исходящих сообщений клиента.
// Медленный клиент, забивший буфер, отключается
const clientSendBuffer = 16

type dropClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub рассылает события ленты дропов всем подключенным клиентам.
// Реализует caseopen.DropBroadcaster
type Hub struct {
	mu      sync.RWMutex
	clients map[*dropClient]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*dropClient]struct{}),
	}
}

// HandleDrops - websocket-эндпоинт ленты дропов. Клиент только слушает
func (h *Hub) HandleDrops(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("drops: websocket upgrade failed")
		return
	}

	client := &dropClient{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.writePump(client)
	h.readPump(client)
}

// BroadcastDrop отправляет дроп всем клиентам ленты
func (h *Hub) BroadcastDrop(drop model.LiveDrop) {
	payload, err := json.Marshal(map[string]any{
		"type": "drop",
		"drop": drop,
	})
	if err != nil {
		log.WithError(err).Error("drops: marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Буфер забит - клиент отстал, закрываем соединение.
			// Удаление из clients сделает readPump
			_ = client.conn.Close()
		}
	}
}

func (h *Hub) remove(client *dropClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// readPump читает входящие только ради детекта закрытия соединения
func (h *Hub) readPump(client *dropClient) {
	defer func() {
		h.remove(client)
		_ = client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(client *dropClient) {
	for payload := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
