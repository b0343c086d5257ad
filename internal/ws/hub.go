package ws

import (
	"encoding/json"
	"sync"

	"github.com/cityvoice/cityvoice-backend/internal/logger"
)

// Hub раздаёт живую ленту событий всем подключённым клиентам.
// Лента общая: о новых обращениях, смене статусов и комментариях
// узнают все, кто держит соединение открытым.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// Envelope — формат сообщения ленты: поле "type" содержит имя события,
// "data" — полезную нагрузку.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.fanOut(payload)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Shutdown останавливает цикл и закрывает все соединения.
func (h *Hub) Shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Broadcast рассылает событие всем подключённым клиентам. Ошибка
// сериализации только логируется: лента — вторичный канал, основной
// ответ клиент уже получил по HTTP.
func (h *Hub) Broadcast(event string, data interface{}) {
	raw, err := json.Marshal(Envelope{Type: event, Data: data})
	if err != nil {
		logger.Log.WithError(err).Error("ws: не удалось сериализовать событие")
		return
	}

	select {
	case h.broadcast <- raw:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Клиент не успевает читать, отключаем его.
			go client.Close()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.conn.Close()
		delete(h.clients, client)
	}
}
