// internal/stream/hub.go
package stream

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"geometric-td/internal/config"
	"geometric-td/internal/logging"
)

// ErrQueueFull — тик-цикл не успевает разбирать команды.
var ErrQueueFull = errors.New("command queue full")

// Command — запрос клиента. Симуляция разбирает их только в своём тике.
type Command struct {
	Type  string `json:"type"` // place, upgrade, sell, start_wave, pause, speed, reset
	Tower string `json:"tower,omitempty"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	ID    uint64 `json:"id,omitempty"`
	Seq   uint64 `json:"seq,omitempty"`

	from *subscriber
}

// Reply — ответ на команду, уходит только отправителю.
type Reply struct {
	Type    string      `json:"type"` // всегда "reply"
	Command string      `json:"command"`
	Seq     uint64      `json:"seq,omitempty"`
	OK      bool        `json:"ok"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// StateMessage — широковещательный снимок.
type StateMessage struct {
	Type  string      `json:"type"` // всегда "state"
	Tick  uint64      `json:"tick"`
	State interface{} `json:"state"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub держит подключения наблюдателей, рассылает снимки и собирает команды.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}

	upgrader     websocket.Upgrader
	commands     chan Command
	writeTimeout time.Duration
	log          *zap.Logger
}

func NewHub(cfg config.ServerConfig, log *zap.Logger) *Hub {
	queue := cfg.CommandQueue
	if queue <= 0 {
		queue = 1
	}
	return &Hub{
		subs: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		commands:     make(chan Command, queue),
		writeTimeout: cfg.WriteTimeout,
		log:          logging.OrNop(log),
	}
}

// Commands — очередь команд для тик-цикла.
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// Count — число подключённых клиентов.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// ServeHTTP upgrades the connection and reads commands until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	count := len(h.subs)
	h.mu.Unlock()
	h.log.Info("client connected", zap.String("remote", r.RemoteAddr), zap.Int("clients", count))

	defer h.drop(sub)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			h.log.Debug("discarding malformed message", zap.String("remote", r.RemoteAddr), zap.Error(err))
			continue
		}
		cmd.from = sub
		select {
		case h.commands <- cmd:
		default:
			h.Reply(cmd, Reply{OK: false, Error: ErrQueueFull.Error()})
		}
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	count := len(h.subs)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
		h.log.Info("client disconnected", zap.Int("clients", count))
	}
}

// Broadcast marshals the message once and writes it to every client.
// Clients that fail the write are dropped.
func (h *Hub) Broadcast(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(data, h.writeTimeout); err != nil {
			h.log.Debug("broadcast write failed", zap.Error(err))
			h.drop(sub)
		}
	}
	return nil
}

// Reply отправляет ответ автору команды, если он ещё подключён.
func (h *Hub) Reply(cmd Command, reply Reply) {
	if cmd.from == nil {
		return
	}
	reply.Type = "reply"
	reply.Command = cmd.Type
	reply.Seq = cmd.Seq
	data, err := json.Marshal(reply)
	if err != nil {
		h.log.Error("marshal reply", zap.Error(err))
		return
	}
	if err := cmd.from.write(data, h.writeTimeout); err != nil {
		h.drop(cmd.from)
	}
}

// Close отключает всех клиентов.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()
	for sub := range subs {
		sub.mu.Lock()
		sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		sub.mu.Unlock()
		sub.conn.Close()
	}
}
