package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"onset_studio/internal/api/middleware"
	"onset_studio/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile app kết nối từ origin bất kỳ, xác thực bằng token
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server là websocket gateway chạy cạnh HTTP API (listener riêng).
type Server struct {
	hub  *Hub
	addr string
}

// NewServer tạo Server gắn với hub toàn cục.
func NewServer(addr string) *Server {
	return &Server{hub: GetHub(), addr: addr}
}

// Start chạy listener websocket. Blocking — caller chạy trong goroutine.
// ctx hủy → shutdown với grace period 5 giây.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.GetAppLogger().WithField("address", s.addr).Info("🔌 [REALTIME] Websocket gateway đang lắng nghe")
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// conn gom trạng thái của một kết nối: các channel đã subscribe và
// presence đã track (để dọn khi kết nối đóng).
type conn struct {
	ws       *websocket.Conn
	hub      *Hub
	email    string
	name     string
	subs     map[string]*Subscriber
	tracked  map[string]bool
	outbound chan Message
	done     chan struct{}
}

// handleWS xác thực token rồi chạy read/write pump cho kết nối.
// Token truyền qua query param vì websocket handshake từ mobile không
// đặt được header Authorization.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	email, name, _, err := middleware.ParseViewerToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("❌ [REALTIME] Upgrade websocket thất bại")
		return
	}

	c := &conn{
		ws:       ws,
		hub:      s.hub,
		email:    email,
		name:     name,
		subs:     make(map[string]*Subscriber),
		tracked:  make(map[string]bool),
		outbound: make(chan Message, 64),
		done:     make(chan struct{}),
	}

	go c.writePump()
	c.readPump()
}

// readPump đọc message từ client cho đến khi kết nối đóng, sau đó dọn
// toàn bộ subscription và presence của kết nối.
func (c *conn) readPump() {
	defer c.cleanup()

	c.ws.SetReadLimit(64 * 1024)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Channel == "" {
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *conn) handleMessage(msg Message) {
	switch msg.Type {
	case TypeSubscribe:
		if _, ok := c.subs[msg.Channel]; ok {
			return
		}
		sub := c.hub.Subscribe(msg.Channel)
		c.subs[msg.Channel] = sub
		go c.forward(sub)

	case TypeUnsubscribe:
		if sub, ok := c.subs[msg.Channel]; ok {
			delete(c.subs, msg.Channel)
			c.hub.Unsubscribe(msg.Channel, sub)
		}

	case TypeBroadcast:
		c.hub.Broadcast(msg.Channel, msg.Event, msg.Payload)

	case TypePresenceTrack:
		c.tracked[msg.Channel] = true
		c.hub.PresenceTrack(msg.Channel, c.email, c.name)

	case TypePresenceUntrack:
		delete(c.tracked, msg.Channel)
		c.hub.PresenceUntrack(msg.Channel, c.email)
	}
}

// forward đẩy message từ một subscriber vào outbound chung của kết nối.
// Thoát khi subscriber bị unsubscribe (kênh Send đóng) hoặc kết nối đóng.
func (c *conn) forward(sub *Subscriber) {
	for msg := range sub.Send {
		select {
		case c.outbound <- msg:
		case <-c.done:
			return
		default:
		}
	}
}

// writePump ghi outbound xuống websocket, kèm ping định kỳ.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.outbound:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// cleanup gỡ mọi subscription và presence của kết nối.
// Presence mất ngay khi socket đứt — đúng tính chất ephemeral; trạng thái
// bền trong crew_memberships do heartbeat + worker quét xử lý riêng.
func (c *conn) cleanup() {
	for channel := range c.tracked {
		c.hub.PresenceUntrack(channel, c.email)
	}
	for channel, sub := range c.subs {
		c.hub.Unsubscribe(channel, sub)
	}
	close(c.done)
	_ = c.ws.Close()

	logger.GetAppLogger().WithFields(logrus.Fields{
		"viewer": c.email,
	}).Debug("🔌 [REALTIME] Kết nối websocket đã đóng")
}
