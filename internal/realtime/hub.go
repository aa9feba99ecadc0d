// Package realtime cung cấp pub/sub theo channel cho websocket gateway.
//
// Hai loại trạng thái sống trong hub, cả hai đều ephemeral (mất khi restart):
//   - subscriber: các kết nối đang nghe một channel
//   - presence: danh sách viewer đang có mặt trên một channel
//
// Channel theo quy ước "project:<projectId>" cho thay đổi dữ liệu + presence,
// "project:<projectId>:media" cho media alert từ hiện trường.
package realtime

import (
	"strings"
	"sync"
	"time"
)

// Các loại message trên wire.
const (
	TypeSubscribe       = "subscribe"
	TypeUnsubscribe     = "unsubscribe"
	TypeBroadcast       = "broadcast"
	TypePresenceTrack   = "presence_track"
	TypePresenceUntrack = "presence_untrack"
	TypePresenceSync    = "presence_sync"
)

// Message là đơn vị truyền trên channel (server → client và client → server).
type Message struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel,omitempty"`
	Event   string      `json:"event,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// PresenceEntry là một viewer đang có mặt trên channel.
type PresenceEntry struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	JoinedAt int64  `json:"joinedAt"`
}

// Subscriber là một kết nối đang nghe. Send có buffer — subscriber đọc chậm
// bị bỏ qua message thay vì chặn cả hub.
type Subscriber struct {
	Send chan Message
}

// Hub quản lý subscriber và presence theo channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]bool
	presence    map[string]map[string]PresenceEntry
}

// NewHub tạo hub rỗng.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscriber]bool),
		presence:    make(map[string]map[string]PresenceEntry),
	}
}

var (
	defaultHub  *Hub
	defaultOnce sync.Once
)

// GetHub trả về hub toàn cục (singleton).
func GetHub() *Hub {
	defaultOnce.Do(func() {
		defaultHub = NewHub()
	})
	return defaultHub
}

// Subscribe đăng ký nghe một channel. Caller phải gọi Unsubscribe khi xong.
func (h *Hub) Subscribe(channel string) *Subscriber {
	sub := &Subscriber{Send: make(chan Message, 64)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[*Subscriber]bool)
	}
	h.subscribers[channel][sub] = true
	return sub
}

// Unsubscribe gỡ subscriber khỏi channel và đóng kênh Send.
func (h *Hub) Unsubscribe(channel string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscribers[channel]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, channel)
	}
	close(sub.Send)
}

// Broadcast gửi một event tới mọi subscriber của channel.
// Subscriber đầy buffer bị bỏ qua (không chặn).
func (h *Hub) Broadcast(channel string, event string, payload interface{}) {
	msg := Message{Type: TypeBroadcast, Channel: channel, Event: event, Payload: payload}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[channel] {
		select {
		case sub.Send <- msg:
		default:
		}
	}
}

// PresenceTrack ghi nhận viewer có mặt trên channel và đẩy presence_sync.
// Key presence là email đã hạ về chữ thường — email là danh tính, không phân
// biệt hoa thường ở mọi nơi khác; Email trong entry giữ nguyên để hiển thị.
func (h *Hub) PresenceTrack(channel string, email string, name string) {
	if email == "" {
		return
	}
	key := strings.ToLower(email)
	h.mu.Lock()
	if h.presence[channel] == nil {
		h.presence[channel] = make(map[string]PresenceEntry)
	}
	if _, ok := h.presence[channel][key]; !ok {
		h.presence[channel][key] = PresenceEntry{
			Email:    email,
			Name:     name,
			JoinedAt: time.Now().UnixMilli(),
		}
	}
	h.mu.Unlock()
	h.broadcastPresence(channel)
}

// PresenceUntrack gỡ viewer khỏi presence của channel và đẩy presence_sync.
func (h *Hub) PresenceUntrack(channel string, email string) {
	key := strings.ToLower(email)
	h.mu.Lock()
	entries, ok := h.presence[channel]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := entries[key]; !ok {
		h.mu.Unlock()
		return
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(h.presence, channel)
	}
	h.mu.Unlock()
	h.broadcastPresence(channel)
}

// PresenceSnapshot trả về danh sách viewer đang có mặt trên channel.
func (h *Hub) PresenceSnapshot(channel string) []PresenceEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entries := make([]PresenceEntry, 0, len(h.presence[channel]))
	for _, e := range h.presence[channel] {
		entries = append(entries, e)
	}
	return entries
}

// PresenceContains kiểm tra email có trong presence của channel không,
// không phân biệt hoa thường.
func (h *Hub) PresenceContains(channel string, email string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.presence[channel][strings.ToLower(email)]
	return ok
}

func (h *Hub) broadcastPresence(channel string) {
	snapshot := h.PresenceSnapshot(channel)
	msg := Message{Type: TypePresenceSync, Channel: channel, Payload: snapshot}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[channel] {
		select {
		case sub.Send <- msg:
		default:
		}
	}
}
