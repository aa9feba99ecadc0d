package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvMessage(t *testing.T, sub *Subscriber) Message {
	t.Helper()
	select {
	case msg := <-sub.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("không nhận được message")
		return Message{}
	}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	sub1 := hub.Subscribe("project:abc")
	sub2 := hub.Subscribe("project:abc")
	other := hub.Subscribe("project:xyz")

	hub.Broadcast("project:abc", "row_change", map[string]interface{}{"collection": "projects"})

	for _, sub := range []*Subscriber{sub1, sub2} {
		msg := recvMessage(t, sub)
		assert.Equal(t, TypeBroadcast, msg.Type)
		assert.Equal(t, "row_change", msg.Event)
	}

	select {
	case <-other.Send:
		t.Fatal("subscriber channel khác không được nhận message")
	default:
	}
}

func TestUnsubscribeClosesSendChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("project:abc")
	hub.Unsubscribe("project:abc", sub)

	_, open := <-sub.Send
	assert.False(t, open)

	// Unsubscribe lần hai không panic
	hub.Unsubscribe("project:abc", sub)
}

func TestPresenceTrackAndSnapshot(t *testing.T) {
	hub := NewHub()
	hub.PresenceTrack("project:abc", "dit@set.film", "DIT")
	hub.PresenceTrack("project:abc", "director@set.film", "Director")
	hub.PresenceTrack("project:abc", "dit@set.film", "DIT") // idempotent

	snapshot := hub.PresenceSnapshot("project:abc")
	assert.Len(t, snapshot, 2)
	assert.True(t, hub.PresenceContains("project:abc", "dit@set.film"))
	assert.False(t, hub.PresenceContains("project:abc", "gaffer@set.film"))
}

func TestPresenceEmailCaseInsensitive(t *testing.T) {
	hub := NewHub()
	hub.PresenceTrack("project:abc", "DIT@Set.Film", "DIT")

	// Cùng danh tính dù khác hoa thường — track lần hai không nhân đôi
	hub.PresenceTrack("project:abc", "dit@set.film", "DIT")
	assert.Len(t, hub.PresenceSnapshot("project:abc"), 1)
	assert.True(t, hub.PresenceContains("project:abc", "dit@set.film"))
	assert.True(t, hub.PresenceContains("project:abc", "DIT@SET.FILM"))

	// Untrack với hoa thường khác vẫn gỡ đúng viewer
	hub.PresenceUntrack("project:abc", "Dit@Set.Film")
	assert.Empty(t, hub.PresenceSnapshot("project:abc"))
}

func TestPresenceUntrackRemovesViewer(t *testing.T) {
	hub := NewHub()
	hub.PresenceTrack("project:abc", "dit@set.film", "DIT")
	hub.PresenceUntrack("project:abc", "dit@set.film")

	assert.Empty(t, hub.PresenceSnapshot("project:abc"))
	// Untrack viewer không tồn tại không panic
	hub.PresenceUntrack("project:abc", "dit@set.film")
}

func TestPresenceChangePushesSyncToSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("project:abc")

	hub.PresenceTrack("project:abc", "dit@set.film", "DIT")

	msg := recvMessage(t, sub)
	require.Equal(t, TypePresenceSync, msg.Type)
	entries, ok := msg.Payload.([]PresenceEntry)
	require.True(t, ok)
	assert.Len(t, entries, 1)
	assert.Equal(t, "dit@set.film", entries[0].Email)
}

func TestBroadcastSkipsFullSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("project:abc")

	// Lấp đầy buffer; các broadcast thừa bị bỏ qua thay vì chặn
	for i := 0; i < 100; i++ {
		hub.Broadcast("project:abc", "row_change", i)
	}

	assert.Len(t, sub.Send, cap(sub.Send))
}
