package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOnlineNow(t *testing.T) {
	now := time.Now().UnixMilli()
	timeout := int64(60_000)

	cases := []struct {
		name string
		m    CrewMembership
		want bool
	}{
		{
			name: "heartbeat vừa gửi",
			m:    CrewMembership{IsOnline: true, LastSeenAt: now - 1_000},
			want: true,
		},
		{
			name: "đúng ngưỡng timeout vẫn online",
			m:    CrewMembership{IsOnline: true, LastSeenAt: now - timeout},
			want: true,
		},
		{
			name: "quá ngưỡng timeout",
			m:    CrewMembership{IsOnline: true, LastSeenAt: now - timeout - 1},
			want: false,
		},
		{
			name: "cờ isOnline tắt dù heartbeat mới",
			m:    CrewMembership{IsOnline: false, LastSeenAt: now},
			want: false,
		},
		{
			name: "chưa từng có heartbeat",
			m:    CrewMembership{IsOnline: true, LastSeenAt: 0},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.m.IsOnlineNow(now, timeout))
		})
	}
}
