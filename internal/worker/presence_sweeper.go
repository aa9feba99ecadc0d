package worker

import (
	"context"
	"time"

	crewsvc "onset_studio/internal/api/crew/service"
	"onset_studio/internal/logger"
)

// PresenceSweeperWorker worker quét các crew membership bị stale
// Client mobile có thể biến mất không kịp gửi leave (hết pin, mất sóng) —
// worker này tắt cờ isOnline của các membership quá lâu không có heartbeat
type PresenceSweeperWorker struct {
	crewService    *crewsvc.CrewMembershipService
	interval       time.Duration // Khoảng thời gian giữa các lần quét
	timeoutSeconds int64         // Quá hạn heartbeat thì coi là offline (giây)
}

// NewPresenceSweeperWorker tạo mới PresenceSweeperWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 10 giây)
//   - timeoutSeconds: Timeout heartbeat (mặc định: 60 giây)
//
// Trả về:
//   - *PresenceSweeperWorker: Instance mới của PresenceSweeperWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewPresenceSweeperWorker(interval time.Duration, timeoutSeconds int64) (*PresenceSweeperWorker, error) {
	crewService, err := crewsvc.NewCrewMembershipService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if timeoutSeconds < 10 {
		timeoutSeconds = 60
	}

	return &PresenceSweeperWorker{
		crewService:    crewService,
		interval:       interval,
		timeoutSeconds: timeoutSeconds,
	}, nil
}

// Start bắt đầu background worker quét presence stale
// Worker chạy định kỳ theo interval cho đến khi ctx bị hủy
func (w *PresenceSweeperWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":       w.interval.String(),
		"timeoutSeconds": w.timeoutSeconds,
	}).Info("🔄 [PRESENCE_SWEEP] Starting Presence Sweeper Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [PRESENCE_SWEEP] Presence Sweeper Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔄 [PRESENCE_SWEEP] Panic khi quét presence, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				swept, err := w.crewService.MarkStaleOffline(ctx, w.timeoutSeconds*1000)
				if err != nil {
					log.WithError(err).Error("🔄 [PRESENCE_SWEEP] Failed to mark stale memberships offline")
					return
				}

				if swept > 0 {
					log.WithFields(map[string]interface{}{
						"sweptCount":     swept,
						"timeoutSeconds": w.timeoutSeconds,
					}).Info("🔄 [PRESENCE_SWEEP] Marked stale memberships offline")
				}
				// Nếu sweptCount = 0, không log (giảm log noise)
			}()
		}
	}
}
