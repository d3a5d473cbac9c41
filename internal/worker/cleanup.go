// Package worker chứa các background worker chạy định kỳ.
package worker

import (
	"context"

	"github.com/robfig/cron/v3"

	videosvc "github.com/Aethezz/bsc-web-interface/internal/api/videos/service"
	"github.com/Aethezz/bsc-web-interface/internal/logger"
)

// CleanupWorker worker tự động dọn các bản ghi video trùng link theo lịch cron.
// Unique index đã chặn trùng lặp mới, worker này là lớp sửa chữa cho dữ liệu
// cũ hoặc dữ liệu được ghi ngoài API.
type CleanupWorker struct {
	videoService *videosvc.VideoService
	schedule     string
	cron         *cron.Cron
}

// NewCleanupWorker tạo mới CleanupWorker.
// Tham số:
//   - videoService: Service videos dùng để dọn dẹp
//   - schedule: Biểu thức cron (ví dụ "0 3 * * *"), rỗng nghĩa là tắt worker
//
// Trả về:
//   - *CleanupWorker: Instance mới của CleanupWorker
func NewCleanupWorker(videoService *videosvc.VideoService, schedule string) *CleanupWorker {
	return &CleanupWorker{
		videoService: videoService,
		schedule:     schedule,
		// SkipIfStillRunning để lần chạy sau không chồng lên lần chạy trước
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start đăng ký job và chạy scheduler cho đến khi context bị hủy.
// Schedule rỗng thì worker không làm gì.
func (w *CleanupWorker) Start(ctx context.Context) error {
	log := logger.GetAppLogger()

	if w.schedule == "" {
		log.Info("🧹 [CLEANUP] Cleanup worker tắt (không có CLEANUP_SCHEDULE)")
		return nil
	}

	_, err := w.cron.AddFunc(w.schedule, func() {
		w.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"schedule": w.schedule,
	}).Info("🧹 [CLEANUP] Cleanup worker bắt đầu chạy theo lịch")

	w.cron.Start()

	<-ctx.Done()
	w.cron.Stop()
	log.Info("🧹 [CLEANUP] Cleanup worker dừng")
	return nil
}

// runOnce chạy một lần dọn dẹp, panic được cô lập để không dừng scheduler
func (w *CleanupWorker) runOnce(ctx context.Context) {
	log := logger.GetAppLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🧹 [CLEANUP] Panic khi dọn dẹp, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()

	result, err := w.videoService.CleanupDuplicates(ctx)
	if err != nil {
		log.WithError(err).Error("🧹 [CLEANUP] Dọn dẹp bản ghi trùng thất bại")
		return
	}

	if result.RemovedCount > 0 {
		log.WithFields(map[string]interface{}{
			"removed":   result.RemovedCount,
			"remaining": result.RemainingCount,
		}).Info("🧹 [CLEANUP] Đã dọn các bản ghi trùng")
	}
	// Không log khi removed = 0 để giảm log noise
}
