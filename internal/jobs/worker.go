package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
)

// Worker drains notification jobs. Delivery here is a log line; the
// transport behind it (mail, push) is not part of this service.
type Worker struct {
	ID   string
	Repo *Repo
	DB   *gorm.DB

	// Tick is the poll interval; zero means 800ms.
	Tick time.Duration
}

type offerRow struct {
	CleaningID uint64 `gorm:"column:cleaning_id"`
	UserID     uint64 `gorm:"column:user_id"`
	Status     string `gorm:"column:status"`
}

func (offerRow) TableName() string { return "offers" }

func (w *Worker) Run(ctx context.Context) {
	tick := w.Tick
	if tick <= 0 {
		tick = 800 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				log.Printf("worker claim error: %v\n", err)
				continue
			}
			if job == nil {
				continue
			}
			w.handle(job)
		}
	}
}

func (w *Worker) handle(job *Job) {
	switch job.Type {
	case TypeOfferNotify:
		w.handleNotify(job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleNotify(job *Job) {
	var p NotifyPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	// Reopened/rejected notifications reference a live offer row; skip
	// delivery when the offer (or its cleaning) is gone by now.
	if p.Event != NotifyCancelled {
		var row offerRow
		err := w.DB.
			Where("cleaning_id=? AND user_id=?", p.CleaningID, p.UserID).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				_ = w.Repo.MarkDone(job.ID)
				return
			}
			w.retry(job, "db read error")
			return
		}
	}

	log.Printf("[NOTIFY] user=%d cleaning=%d event=%s\n", p.UserID, p.CleaningID, p.Event)
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
