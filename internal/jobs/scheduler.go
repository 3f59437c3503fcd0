// Package jobs управляет фоновыми задачами (cron):
// принудительный keep зависших открытий и чистка просроченных сессий.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	caseServ service.CaseService
	authRepo repository.AuthRepository
}

// NewScheduler создаёт планировщик задач.
func NewScheduler(caseServ service.CaseService, authRepo repository.AuthRepository) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		caseServ: caseServ,
		authRepo: authRepo,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Добор зависших открытий: пользователь закрыл рулетку,
	// не выбрав keep/sell - предмет уходит в инвентарь
	s.cron.AddFunc("* * * * *", func() {
		n, err := s.caseServ.ForceKeepStale(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка добора зависших открытий")
			return
		}
		if n > 0 {
			log.WithField("count", n).Info("[CRON] Принудительный keep зависших открытий")
		}
	})

	// Ночная чистка просроченных сессий
	s.cron.AddFunc("0 3 * * *", func() {
		n, err := s.authRepo.DeleteExpiredSessions(ctx, time.Now())
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка чистки сессий")
			return
		}
		if n > 0 {
			log.WithField("count", n).Info("[CRON] Удалены просроченные сессии")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
