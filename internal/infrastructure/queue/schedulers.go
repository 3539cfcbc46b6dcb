package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"photobook-backend/internal/config"
	"photobook-backend/internal/domains/category/job"
	"photobook-backend/internal/shared"
	"photobook-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterMaintenanceJobs wires the recurring catalog jobs.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerIntegrityScanJob()
}

// The integrity scan walks the catalog for hierarchy damage (orphaned
// subcategories, products pointing at deleted categories). Read-only;
// repair is an operator decision.
func (s *Scheduler) registerIntegrityScanJob() error {
	payload, err := json.Marshal(job.IntegrityScanPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCatalogIntegrityScan, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.IntegrityScanSpec,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register IntegrityScan job", err)
		return err
	}

	logger.Info("Registered IntegrityScan job", map[string]interface{}{
		"spec": s.jobConfig.IntegrityScanSpec,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
