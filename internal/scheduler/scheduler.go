package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
)

// Scheduler runs the periodic balance snapshot task.
type Scheduler struct {
	cron     *cron.Cron
	snapshot *service.SnapshotService
}

// New creates a Scheduler around the snapshot service.
func New(snapshot *service.SnapshotService) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		snapshot: snapshot,
	}
}

// Register adds the snapshot task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Snapshot scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Snapshot scheduler stopped")
}

func (s *Scheduler) snapshotTask() {
	count, err := s.snapshot.Run(context.Background(), time.Now().UTC())
	if err != nil {
		log.Printf("Balance snapshot failed: %v", err)
		return
	}
	log.Printf("Balance snapshot recorded for %d funds", count)
}
