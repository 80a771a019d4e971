package services

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Backuper copies the persisted document into a backup directory
type Backuper interface {
	Backup(dir string, keep int) (string, error)
}

// BackupService runs scheduled document backups
type BackupService struct {
	store Backuper
	dir   string
	keep  int
	log   *zap.SugaredLogger
	cron  *cron.Cron
}

// NewBackupService creates a backup service writing into dir and keeping
// the newest keep copies
func NewBackupService(store Backuper, dir string, keep int, log *zap.SugaredLogger) *BackupService {
	return &BackupService{
		store: store,
		dir:   dir,
		keep:  keep,
		log:   log,
		cron:  cron.New(),
	}
}

// Start schedules backups with a standard 5-field cron spec or a
// descriptor such as "@daily"
func (s *BackupService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.log.Infow("⏰ Backup scheduler started", "schedule", schedule, "dir", s.dir, "keep", s.keep)
	return nil
}

// RunOnce takes one backup now
func (s *BackupService) RunOnce() {
	if _, err := s.store.Backup(s.dir, s.keep); err != nil {
		s.log.Errorw("❌ Backup failed", "dir", s.dir, "err", err)
	}
}

// Stop stops the scheduler and waits for a running backup to finish
func (s *BackupService) Stop() {
	<-s.cron.Stop().Done()
}
