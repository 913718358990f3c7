package cron

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/signhey/signhey-server/internal/service"
)

type Service struct {
	quotaService *service.QuotaService
	tempDir      string
	expireHours  int
	stopChan     chan struct{}
}

func NewService(quotaService *service.QuotaService, tempDir string, expireHours int) *Service {
	return &Service{
		quotaService: quotaService,
		tempDir:      tempDir,
		expireHours:  expireHours,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the background schedules.
func (s *Service) Start() {
	go s.runMonthlyQuotaRollover()
	go s.runCleanup()
	log.Println("Cron service started (monthly quota rollover + temp cleanup)")
}

// Stop terminates all schedules.
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runMonthlyQuotaRollover fires at the first UTC midnight of each month.
func (s *Service) runMonthlyQuotaRollover() {
	now := time.Now().UTC()
	timer := time.NewTimer(nextMonthStart(now).Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.rolloverQuotas()
			now := time.Now().UTC()
			timer.Reset(nextMonthStart(now).Sub(now))
		}
	}
}

func nextMonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// rolloverQuotas zeroes this month's signature usage for paying accounts.
// Free accounts have no live allowance so there is nothing to roll over.
func (s *Service) rolloverQuotas() {
	log.Println("Starting monthly quota rollover...")
	if err := s.quotaService.ResetAllQuotas(); err != nil {
		log.Printf("Failed to roll over monthly quotas: %v", err)
		return
	}
	log.Println("Monthly quota rollover completed")
}

// runCleanup removes stale upload scratch dirs once per hour.
func (s *Service) runCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupUploadDirs()
		}
	}
}

func (s *Service) cleanupUploadDirs() {
	if s.tempDir == "" {
		return
	}

	expireHours := s.expireHours
	if expireHours <= 0 {
		expireHours = 1
	}
	expireDuration := time.Duration(expireHours) * time.Hour

	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		log.Printf("Cleanup uploads: failed to read dir %s: %v", s.tempDir, err)
		return
	}

	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > expireDuration {
			dirPath := filepath.Join(s.tempDir, entry.Name())
			if err := os.RemoveAll(dirPath); err != nil {
				log.Printf("Cleanup uploads: failed to remove %s: %v", dirPath, err)
			} else {
				cleaned++
			}
		}
	}
	if cleaned > 0 {
		log.Printf("Cleanup summary: uploads=%d", cleaned)
	}
}

// RunNow triggers the rollover immediately (manual ops escape hatch).
func (s *Service) RunNow() error {
	log.Println("Manual quota rollover triggered...")
	return s.quotaService.ResetAllQuotas()
}
