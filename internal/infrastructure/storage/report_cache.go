package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// cachedReport is the single-row-per-user local copy of the active report.
type cachedReport struct {
	UserID                 string                 `gorm:"primaryKey"`
	domain.EmergencyReport `gorm:"embedded;embeddedPrefix:report_"`
}

func (cachedReport) TableName() string { return "active_reports" }

// ReportCacheImpl implements domain.ReportCache on a local sqlite database
// so the UI can show the last known active report on cold start, before the
// first fetch round-trip completes.
type ReportCacheImpl struct {
	db *gorm.DB
}

// NewReportCache opens (and migrates) the local cache database at path.
// Use ":memory:" for tests.
func NewReportCache(path string) (domain.ReportCache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open report cache: %w", err)
	}
	if err := db.AutoMigrate(&cachedReport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate report cache: %w", err)
	}
	return &ReportCacheImpl{db: db}, nil
}

// SaveActive implements domain.ReportCache with upsert semantics.
func (c *ReportCacheImpl) SaveActive(ctx context.Context, report *domain.EmergencyReport) error {
	if report == nil {
		return errors.New("cannot cache a nil report")
	}
	row := cachedReport{UserID: report.UserID, EmergencyReport: *report}
	if err := c.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to cache active report: %w", err)
	}
	return nil
}

// LoadActive implements domain.ReportCache. A missing row is not an error;
// it returns (nil, nil).
func (c *ReportCacheImpl) LoadActive(ctx context.Context, userID string) (*domain.EmergencyReport, error) {
	var row cachedReport
	err := c.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cached report: %w", err)
	}
	report := row.EmergencyReport
	return &report, nil
}

// Clear implements domain.ReportCache.
func (c *ReportCacheImpl) Clear(ctx context.Context, userID string) error {
	if err := c.db.WithContext(ctx).Delete(&cachedReport{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cached report: %w", err)
	}
	return nil
}
