package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

type reportStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewReportStore creates a ReportStore backed by BadgerHold.
func NewReportStore(db *badgerhold.Store, logger *common.Logger) interfaces.ReportStore {
	return &reportStore{db: db, logger: logger}
}

func (s *reportStore) Save(_ context.Context, report *models.Report) error {
	if report.ReportID == "" {
		report.ReportID = uuid.NewString()
	}
	if err := s.db.Upsert(report.ReportID, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.Debug().Str("report_id", report.ReportID).Str("user_id", report.UserID).Msg("Report saved")
	return nil
}

func (s *reportStore) Get(_ context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	if err := s.db.Get(reportID, &report); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("report '%s' not found: %w", reportID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report '%s': %w", reportID, err)
	}
	return &report, nil
}

func (s *reportStore) List(_ context.Context, userID string) ([]*models.Report, error) {
	var reports []*models.Report
	if err := s.db.Find(&reports, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list reports for user '%s': %w", userID, err)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})
	return reports, nil
}

func (s *reportStore) Delete(_ context.Context, reportID string) error {
	err := s.db.Delete(reportID, models.Report{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("report '%s' not found: %w", reportID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete report '%s': %w", reportID, err)
	}
	return nil
}

var _ interfaces.ReportStore = (*reportStore)(nil)
