package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	repo "github.com/oksasatya/complaint-desk/internal/domain/repository"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type ReportService struct {
	Reports  repo.ReportRepository
	Uploader Uploader
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewReportService(reports repo.ReportRepository, uploader Uploader, logger *logrus.Logger) *ReportService {
	return &ReportService{Reports: reports, Uploader: uploader, Logger: logger, now: time.Now}
}

// categoryTotals keeps the per-status split used by the CSV export.
type categoryTotals struct {
	category string
	pending  int64
	resolved int64
}

// Summary aggregates one grouped snapshot, so the totals always agree:
// total == pending + resolved == sum of category counts.
func (s *ReportService) Summary(ctx context.Context) (*entity.Report, error) {
	rows, err := s.Reports.CountByCategoryAndStatus(ctx)
	if err != nil {
		return nil, err
	}
	report, _ := summarize(rows)
	return report, nil
}

// Export renders the current summary as CSV and uploads it.
func (s *ReportService) Export(ctx context.Context) (string, error) {
	if s.Uploader == nil {
		return "", fmt.Errorf("%w: report export is not configured", apperror.ErrUnavailable)
	}
	rows, err := s.Reports.CountByCategoryAndStatus(ctx)
	if err != nil {
		return "", err
	}
	report, cats := summarize(rows)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"category", "pending", "resolved", "total"})
	for _, c := range cats {
		_ = w.Write([]string{c.category, itoa(c.pending), itoa(c.resolved), itoa(c.pending + c.resolved)})
	}
	_ = w.Write([]string{"ALL", itoa(report.Pending), itoa(report.Resolved), itoa(report.Total)})
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	now := s.now().UTC()
	objectPath := fmt.Sprintf("reports/%s-%s.csv", now.Format("20060102T150405Z"), uuid.NewString())
	url, err := s.Uploader.Upload(ctx, objectPath, "text/csv", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: upload report: %v", apperror.ErrUnavailable, err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"object": objectPath, "total": report.Total}).Info("report exported")
	}
	return url, nil
}

func summarize(rows []entity.CategoryStatusCount) (*entity.Report, []categoryTotals) {
	byCat := make(map[string]*categoryTotals)
	report := &entity.Report{ByCategory: []entity.CategoryCount{}}
	for _, r := range rows {
		ct, ok := byCat[r.Category]
		if !ok {
			ct = &categoryTotals{category: r.Category}
			byCat[r.Category] = ct
		}
		switch r.Status {
		case entity.StatusPending:
			ct.pending += r.Count
			report.Pending += r.Count
		case entity.StatusResolved:
			ct.resolved += r.Count
			report.Resolved += r.Count
		}
	}
	cats := make([]categoryTotals, 0, len(byCat))
	for _, ct := range byCat {
		cats = append(cats, *ct)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].category < cats[j].category })
	for _, ct := range cats {
		report.ByCategory = append(report.ByCategory, entity.CategoryCount{Category: ct.category, Count: ct.pending + ct.resolved})
	}
	report.Total = report.Pending + report.Resolved
	return report, cats
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
