package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/pricing"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *mockRepos) {
	repo, m := newMockRepository()
	svc := NewExportService(repo, zap.NewNop())
	svc.(*exportService).now = func() time.Time {
		return time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	}
	return svc, m
}

// ── ExportRateSheet 测试 ──

func TestExportService_ExportRateSheet(t *testing.T) {
	svc, m := setupTestExportService()
	l := seedListing(m, "Seaside Cottage", 1000, 350, 3)
	standard := seedSeason(m, pricing.SeasonStandard, 5, 2, model.DateRange{StartDate: "2025-01-01", EndDate: "2025-12-31"})
	holiday := seedSeason(m, pricing.SeasonHolidayPeak, 1, 7,
		model.DateRange{StartDate: "2025-12-15", EndDate: "2026-01-05"},
		model.DateRange{StartDate: "2026-04-01", EndDate: "2026-04-10"},
	)
	seedPlan(m, l.ID, standard.ID, 1200, "fixed", -100)
	seedPlan(m, l.ID, holiday.ID, 1500, "percentage", 10)

	buf, filename, err := svc.ExportRateSheet(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, "rates_Seaside_Cottage.xlsx", filename)

	f, err := excelize.OpenReader(buf, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	defer f.Close()

	get := func(ref string) string {
		v, err := f.GetCellValue("Rates", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Seaside Cottage - Rate sheet", get("A1"))
	assert.Equal(t, "Season", get("A2"))
	assert.Equal(t, "Final nightly price", get("H2"))

	// 按优先级升序
	assert.Equal(t, pricing.SeasonHolidayPeak, get("A3"))
	assert.Equal(t, "2025-12-15 ~ 2026-01-05; 2026-04-01 ~ 2026-04-10", get("B3"))
	assert.Equal(t, "1", get("C3"))
	assert.Equal(t, "percentage", get("F3"))
	assert.Equal(t, "1650", get("H3"))

	assert.Equal(t, pricing.SeasonStandard, get("A4"))
	assert.Equal(t, "1100", get("H4"))

	assert.Equal(t, "Default", get("A5"))
	assert.Equal(t, "3", get("D5"))
	assert.Equal(t, "1000", get("H5"))

	assert.Equal(t, "Cleaning fee", get("A6"))
	assert.Equal(t, "350", get("H6"))
}

func TestExportService_ExportRateSheet_NoPlans(t *testing.T) {
	svc, m := setupTestExportService()
	l := seedListing(m, "  ", 800, 0, 1)

	buf, filename, err := svc.ExportRateSheet(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, "rates_listing.xlsx", filename)

	f, err := excelize.OpenReader(buf, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	defer f.Close()

	v, _ := f.GetCellValue("Rates", "A3")
	assert.Equal(t, "Default", v)
}

func TestExportService_ExportRateSheet_ListingNotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportRateSheet(context.Background(), "missing")
	if !errors.Is(err, ErrListingNotFound) {
		t.Errorf("期望 ErrListingNotFound，实际: %v", err)
	}
}

// ── ExportSeasonCalendar 测试 ──

func TestExportService_ExportSeasonCalendar(t *testing.T) {
	svc, m := setupTestExportService()
	holiday := seedSeason(m, pricing.SeasonHolidayPeak, 1, 7,
		model.DateRange{StartDate: "2025-12-15", EndDate: "2026-01-05"},
		model.DateRange{StartDate: "2026-04-01", EndDate: "2026-04-10"},
	)
	off := seedSeason(m, "Winter Special", 3, 1, model.DateRange{StartDate: "2025-06-01", EndDate: "2025-08-31"})
	off.Active = false
	_ = m.season.Update(context.Background(), off)

	buf, filename, err := svc.ExportSeasonCalendar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seasons.ics", filename)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Holiday Peak")
	assert.Contains(t, out, "UID:"+holiday.ID+"-0@seascapes-admin")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20251215")
	// 结束日为开区间
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260106")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260401")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260411")
	assert.NotContains(t, out, "Winter Special")
}

func TestExportService_ExportSeasonCalendar_SkipsBadDates(t *testing.T) {
	svc, m := setupTestExportService()
	seedSeason(m, "Broken", 2, 1, model.DateRange{StartDate: "2025/12/01", EndDate: "2025-12-31"})
	seedSeason(m, pricing.SeasonStandard, 5, 2, model.DateRange{StartDate: "2025-01-01", EndDate: "2025-01-31"})

	buf, _, err := svc.ExportSeasonCalendar(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.NotContains(t, out, "SUMMARY:Broken")
}
