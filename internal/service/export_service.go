package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/pricing"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
//   - 房源价格表导出为 Excel (.xlsx)，每个价格方案一行
//   - 启用季节导出为 iCalendar (.ics)，每个日期区间一个全天事件
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	ExportRateSheet(ctx context.Context, listingID string) (*bytes.Buffer, string, error)
	ExportSeasonCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportRateSheet 房源价格表
// ═══════════════════════════════════════════════════════════
//
// 列：季节 | 日期区间 | 优先级 | 最少晚数 | 基础价 | 调整方式 | 调整值 | 每晚最终价
// 末行为默认价格（无季节匹配时使用）

var rateSheetHeaders = []string{"Season", "Date ranges", "Priority", "Minimum stay", "Base price", "Adjustment", "Adjustment value", "Final nightly price"}

func (s *exportService) ExportRateSheet(ctx context.Context, listingID string) (*bytes.Buffer, string, error) {
	listing, err := s.repo.Listing.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrListingNotFound
		}
		s.logger.Error("查询房源失败", zap.String("id", listingID), zap.Error(err))
		return nil, "", err
	}

	plans, err := s.repo.RatePlan.ListByListing(ctx, listingID)
	if err != nil {
		s.logger.Error("列出价格方案失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, "", err
	}
	sortPlansByPriority(plans)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rates"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 36)
	f.SetColWidth(sheetName, "C", "H", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F6F8B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Rate sheet", listing.Title))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range rateSheetHeaders {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell("H", row), headerStyle)

	// 数据行
	row = 3
	for i := range plans {
		p := &plans[i]
		adj := p.RateAdjustment.Data()
		final, err := pricing.CalculateFinalPrice(p.Price, p.Adjustment())
		if err != nil {
			s.logger.Warn("价格方案数据异常", zap.String("id", p.ID), zap.Error(err))
		}

		seasonName, ranges, priority, minStay := "-", "-", "", ""
		if p.Season != nil {
			seasonName = p.Season.Name
			ranges = formatRanges(p.Season.DateRanges)
			priority = fmt.Sprint(p.Season.Priority)
			minStay = fmt.Sprint(p.Season.MinimumStay)
		}

		f.SetCellValue(sheetName, cell("A", row), seasonName)
		f.SetCellValue(sheetName, cell("B", row), ranges)
		f.SetCellValue(sheetName, cell("C", row), priority)
		f.SetCellValue(sheetName, cell("D", row), minStay)
		f.SetCellValue(sheetName, cell("E", row), p.Price.InexactFloat64())
		f.SetCellValue(sheetName, cell("F", row), adj.Type)
		f.SetCellValue(sheetName, cell("G", row), adj.Value.InexactFloat64())
		f.SetCellValue(sheetName, cell("H", row), final.InexactFloat64())
		row++
	}

	// 默认价格
	f.SetCellValue(sheetName, cell("A", row), "Default")
	f.SetCellValue(sheetName, cell("B", row), "Outside all seasons")
	f.SetCellValue(sheetName, cell("D", row), listing.MinStay)
	f.SetCellValue(sheetName, cell("E", row), listing.DefaultPrice.InexactFloat64())
	f.SetCellValue(sheetName, cell("H", row), listing.DefaultPrice.InexactFloat64())
	f.SetCellStyle(sheetName, cell("E", 3), cell("E", row), moneyStyle)
	f.SetCellStyle(sheetName, cell("H", 3), cell("H", row), moneyStyle)
	row++

	f.SetCellValue(sheetName, cell("A", row), "Cleaning fee")
	f.SetCellValue(sheetName, cell("H", row), listing.CleaningFee.InexactFloat64())
	f.SetCellStyle(sheetName, cell("H", row), cell("H", row), moneyStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("rates_%s.xlsx", safeFilename(listing.Title))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportSeasonCalendar 季节日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportSeasonCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	seasons, err := s.repo.Season.List(ctx, false)
	if err != nil {
		s.logger.Error("列出季节失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//seascapes-admin//seasons//EN")
	cal.SetName("Seasons")

	stamp := s.now().UTC()
	for i := range seasons {
		season := &seasons[i]
		ps, err := season.ToPricing()
		if err != nil {
			s.logger.Warn("季节日期格式异常，已跳过", zap.String("id", season.ID), zap.Error(err))
			continue
		}
		for j, r := range ps.DateRanges {
			evt := cal.AddEvent(fmt.Sprintf("%s-%d@seascapes-admin", season.ID, j))
			evt.SetDtStampTime(stamp)
			evt.SetSummary(season.Name)
			evt.SetDescription(fmt.Sprintf("Priority %d, minimum stay %d nights", season.Priority, season.MinimumStay))
			evt.SetAllDayStartAt(r.Start)
			// DTEND 为开区间，结束日次日
			evt.SetAllDayEndAt(r.End.AddDate(0, 0, 1))
		}
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("写入日历失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "seasons.ics", nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func formatRanges(ranges []model.DateRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.StartDate+" ~ "+r.EndDate)
	}
	return strings.Join(parts, "; ")
}

// sortPlansByPriority 按季节优先级升序，未加载季节的排在最后
func sortPlansByPriority(plans []model.RatePlan) {
	priority := func(p *model.RatePlan) int {
		if p.Season == nil {
			return int(^uint(0) >> 1)
		}
		return p.Season.Priority
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return priority(&plans[i]) < priority(&plans[j])
	})
}

func safeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "listing"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
