package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/model"
	"github.com/ivanoskov/tracker_bot/internal/store"
)

// ReportType определяет тип отчета
type ReportType int

const (
	DailyReport ReportType = iota
	WeeklyReport
	MonthlyReport
	YearlyReport
)

// ExpenseStore - хранилище расходов одного чата
type ExpenseStore = store.Store[model.Expense, *model.Expense]

// ExpenseTracker предоставляет методы для работы с расходами
type ExpenseTracker struct {
	store  *ExpenseStore
	money  *Money
	logger *zap.Logger
}

// NewExpenseTracker создает новый экземпляр ExpenseTracker
func NewExpenseTracker(s *ExpenseStore, money *Money, logger *zap.Logger) *ExpenseTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseTracker{
		store:  s,
		money:  money,
		logger: logger,
	}
}

// AddExpense добавляет расход; имя категории берется из справочника
func (s *ExpenseTracker) AddExpense(ctx context.Context, description, categoryID string, amount float64) (model.Expense, error) {
	expense := model.Expense{
		Description: strings.TrimSpace(description),
		Amount:      amount,
		CategoryID:  categoryID,
	}
	if cat, ok := model.LookupCategory(categoryID); ok {
		expense.CategoryName = cat.Name
	}

	created, err := s.store.Add(ctx, expense)
	if err == nil {
		s.logger.Debug("expense added",
			zap.String("id", created.ID),
			zap.String("category", created.CategoryID),
			zap.Float64("amount", created.Amount))
	}
	return created, err
}

func (s *ExpenseTracker) RemoveExpense(ctx context.Context, id string) error {
	return s.store.Remove(ctx, id)
}

func (s *ExpenseTracker) ToggleReimbursed(ctx context.Context, id string) error {
	return s.store.Toggle(ctx, id, model.FieldReimbursed)
}

func (s *ExpenseTracker) GetExpense(id string) (model.Expense, bool) {
	return s.store.Get(id)
}

// Expenses возвращает расходы в порядке добавления
func (s *ExpenseTracker) Expenses() []model.Expense {
	return s.store.Snapshot()
}

// FormatAmount форматирует сумму в валюте трекера
func (s *ExpenseTracker) FormatAmount(amount float64) string {
	return s.money.Format(amount)
}

// Summary содержит итоги по всему списку расходов
type Summary struct {
	Count       int
	CountLabel  string
	Total       float64
	Outstanding float64
}

// Summary считает итоги по сохраненным суммам
func (s *ExpenseTracker) Summary() Summary {
	expenses := s.store.Snapshot()

	summary := Summary{
		Count:      len(expenses),
		CountLabel: countLabel(len(expenses)),
	}
	for _, e := range expenses {
		summary.Total += e.Amount
		if !e.Reimbursed {
			summary.Outstanding += e.Amount
		}
	}
	summary.Total = roundCents(summary.Total)
	summary.Outstanding = roundCents(summary.Outstanding)
	return summary
}

// countLabel склоняет слово "расход" по числу
func countLabel(n int) string {
	word := "расходов"
	switch mod100 := n % 100; {
	case mod100 >= 11 && mod100 <= 14:
	case n%10 == 1:
		word = "расход"
	case n%10 >= 2 && n%10 <= 4:
		word = "расхода"
	}
	return fmt.Sprintf("%d %s", n, word)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Report - отчет по расходам за период
type Report struct {
	Type       ReportType
	Period     string
	Text       string
	StartDate  time.Time
	EndDate    time.Time
	Total      float64
	Count      int
	AvgExpense float64
	DailyAvg   float64
	MaxExpense model.Expense
	Categories []CategoryStats
	Trend      []TrendPoint
	Comparison PeriodComparison
}

// CategoryStats представляет статистику по категории
type CategoryStats struct {
	CategoryID   string
	Name         string
	Amount       float64
	Count        int
	Share        float64
	TrendPercent float64
}

// TrendPoint представляет точку в тренде
type TrendPoint struct {
	Date   time.Time
	Amount float64
	Change float64
}

// PeriodComparison содержит сравнение с предыдущим периодом той же длины
type PeriodComparison struct {
	PrevTotal    float64
	CurrentTotal float64
	Change       float64
}

// GetReport строит отчет за период, содержащий now
func (s *ExpenseTracker) GetReport(reportType ReportType, now time.Time) *Report {
	startDate, endDate := reportWindow(reportType, now)

	periodDuration := endDate.Sub(startDate)
	prevEndDate := startDate.Add(-time.Nanosecond)
	prevStartDate := prevEndDate.Add(-periodDuration)

	expenses := s.store.Snapshot()
	current := filterByDate(expenses, startDate, endDate)
	previous := filterByDate(expenses, prevStartDate, prevEndDate)

	report := &Report{
		Type:      reportType,
		Period:    formatPeriod(reportType, startDate, endDate),
		StartDate: startDate,
		EndDate:   endDate,
	}

	s.fillExpenseStats(report, current)
	s.fillCategoryAnalytics(report, current, previous)
	s.fillTrendAnalytics(report, current)

	prevTotal := 0.0
	for _, e := range previous {
		prevTotal += e.Amount
	}
	report.Comparison = PeriodComparison{
		PrevTotal:    roundCents(prevTotal),
		CurrentTotal: report.Total,
	}
	if prevTotal > 0 {
		report.Comparison.Change = calculateTrendPercent(report.Total, prevTotal)
	}

	report.Text = s.formatReport(report)

	s.logger.Debug("report built",
		zap.String("period", report.Period),
		zap.Int("expenses", report.Count),
		zap.Float64("total", report.Total))

	return report
}

func reportWindow(reportType ReportType, now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	switch reportType {
	case DailyReport:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	case WeeklyReport:
		// последние 7 дней, включая сегодняшний
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		return end.AddDate(0, 0, -7), end.Add(-time.Nanosecond)
	case YearlyReport:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
}

func filterByDate(expenses []model.Expense, start, end time.Time) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if e.CreatedAt.Before(start) || e.CreatedAt.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *ExpenseTracker) fillExpenseStats(report *Report, expenses []model.Expense) {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
		if e.Amount > report.MaxExpense.Amount {
			report.MaxExpense = e
		}
	}

	report.Count = len(expenses)
	report.Total = roundCents(total)
	if report.Count > 0 {
		report.AvgExpense = total / float64(report.Count)
	}

	days := math.Ceil(report.EndDate.Sub(report.StartDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	report.DailyAvg = total / days
}

func (s *ExpenseTracker) fillCategoryAnalytics(report *Report, current, previous []model.Expense) {
	stats := make(map[string]*CategoryStats)
	for _, e := range current {
		cs, ok := stats[e.CategoryID]
		if !ok {
			cs = &CategoryStats{CategoryID: e.CategoryID, Name: categoryName(e)}
			stats[e.CategoryID] = cs
		}
		cs.Amount += e.Amount
		cs.Count++
	}

	prevAmounts := make(map[string]float64)
	for _, e := range previous {
		prevAmounts[e.CategoryID] += e.Amount
	}

	for _, cs := range stats {
		if report.Total > 0 {
			cs.Share = cs.Amount / report.Total * 100
		}
		if prev := prevAmounts[cs.CategoryID]; prev != 0 {
			cs.TrendPercent = calculateTrendPercent(cs.Amount, prev)
		}
		cs.Amount = roundCents(cs.Amount)
		report.Categories = append(report.Categories, *cs)
	}

	// Сортируем по убыванию суммы, при равенстве по ID
	sort.Slice(report.Categories, func(i, j int) bool {
		a, b := report.Categories[i], report.Categories[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.CategoryID < b.CategoryID
	})
}

func (s *ExpenseTracker) fillTrendAnalytics(report *Report, expenses []model.Expense) {
	daily := make(map[string]float64)
	for _, e := range expenses {
		daily[e.CreatedAt.In(report.StartDate.Location()).Format("2006-01-02")] += e.Amount
	}

	report.Trend = make([]TrendPoint, 0)
	prev := 0.0
	for date := report.StartDate; !date.After(report.EndDate); date = date.AddDate(0, 0, 1) {
		amount := roundCents(daily[date.Format("2006-01-02")])
		report.Trend = append(report.Trend, TrendPoint{
			Date:   date,
			Amount: amount,
			Change: amount - prev,
		})
		prev = amount
	}
}

func categoryName(e model.Expense) string {
	if e.CategoryName != "" {
		return e.CategoryName
	}
	if cat, ok := model.LookupCategory(e.CategoryID); ok {
		return cat.Name
	}
	return e.CategoryID
}

// calculateTrendPercent вычисляет процент изменения относительно previous
func calculateTrendPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100 // Рост с нуля
		}
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}

// formatChange форматирует изменение значения в процентах
func formatChange(current, previous float64) string {
	if previous == 0 {
		return ""
	}

	change := calculateTrendPercent(current, previous)

	// Ограничиваем отображение процентов разумными пределами
	if change < -1000 {
		change = -1000
	} else if change > 1000 {
		change = 1000
	}

	if change > 0 {
		return fmt.Sprintf(" (+%.1f%%⬆️)", change)
	}
	return fmt.Sprintf(" (%.1f%%⬇️)", change)
}

func (s *ExpenseTracker) formatReport(report *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Отчет за %s\n\n", report.Period)
	fmt.Fprintf(&b, "💸 Расходы: %s%s\n",
		s.money.Format(report.Total), formatChange(report.Total, report.Comparison.PrevTotal))
	fmt.Fprintf(&b, "🧾 Количество: %s\n", countLabel(report.Count))
	if report.Count > 0 {
		fmt.Fprintf(&b, "📉 Средний расход: %s\n", s.money.Format(report.AvgExpense))
		fmt.Fprintf(&b, "📅 В среднем за день: %s\n", s.money.Format(report.DailyAvg))
		fmt.Fprintf(&b, "🔝 Самый крупный: %s, %s\n",
			report.MaxExpense.Description, s.money.Format(report.MaxExpense.Amount))
	}

	if len(report.Categories) > 0 {
		b.WriteString("\nПо категориям:\n")
		for _, cs := range report.Categories {
			fmt.Fprintf(&b, "• %s: %s (%.1f%%)\n", cs.Name, s.money.Format(cs.Amount), cs.Share)
		}
	}

	return b.String()
}

func formatPeriod(reportType ReportType, start, end time.Time) string {
	switch reportType {
	case DailyReport:
		return start.Format("02.01.2006")
	case MonthlyReport:
		return start.Format("01.2006")
	case YearlyReport:
		return start.Format("2006")
	default:
		return fmt.Sprintf("%s - %s",
			start.Format("02.01.2006"),
			end.Format("02.01.2006"))
	}
}

// ParseReportType разбирает аргумент команды /report
func ParseReportType(arg string) (ReportType, bool) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "day", "день":
		return DailyReport, true
	case "week", "неделя":
		return WeeklyReport, true
	case "", "month", "месяц":
		return MonthlyReport, true
	case "year", "год":
		return YearlyReport, true
	}
	return MonthlyReport, false
}
