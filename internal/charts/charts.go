package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/tracker_bot/internal/service"
)

// ChartGenerator генерирует PNG-графики по отчетам о расходах
type ChartGenerator struct {
	currency string
}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator(currency string) *ChartGenerator {
	return &ChartGenerator{currency: currency}
}

// calculateMovingAverage вычисляет скользящее среднее
func calculateMovingAverage(values []float64, window int) []float64 {
	result := make([]float64, len(values))
	for i := range values {
		count := 0
		sum := 0.0
		for j := max(0, i-window+1); j <= i; j++ {
			sum += values[j]
			count++
		}
		result[i] = sum / float64(count)
	}
	return result
}

func (g *ChartGenerator) moneyFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f %s", f, g.currency)
	}
	return ""
}

func defaultBackground() chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    50,
			Left:   50,
			Right:  50,
			Bottom: 50,
		},
		FillColor: chart.ColorWhite,
	}
}

// GenerateDailyTrend рисует расходы по дням и их 7-дневное среднее.
// Для отчета без расходов или с одним днем возвращает nil.
func (g *ChartGenerator) GenerateDailyTrend(report *service.Report) ([]byte, error) {
	if len(report.Trend) < 2 || report.Total == 0 {
		return nil, nil
	}

	xValues := make([]time.Time, len(report.Trend))
	yValues := make([]float64, len(report.Trend))
	for i, point := range report.Trend {
		xValues[i] = point.Date
		yValues[i] = point.Amount
	}

	graph := chart.Chart{
		Title:      "Расходы по дням",
		Width:      1200,
		Height:     600,
		Background: defaultBackground(),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02.01"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: g.moneyFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Расходы",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
			chart.TimeSeries{
				Name:    "Тренд (7 дней)",
				XValues: xValues,
				YValues: calculateMovingAverage(yValues, 7),
				Style: chart.Style{
					StrokeColor:     chart.ColorRed.WithAlpha(100),
					StrokeWidth:     2,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render daily trend: %w", err)
	}
	return buffer.Bytes(), nil
}

// GenerateCategoryAnalysis создает круговую диаграмму расходов по категориям
func (g *ChartGenerator) GenerateCategoryAnalysis(report *service.Report) ([]byte, error) {
	if len(report.Categories) == 0 || report.Total == 0 {
		return nil, nil
	}

	// Добавляем только категории с существенной долей (>1%)
	values := make([]chart.Value, 0, len(report.Categories))
	for _, cat := range report.Categories {
		if cat.Share > 1.0 {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s: %.0f %s (%.1f%%)", cat.Name, cat.Amount, g.currency, cat.Share),
				Value: cat.Amount,
			})
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:      "Распределение расходов",
		Width:      800,
		Height:     800,
		Values:     values,
		Background: defaultBackground(),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category analysis: %w", err)
	}
	return buffer.Bytes(), nil
}

// GeneratePeriodComparison сравнивает расходы с предыдущим периодом
func (g *ChartGenerator) GeneratePeriodComparison(report *service.Report) ([]byte, error) {
	cmp := report.Comparison
	if cmp.PrevTotal == 0 && cmp.CurrentTotal == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title: "Сравнение периодов",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      800,
		Height:     600,
		BarWidth:   120,
		Background: defaultBackground(),
		YAxis: chart.YAxis{
			ValueFormatter: g.moneyFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: []chart.Value{
			{
				Label: fmt.Sprintf("Пред.: %.0f %s", cmp.PrevTotal, g.currency),
				Value: cmp.PrevTotal,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					FillColor:   chart.ColorRed.WithAlpha(100),
				},
			},
			{
				Label: fmt.Sprintf("Тек.: %.0f %s", cmp.CurrentTotal, g.currency),
				Value: cmp.CurrentTotal,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					FillColor:   chart.ColorRed,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render period comparison: %w", err)
	}
	return buffer.Bytes(), nil
}
