package rates

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/aurum/internal/models"
)

// RenderHistoryChart renders the stored rate history as a PNG line chart.
// Three series: 24K (gold solid), 22K and 18K (lighter, dashed). Snapshots
// are expected date-descending, as the store returns them.
func RenderHistoryChart(snapshots []*models.RateSnapshot) ([]byte, error) {
	if len(snapshots) < 2 {
		return nil, fmt.Errorf("need at least 2 snapshots, got %d", len(snapshots))
	}

	xValues := make([]time.Time, 0, len(snapshots))
	y24 := make([]float64, 0, len(snapshots))
	y22 := make([]float64, 0, len(snapshots))
	y18 := make([]float64, 0, len(snapshots))

	// Reverse to ascending for the time axis
	for i := len(snapshots) - 1; i >= 0; i-- {
		s := snapshots[i]
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, date)
		y24 = append(y24, s.PerGram[24])
		y22 = append(y22, s.PerGram[22])
		y18 = append(y18, s.PerGram[18])
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("not enough dated snapshots to chart")
	}

	graph := chart.Chart{
		Title:  "Gold Rate History",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("02 Jan")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("₹%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "24K",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("ca8a04"), // yellow-600
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: y24,
			},
			chart.TimeSeries{
				Name: "22K",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("eab308"), // yellow-500
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: xValues,
				YValues: y22,
			},
			chart.TimeSeries{
				Name: "18K",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{2.0, 2.0},
				},
				XValues: xValues,
				YValues: y18,
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
