package matchservice

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Leader     drawing.Color
	Text       drawing.Color
}

// DefaultPalette is used for the standings chart.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("ffffff"),
	Bar:        drawing.ColorFromHex("2e7d32"),
	Leader:     drawing.ColorFromHex("f9a825"),
	Text:       drawing.ColorFromHex("212121"),
}

// GenerateStandingsChart produces a PNG bar chart of points per team.
func GenerateStandingsChart(table []StandingRow, palette ChartPalette) ([]byte, error) {
	maxPoints := 1.0
	bars := make([]chart.Value, len(table))
	for i, row := range table {
		color := palette.Bar
		if i == 0 {
			color = palette.Leader
		}
		bars[i] = chart.Value{
			Label: row.TeamName,
			Value: float64(row.Points),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		}
		if float64(row.Points) > maxPoints {
			maxPoints = float64(row.Points)
		}
	}
	// A bar chart needs at least one bar.
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "No played matches yet", Value: 0})
	}

	graph := chart.BarChart{
		Title:  "Standings",
		Width:  max(480, 90*len(bars)),
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: palette.Text,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.Text,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: maxPoints},
		},
		BarWidth:   40,
		BarSpacing: 20,
		Bars:       bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
