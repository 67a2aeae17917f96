package report

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/balkashynov/motofuel/internal/stats"
)

var tableStyle = props.TableList{
	HeaderProp: props.TableListContent{
		Size:      9,
		GridSizes: []uint{2, 2, 1, 2, 2, 1, 2},
	},
	ContentProp: props.TableListContent{
		Size:      9,
		GridSizes: []uint{2, 2, 1, 2, 2, 1, 2},
	},
	Align:                consts.Center,
	AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
	HeaderContentSpace:   1,
	Line:                 false,
}

// WritePDF renders the summary, insights and fill-up table as an A4 document.
// The built-in PDF fonts cannot draw currency symbols, so amounts are plain
// numbers.
func WritePDF(w io.Writer, r Report) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	// Header
	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Fuel report: "+r.Vehicle.DisplayName(), props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Generated "+r.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
					Top:   2,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  10,
				})
			})
		})
	})

	if r.HasStats {
		sectionTitle(m, "Summary")
		summary := [][]string{
			{"Average efficiency", fmt.Sprintf("%.1f km/L", r.Stats.AvgEfficiency)},
			{"Best / worst", fmt.Sprintf("%.1f / %.1f km/L", r.Stats.BestEfficiency, r.Stats.WorstEfficiency)},
			{"Total distance", fmt.Sprintf("%.0f km", r.Stats.TotalDistance)},
			{"Total fuel", fmt.Sprintf("%.2f L", r.Stats.TotalFuel)},
			{"Total cost", money(r.Stats.TotalCost)},
			{"Cost per km", money(r.Stats.CostPerKm)},
		}
		for _, line := range summary {
			label, value := line[0], line[1]
			m.Row(6, func() {
				m.Col(6, func() {
					m.Text(label, props.Text{Size: 10, Style: consts.Bold})
				})
				m.Col(6, func() {
					m.Text(value, props.Text{Size: 10, Align: consts.Right})
				})
			})
		}
	}

	// Insights are rendered without symbols or currency
	insights := stats.InsightsIn("", r.Entries, r.GeneratedAt)
	if len(insights) > 0 {
		sectionTitle(m, "Insights")
		for _, in := range insights {
			text := fmt.Sprintf("[%s] %s", in.Category, in.Message)
			m.Row(6, func() {
				m.Col(12, func() {
					m.Text(text, props.Text{Size: 10})
				})
			})
		}
	}

	sectionTitle(m, "Fill-ups")
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, entryRow(e))
	}
	m.TableList(entryHeaders, rows, tableStyle)

	buf, err := m.Output()
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func sectionTitle(m pdf.Maroto, title string) {
	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  13,
			})
		})
	})
}
