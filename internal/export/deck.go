package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"designmap-cli/internal/charts"
	"designmap-cli/internal/layout"
	"designmap-cli/internal/model"
	"designmap-cli/internal/store"
)

// Deck writes a slide deck (one landscape page per slide) reconstructing the
// map layout with vector primitives, independent of the raster renderer:
// slide 1 metadata, slide 2 the grid with connectors, slide 3 the legend,
// slide 4 a raster snapshot of the charts.
func Deck(db *store.DB, w io.Writer) error {
	g, err := layout.Place(db.Activities, db.Meta)
	if err != nil {
		return err
	}
	g.Route()

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	deckMetaSlide(pdf, db.Meta, g)
	deckGridSlide(pdf, g)
	deckLegendSlide(pdf)
	if err := deckChartsSlide(pdf, db); err != nil {
		return err
	}

	return pdf.Output(w)
}

const (
	pageW, pageH = 297.0, 210.0
	slideMargin  = 16.0
)

func deckMetaSlide(pdf *fpdf.Fpdf, m model.Meta, g *layout.Grid) {
	pdf.AddPage()

	topic := m.Topic
	if topic == "" {
		topic = "Lesson Design Map"
	}
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(30, 58, 95)
	pdf.SetXY(slideMargin, 30)
	pdf.CellFormat(pageW-2*slideMargin, 14, topic, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetXY(slideMargin, 50)

	line := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetX(slideMargin)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 13)
		pdf.MultiCell(pageW-2*slideMargin-60, 8, value, "", "L", false)
	}

	duration := m.Duration
	if g.Mismatch {
		duration = fmt.Sprintf("%s minutes (activities total: %d mins)", m.Duration, g.TotalMinutes)
	} else if duration != "" {
		duration += " minutes"
	}
	line("Level", m.Level)
	line("Duration", duration)
	line("Student profile", m.StudentProfile)
	line("Learning outcomes", m.LearningOutcomes)
	line("Prerequisites", m.PrerequisiteKnowledge)
	line("Learning issues", m.LearningIssues)
	if m.TechIntegration != "" && m.TechIntegration != model.TechIntegrationDefault {
		line("Tech integration", model.TechIntegrations.Label(m.TechIntegration))
	}
}

func deckGridSlide(pdf *fpdf.Fpdf, g *layout.Grid) {
	pdf.AddPage()

	const labelW = 42.0
	areaX := slideMargin + labelW
	areaY := 24.0
	areaW := pageW - areaX - slideMargin
	areaH := pageH - areaY - slideMargin

	// Map the abstract grid units onto the slide area.
	sx := areaW / float64(g.Width())
	sy := areaH / float64(g.Height())

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 58, 95)
	pdf.SetXY(slideMargin, 10)
	pdf.CellFormat(100, 8, "Design Map", "", 0, "L", false, 0, "")

	// Row bands and labels.
	for i, row := range layout.Rows {
		y := areaY + float64(i*layout.RowHeight)*sy
		bandH := float64(layout.RowHeight) * sy
		pdf.SetDrawColor(226, 232, 240)
		pdf.SetLineWidth(0.3)
		pdf.Line(slideMargin, y+bandH, areaX+areaW, y+bandH)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(30, 58, 95)
		pdf.SetXY(slideMargin, y+bandH/2-8)
		pdf.MultiCell(labelW-4, 4, row.Label, "", "L", false)
	}

	// Activity boxes.
	for _, cell := range g.Cells {
		a := cell.Activity
		x := areaX + (float64(cell.Col*layout.SlotWidth)+boxInset)*sx
		y := areaY + (float64(cell.Row*layout.RowHeight)+boxInset)*sy
		bw := (float64(layout.SlotWidth-layout.SlotGap) - boxInset) * sx
		bh := (float64(layout.RowHeight) - 2*boxInset) * sy

		r, gr, b := hexToRGB(model.Strategies.Color(a.Strategy))
		pdf.SetFillColor(r, gr, b)
		pdf.SetDrawColor(15, 23, 42)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, bw, bh, "FD")

		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(15, 23, 42)
		pdf.SetXY(x+2, y+2)
		title := fmt.Sprintf("Activity %d", a.ID)
		if a.Time != "" {
			title = fmt.Sprintf("Activity %d (%s min)", a.ID, a.Time)
		}
		pdf.CellFormat(bw-4, 4, title, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(x+2, y+7)
		pdf.MultiCell(bw-4, 3.2, a.Details, "", "L", false)
		if a.Tool != "" {
			pdf.SetFont("Helvetica", "I", 6.5)
			pdf.SetXY(x+2, y+bh-5)
			pdf.CellFormat(bw-4, 4, "[Tool]: "+a.Tool, "", 0, "L", false, 0, "")
		}
	}

	// Connectors with arrowheads.
	pdf.SetDrawColor(17, 17, 17)
	pdf.SetLineWidth(0.6)
	for _, c := range g.Connectors {
		pts := c.Points
		for i := 0; i+1 < len(pts); i++ {
			pdf.Line(areaX+pts[i].X*sx, areaY+pts[i].Y*sy,
				areaX+pts[i+1].X*sx, areaY+pts[i+1].Y*sy)
		}
		tip := pts[len(pts)-1]
		tx := areaX + tip.X*sx
		ty := areaY + tip.Y*sy
		pdf.SetFillColor(51, 51, 51)
		pdf.Polygon([]fpdf.PointType{
			{X: tx - 3, Y: ty - 1.4},
			{X: tx, Y: ty},
			{X: tx - 3, Y: ty + 1.4},
		}, "F")
	}
}

func deckLegendSlide(pdf *fpdf.Fpdf) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 58, 95)
	pdf.SetXY(slideMargin, 24)
	pdf.CellFormat(100, 10, "Legend", "", 1, "L", false, 0, "")

	y := 48.0
	for _, s := range model.Strategies.Values {
		r, g, b := hexToRGB(s.Color)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(15, 23, 42)
		pdf.Rect(slideMargin, y, 12, 8, "FD")

		pdf.SetFont("Helvetica", "", 13)
		pdf.SetTextColor(17, 24, 39)
		pdf.SetXY(slideMargin+18, y)
		pdf.CellFormat(200, 8, s.Label, "", 1, "L", false, 0, "")
		y += 14
	}

	y += 10
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 58, 95)
	pdf.SetXY(slideMargin, y)
	pdf.CellFormat(200, 8, "Social Plane", "", 1, "L", false, 0, "")
	y += 10
	for _, row := range layout.Rows {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(17, 24, 39)
		pdf.SetXY(slideMargin, y)
		pdf.CellFormat(200, 7, row.Label, "", 1, "L", false, 0, "")
		y += 8
	}
}

func deckChartsSlide(pdf *fpdf.Fpdf, db *store.DB) error {
	png, err := ChartsPNG(db)
	if err != nil {
		return err
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 58, 95)
	pdf.SetXY(slideMargin, 10)
	pdf.CellFormat(200, 8, "Time Allocation", "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("charts", opts, bytes.NewReader(png))
	pdf.ImageOptions("charts", slideMargin, 24, pageW-2*slideMargin, 0, false, opts, 0, "")

	// Slide is informative even when every chart is neutral; note totals.
	all := charts.All(db.Activities)
	if len(all) > 0 && all[0].Total == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(100, 116, 139)
		pdf.SetXY(slideMargin, pageH-18)
		pdf.CellFormat(200, 6, "No activity time recorded yet.", "", 0, "L", false, 0, "")
	}
	return nil
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 229, 231, 235
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 229, 231, 235
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)
}
