package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"designmap-cli/internal/charts"
	"designmap-cli/internal/layout"
	"designmap-cli/internal/model"
	"designmap-cli/internal/store"
)

const (
	// Neither raster dimension may exceed maxSide; the scale factor is
	// additionally capped at maxScale.
	maxSide  = 6000
	maxScale = 3.0

	chartScale = 2.0

	padding     = 24.0
	labelColW   = 160.0
	headerH     = 150.0
	legendRowH  = 28.0
	boxInset    = 10.0
	arrowStroke = 2.5
)

// ScaleFor picks the raster scale for a natural width and height so that
// neither scaled dimension exceeds the maximum pixel bound.
func ScaleFor(w, h float64) float64 {
	longest := math.Max(w, h)
	if longest <= 0 {
		return 1
	}
	return math.Min(maxScale, maxSide/longest)
}

func fontFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

type faces struct {
	title, body, small, bold font.Face
}

func loadFaces() (faces, error) {
	var fs faces
	var err error
	if fs.title, err = fontFace(gobold.TTF, 24); err != nil {
		return fs, err
	}
	if fs.bold, err = fontFace(gobold.TTF, 13); err != nil {
		return fs, err
	}
	if fs.body, err = fontFace(goregular.TTF, 13); err != nil {
		return fs, err
	}
	if fs.small, err = fontFace(goregular.TTF, 11); err != nil {
		return fs, err
	}
	return fs, nil
}

// MapPNG renders the design map (header, grid, connectors, legend) at its
// full natural size and encodes it as PNG.
func MapPNG(db *store.DB) ([]byte, error) {
	g, err := layout.Place(db.Activities, db.Meta)
	if err != nil {
		return nil, err
	}
	g.Route()

	fs, err := loadFaces()
	if err != nil {
		return nil, err
	}

	legendH := legendRowH*float64(len(model.Strategies.Values)) + 40
	w := padding*2 + labelColW + float64(g.Width())
	h := padding*2 + headerH + float64(g.Height()) + legendH
	scale := ScaleFor(w, h)

	dc := gg.NewContext(int(w*scale), int(h*scale))
	dc.Scale(scale, scale)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	drawMapHeader(dc, fs, db.Meta, g)

	gridX := padding + labelColW
	gridY := padding + headerH
	drawGrid(dc, fs, g, gridX, gridY)
	drawConnectors(dc, g, gridX, gridY)
	drawLegend(dc, fs, gridY+float64(g.Height())+24)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawMapHeader(dc *gg.Context, fs faces, m model.Meta, g *layout.Grid) {
	x, y := padding, padding+20

	topic := m.Topic
	if topic == "" {
		topic = "Lesson Design Map"
	}
	dc.SetFontFace(fs.title)
	dc.SetHexColor("#1e3a5f")
	dc.DrawString(topic, x, y)
	y += 26

	info := ""
	if m.Level != "" {
		info = "Level: " + m.Level + "  |  "
	}
	info += fmt.Sprintf("Duration: %s minutes", m.Duration)
	dc.SetFontFace(fs.body)
	dc.SetHexColor("#0f172a")
	dc.DrawString(info, x, y)
	if g.Mismatch {
		tw, _ := dc.MeasureString(info)
		dc.SetHexColor("#b91c1c")
		dc.DrawString(fmt.Sprintf("; Activities total: %d mins", g.TotalMinutes), x+tw, y)
	}
	y += 20

	for _, line := range metaLines(m) {
		dc.SetHexColor("#334155")
		dc.DrawString(line, x, y)
		y += 17
	}
}

func metaLines(m model.Meta) []string {
	var out []string
	add := func(label, value string) {
		if value != "" {
			out = append(out, label+": "+value)
		}
	}
	add("Student profile", m.StudentProfile)
	add("Learning outcomes", m.LearningOutcomes)
	add("Prerequisite knowledge", m.PrerequisiteKnowledge)
	if m.TechIntegration != "" && m.TechIntegration != model.TechIntegrationDefault {
		add("Level of technology integration", model.TechIntegrations.Label(m.TechIntegration))
	}
	add("Learning issue to be addressed", m.LearningIssues)
	return out
}

func drawGrid(dc *gg.Context, fs faces, g *layout.Grid, gx, gy float64) {
	// Row label column and band separators.
	for i, row := range layout.Rows {
		y := gy + float64(i*layout.RowHeight)
		dc.SetHexColor("#e2e8f0")
		dc.SetLineWidth(1)
		dc.DrawLine(gx-labelColW, y+layout.RowHeight, gx+float64(g.Width()), y+layout.RowHeight)
		dc.Stroke()

		dc.SetFontFace(fs.bold)
		dc.SetHexColor("#1e3a5f")
		dc.DrawStringWrapped(row.Label, gx-labelColW+8, y+layout.RowHeight/2, 0, 0.5,
			labelColW-16, 1.3, gg.AlignLeft)
	}

	for _, cell := range g.Cells {
		drawActivityBox(dc, fs, cell, gx, gy)
	}
}

func drawActivityBox(dc *gg.Context, fs faces, cell layout.Cell, gx, gy float64) {
	a := cell.Activity
	x := gx + float64(cell.Col*layout.SlotWidth) + boxInset
	y := gy + float64(cell.Row*layout.RowHeight) + boxInset
	w := float64(layout.SlotWidth-layout.SlotGap) - boxInset
	h := float64(layout.RowHeight) - 2*boxInset

	fill := model.Strategies.Color(a.Strategy)
	if fill == "" {
		fill = "#e5e7eb"
	}
	dc.SetHexColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, 8)
	dc.Fill()
	dc.SetHexColor("#0f172a")
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, 8)
	dc.Stroke()

	tx, ty := x+8, y+16
	dc.SetFontFace(fs.bold)
	dc.SetHexColor("#0f172a")
	title := fmt.Sprintf("Activity %d", a.ID)
	if a.Time != "" {
		title = fmt.Sprintf("Activity %d (%s min)", a.ID, a.Time)
	}
	dc.DrawString(title, tx, ty)
	ty += 16

	if a.KeyApp != "" {
		dc.SetFontFace(fs.small)
		dc.SetHexColor("#1f2937")
		dc.DrawStringWrapped(model.KeyApplications.Label(a.KeyApp), tx, ty, 0, 0,
			w-16, 1.2, gg.AlignLeft)
		ty += 26
	}

	dc.SetFontFace(fs.body)
	dc.SetHexColor("#111827")
	dc.DrawStringWrapped(a.Details, tx, ty, 0, 0, w-16, 1.25, gg.AlignLeft)

	if a.Tool != "" {
		dc.SetFontFace(fs.small)
		dc.SetHexColor("#374151")
		dc.DrawString("[Tool]: "+a.Tool, tx, y+h-10)
	}
}

func drawConnectors(dc *gg.Context, g *layout.Grid, gx, gy float64) {
	dc.SetHexColor("#111111")
	dc.SetLineWidth(arrowStroke)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, c := range g.Connectors {
		pts := c.Points
		dc.MoveTo(gx+pts[0].X, gy+pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(gx+p.X, gy+p.Y)
		}
		dc.Stroke()

		// Arrowhead at the target, pointing along +x into the box.
		tip := pts[len(pts)-1]
		drawArrowhead(dc, gx+tip.X, gy+tip.Y)
	}
}

func drawArrowhead(dc *gg.Context, x, y float64) {
	dc.SetHexColor("#333333")
	dc.MoveTo(x-10, y-4)
	dc.LineTo(x, y)
	dc.LineTo(x-10, y+4)
	dc.ClosePath()
	dc.Fill()
}

func drawLegend(dc *gg.Context, fs faces, y float64) {
	x := padding
	dc.SetFontFace(fs.bold)
	dc.SetHexColor("#1e3a5f")
	dc.DrawString("Legend", x, y)
	y += 10

	for _, s := range model.Strategies.Values {
		dc.SetHexColor(s.Color)
		dc.DrawRectangle(x, y+6, 18, 12)
		dc.Fill()
		dc.SetHexColor("#0f172a")
		dc.SetLineWidth(0.5)
		dc.DrawRectangle(x, y+6, 18, 12)
		dc.Stroke()

		dc.SetFontFace(fs.body)
		dc.SetHexColor("#111827")
		dc.DrawString(s.Label, x+26, y+16)
		y += legendRowH
	}
}

// ChartsPNG renders the three proportional charts side by side at a fixed 2x
// scale and encodes the result as PNG.
func ChartsPNG(db *store.DB) ([]byte, error) {
	all := charts.All(db.Activities)

	fs, err := loadFaces()
	if err != nil {
		return nil, err
	}

	const cardW, cardH = 340.0, 460.0
	w := padding*2 + cardW*float64(len(all)) + 20*float64(len(all)-1)
	h := padding*2 + cardH

	dc := gg.NewContext(int(w*chartScale), int(h*chartScale))
	dc.Scale(chartScale, chartScale)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	for i, c := range all {
		x := padding + float64(i)*(cardW+20)
		drawChartCard(dc, fs, c, x, padding, cardW, cardH)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawChartCard(dc *gg.Context, fs faces, c charts.Chart, x, y, w, h float64) {
	dc.SetFontFace(fs.bold)
	dc.SetHexColor("#1e3a5f")
	dc.DrawStringAnchored(c.Title, x+w/2, y+16, 0.5, 0.5)

	const pieD = 220.0
	cx := x + w/2
	cy := y + 40 + pieD/2
	drawPie(dc, fs, c, cx, cy, pieD/2)

	// Legend rows under the pie, minutes per category.
	ly := y + 40 + pieD + 24
	for _, s := range c.Slices {
		dc.SetHexColor(s.Color)
		dc.DrawRectangle(x+12, ly-9, 12, 12)
		dc.Fill()
		dc.SetFontFace(fs.small)
		dc.SetHexColor("#111827")
		label := s.Label
		if s.Minutes > 0 {
			label = fmt.Sprintf("%s: %d min", s.Label, s.Minutes)
		}
		dc.DrawString(label, x+32, ly)
		ly += 18
	}
}

func drawPie(dc *gg.Context, fs faces, c charts.Chart, cx, cy, r float64) {
	if c.Total <= 0 {
		// Neutral chart: no slices.
		dc.SetHexColor("#f3f4f6")
		dc.DrawCircle(cx, cy, r)
		dc.Fill()
		dc.SetHexColor("#e5e7eb")
		dc.SetLineWidth(2)
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()
		return
	}

	for _, s := range c.Slices {
		if s.Minutes == 0 {
			continue
		}
		a0 := gg.Radians(s.StartDeg - 90)
		a1 := gg.Radians(s.StartDeg + s.SpanDeg - 90)
		dc.SetHexColor(s.Color)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, a0, a1)
		dc.ClosePath()
		dc.Fill()
	}

	dc.SetHexColor("#e5e7eb")
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()

	for _, s := range c.Slices {
		if !s.LabelVisible() {
			continue
		}
		// LabelAnchor is in percent of the chart box; map onto the pie rect.
		px, py := s.LabelAnchor()
		lx := cx - r + px/100*2*r
		ly := cy - r + py/100*2*r
		dc.SetFontFace(fs.bold)
		dc.SetHexColor("#111827")
		dc.DrawStringAnchored(fmt.Sprintf("%d", s.Minutes), lx, ly-7, 0.5, 0.5)
		dc.SetFontFace(fs.small)
		dc.DrawStringAnchored(c.Percent(s), lx, ly+7, 0.5, 0.5)
	}
}
