package report

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"rotation-backtest/internal/model"
)

const (
	colorLong  = "black"
	colorShort = "lightgreen"
	colorBase1 = "blue"
	colorBase2 = "orange"
	fontFamily = "ui-monospace, Menlo, Monaco, Consolas, monospace"
)

type SVGChartOptions struct {
	Width  int
	Height int
}

func (o SVGChartOptions) withDefaults() SVGChartOptions {
	if o.Width <= 0 {
		o.Width = 980
	}
	if o.Height <= 0 {
		o.Height = 520
	}
	return o
}

// RenderEquitySVG draws both buy-and-hold curves and the strategy curve,
// coloured by the regime held on each stretch.
func RenderEquitySVG(c *EquityCurves, opt SVGChartOptions) ([]byte, error) {
	opt = opt.withDefaults()
	if c == nil || len(c.Dates) < 2 {
		return nil, fmt.Errorf("not enough points to plot")
	}
	n := len(c.Dates)
	if len(c.Strategy) != n || len(c.Short) != n || len(c.Long) != n || len(c.Held) != n {
		return nil, fmt.Errorf("curve lengths differ")
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, curve := range [][]float64{c.Strategy, c.Short, c.Long} {
		for _, v := range curve {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}
	if math.IsInf(minV, 0) || math.IsInf(maxV, 0) || math.IsNaN(minV) || math.IsNaN(maxV) {
		return nil, fmt.Errorf("invalid value range")
	}
	if maxV <= minV {
		maxV = minV + 1
	}
	pad := (maxV - minV) * 0.05
	minV -= pad
	maxV += pad

	w := float64(opt.Width)
	h := float64(opt.Height)
	mLeft, mRight, mTop, mBottom := 60.0, 20.0, 28.0, 40.0
	plotW := w - mLeft - mRight
	plotH := h - mTop - mBottom
	if plotW <= 10 || plotH <= 10 {
		return nil, fmt.Errorf("invalid chart size")
	}

	xAt := func(i int) float64 { return mLeft + float64(i)/float64(n-1)*plotW }
	yAt := func(v float64) float64 { return mTop + (1-(v-minV)/(maxV-minV))*plotH }

	txt := "#333333"
	grid := "#e5e7eb"

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + strconv.Itoa(opt.Width) + `" height="` + strconv.Itoa(opt.Height) + `" viewBox="0 0 ` + strconv.Itoa(opt.Width) + ` ` + strconv.Itoa(opt.Height) + `">` + "\n")
	buf.WriteString(`<rect x="0" y="0" width="100%" height="100%" fill="white"/>` + "\n")

	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = "Normalized indices and strategy"
	}
	text(&buf, mLeft, 18, txt, 14, title)

	for k := 0; k <= 5; k++ {
		y := mTop + float64(k)/5*plotH
		buf.WriteString(`<line x1="` + fmtFloat(mLeft) + `" y1="` + fmtFloat(y) + `" x2="` + fmtFloat(mLeft+plotW) + `" y2="` + fmtFloat(y) + `" stroke="` + grid + `" stroke-width="1"/>` + "\n")
		text(&buf, 6, y+4, txt, 12, strconv.FormatFloat(maxV-float64(k)/5*(maxV-minV), 'f', 1, 64))
	}

	polyline(&buf, xAt, yAt, c.Short, 0, n, colorBase1, 1.2)
	polyline(&buf, xAt, yAt, c.Long, 0, n, colorBase2, 1.2)

	// Strategy segments share their boundary point so the curve stays continuous.
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && c.Held[i] == c.Held[start] {
			continue
		}
		from := start
		if from > 0 {
			from--
		}
		polyline(&buf, xAt, yAt, c.Strategy, from, i, regimeColor(c.Held[start]), 1.8)
		start = i
	}

	legend := []struct{ label, color string }{
		{"Strategy (LONG)", colorLong},
		{"Strategy (SHORT)", colorShort},
		{orDefault(c.Names.Short, "SHORT") + " buy & hold", colorBase1},
		{orDefault(c.Names.Long, "LONG") + " buy & hold", colorBase2},
	}
	for i, l := range legend {
		y := mTop + 14 + float64(i)*16
		buf.WriteString(`<line x1="` + fmtFloat(mLeft+10) + `" y1="` + fmtFloat(y-4) + `" x2="` + fmtFloat(mLeft+30) + `" y2="` + fmtFloat(y-4) + `" stroke="` + l.color + `" stroke-width="2"/>` + "\n")
		text(&buf, mLeft+36, y, txt, 12, l.label)
	}

	footY := mTop + plotH + mBottom - 12
	text(&buf, mLeft, footY, txt, 12, c.Dates[0].Format("2006-01-02"))
	text(&buf, mLeft+plotW-70, footY, txt, 12, c.Dates[n-1].Format("2006-01-02"))

	buf.WriteString(`</svg>` + "\n")
	return buf.Bytes(), nil
}

func polyline(buf *bytes.Buffer, xAt func(int) float64, yAt func(float64) float64, vals []float64, from, to int, color string, width float64) {
	if to-from < 2 {
		// A single point still needs a visible mark.
		if to-from == 1 {
			buf.WriteString(`<circle cx="` + fmtFloat(xAt(from)) + `" cy="` + fmtFloat(yAt(vals[from])) + `" r="1.5" fill="` + color + `"/>` + "\n")
		}
		return
	}
	pts := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		pts = append(pts, fmtFloat(xAt(i))+","+fmtFloat(yAt(vals[i])))
	}
	buf.WriteString(`<polyline fill="none" stroke="` + color + `" stroke-width="` + fmtFloat(width) + `" points="` + strings.Join(pts, " ") + `"/>` + "\n")
}

func text(buf *bytes.Buffer, x, y float64, color string, size int, s string) {
	buf.WriteString(`<text x="` + fmtFloat(x) + `" y="` + fmtFloat(y) + `" fill="` + color + `" font-size="` + strconv.Itoa(size) + `" font-family="` + fontFamily + `">` +
		html.EscapeString(s) + `</text>` + "\n")
}

func regimeColor(r model.Regime) string {
	if r == model.RegimeLong {
		return colorLong
	}
	return colorShort
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
