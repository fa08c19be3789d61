/*
 * plot.go, part of zeomerge.
 *
 * Copyright 2026 The zeomerge Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package regionplot draws how a region grows, shell by shell.
package regionplot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rmera/zeomerge"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Series is the number of selected atoms of one element after each round.
type Series struct {
	Symbol string
	Counts []int
}

//ElementCounts returns the selected atoms per element and round in G, for
//the atoms in S. Elements never selected are left out. The series are
//sorted by element symbol.
func ElementCounts(S zeomerge.Atomer, G *zeomerge.Growth) []Series {
	idx := make(map[string]int)
	var ret []Series
	for r, sel := range G.Rounds {
		for i, s := range sel {
			if !s {
				continue
			}
			sym := S.Atom(i).Symbol
			k, ok := idx[sym]
			if !ok {
				k = len(ret)
				idx[sym] = k
				ret = append(ret, Series{Symbol: sym, Counts: make([]int, len(G.Rounds))})
			}
			ret[k].Counts[r]++
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Symbol < ret[j].Symbol })
	return ret
}

func xys(counts []int) plotter.XYs {
	ret := make(plotter.XYs, len(counts))
	for i, c := range counts {
		ret[i].X = float64(i)
		ret[i].Y = float64(c)
	}
	return ret
}

//addSeries adds a line with points for counts to p, in the given color.
func addSeries(p *plot.Plot, name string, counts []int, c color.Color, shape draw.GlyphDrawer) error {
	l, s, err := plotter.NewLinePoints(xys(counts))
	if err != nil {
		return err
	}
	l.Color = c
	s.Color = c
	s.Shape = shape
	p.Add(l, s)
	p.Legend.Add(name, l, s)
	return nil
}

//Plot returns a plot of the total number of selected atoms after each
//round of G, with one more line per element of S.
func Plot(S zeomerge.Atomer, G *zeomerge.Growth, title string) (*plot.Plot, error) {
	if G == nil || len(G.Rounds) == 0 {
		return nil, fmt.Errorf("regionplot: no growth rounds to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = vg.Millimeter * 3
	p.X.Label.Text = "Shell"
	p.Y.Label.Text = "Selected atoms"
	p.X.Min = 0
	p.Y.Min = 0
	p.X.Tick.Marker = shellTicks(len(G.Rounds))
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	if err := addSeries(p, "total", G.Counts(), color.Black, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	series := ElementCounts(S, G)
	for k, v := range series {
		r, g, b := colors(k, len(series))
		if err := addSeries(p, v.Symbol, v.Counts, color.RGBA{R: r, G: g, B: b, A: 255}, draw.TriangleGlyph{}); err != nil {
			return nil, err
		}
	}
	return p, nil
}

//shellTicks puts a labeled tick on every round.
func shellTicks(rounds int) plot.ConstantTicks {
	ret := make(plot.ConstantTicks, rounds)
	for i := range ret {
		ret[i] = plot.Tick{Value: float64(i), Label: fmt.Sprint(i)}
	}
	return ret
}

//Save plots G and writes it to filename. The image format is given by
//the extension, which can be png, svg or pdf.
func Save(S zeomerge.Atomer, G *zeomerge.Growth, title, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		return fmt.Errorf("regionplot: unsupported image format for %s", filename)
	}
	p, err := Plot(S, G, title)
	if err != nil {
		return err
	}
	return p.Save(12*vg.Centimeter, 9*vg.Centimeter, filename)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func hsv2rgb(h, v, s float64) (uint8, uint8, uint8) {
	if s == 0 {
		return uint8(255 * v), uint8(255 * v), uint8(255 * v)
	}
	h = h / 60
	i := int(h) % 6
	f := h - float64(int(h))
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}

//colors spreads steps colors over the hue circle, skipping the yellows,
//which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	hp := float64(key)*260/float64(steps) + 20
	h := hp + 20
	if hp < 55 {
		h = hp - 20
	}
	return hsv2rgb(h, 1, 1)
}
