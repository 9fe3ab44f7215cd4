package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/wieku/hitmeter/app/rulesets/hiterror"
	"github.com/wieku/hitmeter/app/rulesets/hitwindows"
)

type bandCount struct {
	early int64
	late  int64
}

type summary struct {
	snapshots int64
	skipped   int64

	windows      hitwindows.Windows
	unstableRate float64
	arrow        float64

	errors []float64
	bands  map[hitwindows.Band]*bandCount
}

func newSummary() *summary {
	return &summary{bands: make(map[hitwindows.Band]*bandCount)}
}

func (s *summary) add(update hiterror.Update) {
	s.snapshots++
	s.skipped += int64(update.Skipped)

	s.windows = update.Windows
	s.unstableRate = update.UnstableRate
	s.arrow = update.BiasPosition

	for _, tick := range update.Ticks {
		s.errors = append(s.errors, tick.Error)

		count, ok := s.bands[tick.Band]
		if !ok {
			count = &bandCount{}
			s.bands[tick.Band] = count
		}

		if tick.Side == hitwindows.Early {
			count.early++
		} else {
			count.late++
		}
	}
}

func (s *summary) mean() float64 {
	if len(s.errors) == 0 {
		return 0
	}

	return stat.Mean(s.errors, nil)
}

func (s *summary) median() float64 {
	if len(s.errors) == 0 {
		return 0
	}

	sorted := append([]float64(nil), s.errors...)
	sort.Float64s(sorted)

	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func (s *summary) render(out io.Writer) error {
	bands := tablewriter.NewWriter(out)
	bands.SetHeader([]string{"Band", "Window (ms)", "Early", "Late"})
	bands.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, w := range s.windows.Bands {
		count := s.bands[w.Band]
		if count == nil {
			count = &bandCount{}
		}

		bands.Append([]string{
			w.Band.String(),
			fmt.Sprintf("±%.2f", w.Threshold),
			humanize.Comma(count.early),
			humanize.Comma(count.late),
		})
	}

	bands.Render()

	totals := tablewriter.NewWriter(out)
	totals.SetAlignment(tablewriter.ALIGN_LEFT)
	totals.SetAutoWrapText(false)

	totals.AppendBulk([][]string{
		{"Windows", s.windows.String()},
		{"Snapshots", humanize.Comma(s.snapshots)},
		{"Hit errors", humanize.Comma(int64(len(s.errors)))},
		{"Skipped", humanize.Comma(s.skipped)},
		{"Unstable rate", fmt.Sprintf("%.2f", s.unstableRate)},
		{"Mean error", fmt.Sprintf("%.2f ms", s.mean())},
		{"Median error", fmt.Sprintf("%.2f ms", s.median())},
		{"Average arrow", fmt.Sprintf("%.3f", s.arrow)},
	})

	totals.Render()

	return nil
}
