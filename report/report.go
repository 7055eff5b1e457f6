// Package report renders the per-sample typing report and derives the
// genotype suggestion from the filtered hit table.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"golang.org/x/exp/maps"

	"github.com/clinmicro/evtyper/utils"
)

// Run renders the HTML report for one sample. An absent or header-only
// hit table is an expected no-hit condition: log and return.
func Run(cfg utils.Config, logger *slog.Logger, ticket string, sample string) error {
	blastFile := utils.BlastFile(cfg, ticket, sample)
	if !utils.FileNonEmpty(blastFile) {
		logger.Info("EV TYPING", "STAGE", "Report", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no hit table")
		return nil
	}

	htmlFile := utils.ReportFile(cfg, ticket, sample)
	if utils.FileNonEmpty(htmlFile) {
		logger.Info("EV TYPING", "STAGE", "Report", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED")
		return nil
	}

	hits, err := ReadHits(blastFile)
	if err != nil {
		return fmt.Errorf("parsing hit table for report: %w", err)
	}
	if len(hits) == 0 {
		logger.Info("EV TYPING", "STAGE", "Report", "TICKET", ticket, "SAMPLE", sample, "STATUS", "SKIPPED", "reason", "no hits")
		return nil
	}

	suggestion := SuggestGenotype(FilterHits(hits), DefaultSuggestOptions())
	return Render(htmlFile, ticket, sample, hits, suggestion)
}

// Render writes the report page: hit counts per species and the percent
// identity of every hit, with the genotype suggestion in the page header.
func Render(htmlFile string, ticket string, sample string, hits []Hit, suggestion string) error {
	counts := make(map[string]int)
	for _, h := range hits {
		counts[h.Species]++
	}
	species := maps.Keys(counts)
	sort.Strings(species)

	var countData []opts.BarData
	for _, sp := range species {
		countData = append(countData, opts.BarData{Value: counts[sp]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros, PageTitle: fmt.Sprintf("Enterovirus report %s %s", ticket, sample)}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Enterovirus typing: ticket %s, sample %s", ticket, sample),
			Subtitle: "Suggested genotype: " + suggestion,
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Hits"}),
	)
	bar.SetXAxis(species).AddSeries("hits", countData)

	var identData []opts.ScatterData
	var hitLabels []string
	for i, h := range hits {
		hitLabels = append(hitLabels, fmt.Sprintf("%d", i+1))
		identData = append(identData, opts.ScatterData{Value: h.Pident})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Percent identity per hit"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hit"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Identity (%)"}),
	)
	scatter.SetXAxis(hitLabels).AddSeries("pident", identData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(bar, scatter)

	f, err := os.Create(htmlFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
