package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/funvibe/tyfold/internal/tyexpr"
	ts "github.com/funvibe/tyfold/internal/typesystem"
)

const metricPrefix = "tyfold_"

// termSize counts the nodes of a term and its nesting depth.
type termSize struct {
	types, regions, consts int
	depth, maxDepth        int
}

func (s *termSize) VisitTy(ty ts.Ty) bool {
	s.types++
	s.depth++
	if s.depth > s.maxDepth {
		s.maxDepth = s.depth
	}
	ty.SuperVisitWith(s)
	s.depth--
	return false
}

func (s *termSize) VisitRegion(ts.Region) bool {
	s.regions++
	return false
}

func (s *termSize) VisitConst(ct ts.Const) bool {
	s.consts++
	return ct.SuperVisitWith(s)
}

func (s *termSize) add(o termSize) {
	s.types += o.types
	s.regions += o.regions
	s.consts += o.consts
	s.maxDepth = max(s.maxDepth, o.maxDepth)
}

func measure(ty ts.Ty) termSize {
	var s termSize
	ty.VisitWith(&s)
	return s
}

func runStats(cmd *cobra.Command, args []string) error {
	files, err := fixturePaths(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	start := time.Now()
	var total termSize
	queries, failed := 0, 0
	for _, path := range files {
		ctx := runFile(path)
		failed += ctx.Failed() + len(ctx.Errors)
		for _, r := range ctx.Results {
			queries++
			ty, err := tyexpr.ParseTy(r.Term, ctx.Env)
			if err != nil {
				continue
			}
			total.add(measure(ty))
		}
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "fixtures:  %s\n", humanize.Comma(int64(len(files))))
	fmt.Fprintf(out, "queries:   %s (%s failed)\n", humanize.Comma(int64(queries)), humanize.Comma(int64(failed)))
	fmt.Fprintf(out, "types:     %s\n", humanize.Comma(int64(total.types)))
	fmt.Fprintf(out, "regions:   %s\n", humanize.Comma(int64(total.regions)))
	fmt.Fprintf(out, "consts:    %s\n", humanize.Comma(int64(total.consts)))
	fmt.Fprintf(out, "max depth: %d\n", total.maxDepth)
	fmt.Fprintf(out, "elapsed:   %s\n", elapsed.Round(time.Microsecond))
	fmt.Fprintln(out)
	return writeCounters(out, prometheus.DefaultGatherer)
}

// writeCounters prints every tyfold counter series as `name{labels} value`.
func writeCounters(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), metricPrefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			value := humanize.Commaf(m.GetCounter().GetValue())
			lines = append(lines, fmt.Sprintf("%s{%s} %s", mf.GetName(), strings.Join(labels, ","), value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
