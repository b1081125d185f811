package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-hist/hist"
	"github.com/cwbudde/algo-hist/hist/rfile"
	"github.com/cwbudde/algo-hist/hist/spectrum"
	"github.com/cwbudde/algo-hist/hist/surface"
	"github.com/cwbudde/algo-hist/stats/binned"
	"github.com/cwbudde/algo-hist/stats/dist"
)

func addSigmaFlag(cmd *cobra.Command) {
	cmd.Flags().Float64("sigma", surface.DefaultSigma, "confidence in Gaussian standard deviations")
}

func (a *app) probCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prob [SIGMA...]",
		Short: "Print the two-sided probability and 2-dof chi-squared level per sigma.",
		RunE: func(_ *cobra.Command, args []string) error {
			sigmas, err := parseFloats(args)
			if err != nil {
				return err
			}
			if len(sigmas) == 0 {
				sigmas = []float64{a.cfg.Sigma}
			}

			t := newTable(a.out, "sigma", "probability", "level (2 dof)")
			for _, s := range sigmas {
				p := dist.GaussSigmaToProbability(s)
				t.row(ftoa(s), ftoa(p), ftoa(dist.ChiSquaredLevel(p, 2)))
			}
			return t.flush()
		},
	}
	addSigmaFlag(cmd)
	return cmd
}

func (a *app) poissonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poisson N...",
		Short: "Print Poisson confidence intervals for observed counts.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			counts, err := parseFloats(args)
			if err != nil {
				return err
			}

			p := dist.GaussSigmaToProbability(a.cfg.Sigma)
			a.log.Debug().Float64("sigma", a.cfg.Sigma).Float64("probability", p).Msg("poisson intervals")

			t := newTable(a.out, "n", "low", "high")
			for _, n := range counts {
				low, high := dist.PoissonConfidenceInterval(n, p)
				t.row(ftoa(n), ftoa(low), ftoa(high))
			}
			return t.flush()
		},
	}
	addSigmaFlag(cmd)
	return cmd
}

func (a *app) open(file string) (rfile.File, error) {
	a.log.Debug().Str("file", file).Msg("opening")
	return rfile.Open(file)
}

func (a *app) histCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hist FILE PATH",
		Short: "Summarize a histogram and print per-bin error margins.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			errKind, err := a.cfg.ErrorKind()
			if err != nil {
				return err
			}
			statKind, err := a.cfg.StatKind()
			if err != nil {
				return err
			}

			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			h, err := f.Hist(args[1])
			if err != nil {
				return err
			}
			a.log.Info().Str("path", args[1]).Ints("shape", h.Shape()).Msg("histogram loaded")

			stat, err := h.Statistic(statKind, a.cfg.Axis)
			if err != nil {
				return err
			}
			low, high, err := h.ErrorMargin(errKind, a.cfg.Sigma)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "path:     %s\n", args[1])
			fmt.Fprintf(a.out, "shape:    %v\n", h.Shape())
			fmt.Fprintf(a.out, "integral: %s\n", ftoa(h.Integral()))
			fmt.Fprintf(a.out, "%s(axis %d): %s\n", statKind, a.cfg.Axis, ftoa(stat))
			fmt.Fprintf(a.out, "margins:  %s, %g sigma\n\n", errKind, a.cfg.Sigma)

			content, errs := h.Content(), h.Errors()
			t := newTable(a.out, "bin", "content", "error", "low", "high")
			for i := range content {
				t.row(binLabel(h, i), ftoa(content[i]), ftoa(errs[i]), ftoa(low[i]), ftoa(high[i]))
			}
			return t.flush()
		},
	}
	addSigmaFlag(cmd)
	cmd.Flags().String("error", hist.ErrorNormal.String(), "error bars: normal or poisson")
	cmd.Flags().String("stat", binned.KindMean.String(), "statistic: mean, rms or stdev")
	cmd.Flags().Int("axis", 0, "axis the statistic is computed along")
	return cmd
}

// binLabel formats the edges of flat bin i, one interval per axis.
func binLabel(h *hist.Histogram, i int) string {
	shape := h.Shape()
	parts := make([]string, len(shape))
	for axis := len(shape) - 1; axis >= 0; axis-- {
		j := i % shape[axis]
		i /= shape[axis]
		e := h.Edges(axis)
		parts[axis] = fmt.Sprintf("[%s,%s)", ftoa(e[j]), ftoa(e[j+1]))
	}
	return strings.Join(parts, "x")
}

func (a *app) spectrumCmd() *cobra.Command {
	var pot, liveTime float64

	cmd := &cobra.Command{
		Use:   "spectrum FILE PATH (--pot V | --livetime V)",
		Short: "Print a spectrum normalized to an exposure or live time.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exposure, lt := spectrum.Unknown, spectrum.Unknown
			if cmd.Flags().Changed("pot") {
				exposure = spectrum.Known(pot)
			}
			if cmd.Flags().Changed("livetime") {
				lt = spectrum.Known(liveTime)
			}

			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := f.Spectrum(args[1])
			if err != nil {
				return err
			}
			n, err := s.Normalized(exposure, lt)
			if err != nil {
				return err
			}
			a.log.Info().Str("path", args[1]).Stringer("pot", exposure).Stringer("livetime", lt).Msg("spectrum normalized")

			fmt.Fprintf(a.out, "path:     %s\n", args[1])
			fmt.Fprintf(a.out, "pot:      %s\n", s.Exposure())
			fmt.Fprintf(a.out, "livetime: %s\n", s.LiveTime())
			fmt.Fprintf(a.out, "integral: %s\n\n", ftoa(n.Integral()))

			content, errs := n.Content(), n.Errors()
			t := newTable(a.out, "bin", "content", "error")
			for i := range content {
				t.row(binLabel(n, i), ftoa(content[i]), ftoa(errs[i]))
			}
			return t.flush()
		},
	}
	cmd.Flags().Float64Var(&pot, "pot", 0, "normalize to this integrated exposure")
	cmd.Flags().Float64Var(&liveTime, "livetime", 0, "normalize to this live time")
	cmd.MarkFlagsMutuallyExclusive("pot", "livetime")
	cmd.MarkFlagsOneRequired("pot", "livetime")
	return cmd
}

func (a *app) surfaceCmd() *cobra.Command {
	var (
		levels []float64
		best   float64
	)

	cmd := &cobra.Command{
		Use:   "surface FILE PATH",
		Short: "Print the best fit and contour levels of a frequentist surface.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := f.FrequentistSurface(args[1])
			if err != nil {
				return err
			}

			sigmas := levels
			if len(sigmas) == 0 {
				sigmas = []float64{a.cfg.Sigma}
			}
			relative := cmd.Flags().Changed("best")

			x, y := s.BestFit()
			fmt.Fprintf(a.out, "path:       %s\n", args[1])
			fmt.Fprintf(a.out, "best value: %s\n", ftoa(s.BestValue()))
			fmt.Fprintf(a.out, "best fit:   (%s, %s)\n\n", ftoa(x), ftoa(y))

			header := []string{"sigma", "level"}
			if relative {
				header = append(header, "relative")
			}
			t := newTable(a.out, header...)
			for i, l := range s.Levels(sigmas...) {
				row := []string{ftoa(sigmas[i]), ftoa(l)}
				if relative {
					row = append(row, ftoa(s.LevelRelative(sigmas[i], best)))
				}
				t.row(row...)
			}
			return t.flush()
		},
	}
	addSigmaFlag(cmd)
	cmd.Flags().Float64SliceVar(&levels, "levels", nil, "contour significances in sigma (default: --sigma)")
	cmd.Flags().Float64Var(&best, "best", 0, "external best value for relative levels")
	return cmd
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List input formats and whether this build can read them.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			t := newTable(a.out, "format", "extension", "available")
			for _, f := range rfile.Formats() {
				t.row(f.String(), f.Extension(), fmt.Sprint(rfile.Available(f)))
			}
			return t.flush()
		},
	}
}
