package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/okian/talentscope/internal/adapters/batch"
	"github.com/okian/talentscope/internal/adapters/predictor"
	"github.com/okian/talentscope/internal/adapters/repository"
	app "github.com/okian/talentscope/internal/app"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/fixtures"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/spf13/cobra"
)

// output writes v to path, or to w when path is empty or "-". The format
// flag wins over the path extension.
func output(w io.Writer, path, format string, v any) error {
	f := batch.FormatJSON
	if path != "" && path != "-" {
		f = batch.FormatForPath(path)
	}
	if format != "" {
		var err error
		if f, err = batch.ParseFormat(format); err != nil {
			return err
		}
	}
	if path == "" || path == "-" {
		return batch.Encode(w, f, v)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := batch.Encode(file, f, v); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

type outputFlags struct {
	out    string
	format string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: json|yaml (default from --out extension, else json)")
}

func (o *outputFlags) write(cmd *cobra.Command, v any) error {
	return output(cmd.OutOrStdout(), o.out, o.format, v)
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var of outputFlags
	cmd := &cobra.Command{
		Use:   "analyze <batch>...",
		Short: "Analyze batch files through the worker pool and write one report per batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			batches, err := readBatches(args)
			if err != nil {
				return err
			}

			svc, err := c.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			reports := make([]*batch.Report, 0, len(batches))
			for i, b := range batches {
				report, err := svc.RunBatch(ctx, b)
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				c.log.Info(ctx, "batch analyzed",
					logger.String("file", args[i]),
					logger.String("batchId", report.BatchID),
					logger.Int("results", len(report.Results)),
				)
				reports = append(reports, report)
			}

			if len(reports) == 1 {
				return of.write(cmd, reports[0])
			}
			return of.write(cmd, reports)
		},
	}
	of.register(cmd)
	return cmd
}

// childSummary is the per-child view written by the summary command.
type childSummary struct {
	Summary         repository.Summary          `json:"summary" yaml:"summary"`
	Recommendations []repository.Recommendation `json:"recommendations" yaml:"recommendations"`
	Assessments     []model.TalentAssessment    `json:"assessments,omitempty" yaml:"assessments,omitempty"`
}

func newSummaryCmd(c *cli) *cobra.Command {
	var (
		of      outputFlags
		childID string
	)
	cmd := &cobra.Command{
		Use:   "summary <batch>",
		Short: "Analyze a batch and write per-child passion summaries and recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := batch.ReadFile(args[0])
			if err != nil {
				return err
			}

			svc, err := c.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if _, err := svc.RunBatch(ctx, b); err != nil {
				return err
			}
			out, err := summarize(ctx, svc.Store(), childIDs(b, childID))
			if err != nil {
				return err
			}
			return of.write(cmd, out)
		},
	}
	of.register(cmd)
	cmd.Flags().StringVar(&childID, "child", "", "only summarize this child")
	return cmd
}

// summarize collects stored results per child. Children with nothing
// stored are left out; missing sessions or responses leave their parts empty.
func summarize(ctx context.Context, store repository.Store, ids []string) ([]childSummary, error) {
	out := make([]childSummary, 0, len(ids))
	for _, id := range ids {
		sum, err := store.Summary(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		recs, err := store.Recommendations(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if recs == nil {
			recs = []repository.Recommendation{}
		}
		assessments, err := store.Assessments(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		out = append(out, childSummary{Summary: sum, Recommendations: recs, Assessments: assessments})
	}
	return out, nil
}

// childIDs lists batch children in input order, optionally narrowed to one.
func childIDs(b *batch.Batch, only string) []string {
	ids := make([]string, 0, len(b.Children))
	for i := range b.Children {
		if only != "" && b.Children[i].ChildID != only {
			continue
		}
		ids = append(ids, b.Children[i].ChildID)
	}
	return ids
}

func newAssessCmd(c *cli) *cobra.Command {
	var (
		of      outputFlags
		childID string
	)
	cmd := &cobra.Command{
		Use:   "assess <batch>",
		Short: "Run talent assessments on the question responses of a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := batch.ReadFile(args[0])
			if err != nil {
				return err
			}

			svc, err := c.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			assessments, err := assess(ctx, svc, b, childID)
			if err != nil {
				return err
			}
			return of.write(cmd, assessments)
		},
	}
	of.register(cmd)
	cmd.Flags().StringVar(&childID, "child", "", "only assess this child")
	return cmd
}

func assess(ctx context.Context, svc *app.Service, b *batch.Batch, only string) ([]model.TalentAssessment, error) {
	out := make([]model.TalentAssessment, 0, len(b.Children))
	for i := range b.Children {
		ch := &b.Children[i]
		if only != "" && ch.ChildID != only {
			continue
		}
		a, err := svc.AnalyzeResponses(ctx, ch.Responses, ch.ChildProfile())
		if err != nil {
			return nil, fmt.Errorf("child %s: %w", ch.ChildID, err)
		}
		out = append(out, a)
	}
	if only != "" && len(out) == 0 {
		return nil, fmt.Errorf("child %q: %w", only, repository.ErrNotFound)
	}
	return out, nil
}

// domainView is the serialized form of a catalog domain.
type domainView struct {
	ID          catalog.ID `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Keywords    []string   `json:"keywords" yaml:"keywords"`
	Indicators  []string   `json:"indicators" yaml:"indicators"`
	Activities  []string   `json:"activities" yaml:"activities"`
	Careers     []string   `json:"careers" yaml:"careers"`
}

func newCatalogCmd(_ *cli) *cobra.Command {
	var of outputFlags
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the talent domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := catalog.Default()
			if of.out == "" && of.format == "" {
				return writeCatalogTable(cmd.OutOrStdout(), c)
			}
			views := make([]domainView, 0, c.Len())
			for _, d := range c.Domains() {
				views = append(views, domainView(d))
			}
			return of.write(cmd, views)
		},
	}
	of.register(cmd)
	return cmd
}

func writeCatalogTable(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tKEYWORDS")
	for _, d := range c.Domains() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, strings.Join(d.Keywords, ", "))
	}
	return tw.Flush()
}

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		of        outputFlags
		children  int
		sessions  int
		responses int
		seed      uint64
		now       string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic batch for demos and load tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opts := []fixtures.Option{
				fixtures.WithChildren(children),
				fixtures.WithSessions(sessions),
				fixtures.WithResponses(responses),
				fixtures.WithSeed(seed),
				fixtures.WithLogger(c.log.Named("fixtures")),
			}
			if now != "" {
				at, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("parse --now %q: %w", now, err)
				}
				opts = append(opts, fixtures.WithNow(at.UTC()))
			}
			gen := fixtures.New(catalog.Default(), opts...)
			b, err := gen.Batch(ctx)
			if err != nil {
				return err
			}
			c.log.Debug(ctx, "batch generated",
				logger.Int("children", len(b.Children)),
				logger.Int("games", len(b.Games)),
			)
			return of.write(cmd, b)
		},
	}
	of.register(cmd)
	cmd.Flags().IntVar(&children, "children", 10, "number of children")
	cmd.Flags().IntVar(&sessions, "sessions", 12, "sessions per child")
	cmd.Flags().IntVar(&responses, "responses", 10, "question responses per child")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed; equal seeds and --now give equal batches")
	cmd.Flags().StringVar(&now, "now", "", "RFC3339 reference time sessions are dated against (default current time)")
	return cmd
}

// modelsView reports the predictors found in a model directory.
type modelsView struct {
	Dir     string         `json:"dir" yaml:"dir"`
	Version string         `json:"version,omitempty" yaml:"version,omitempty"`
	Domains []catalog.ID   `json:"domains" yaml:"domains"`
	Skipped []string       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Invalid []invalidModel `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

type invalidModel struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

func newModelsCmd(c *cli) *cobra.Command {
	var of outputFlags
	cmd := &cobra.Command{
		Use:   "models [dir]",
		Short: "Validate and list the predictor models in a directory (default model_dir)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.cfg.ModelDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("%w: no model directory given", predictor.ErrModelFile)
			}

			set, skipped, err := predictor.LoadDir(catalog.Default(), dir, c.cfg.ModelVersion)
			if err != nil {
				return err
			}
			view := modelsView{
				Dir:     dir,
				Version: set.Version(),
				Domains: set.Domains(),
			}
			for _, sk := range skipped {
				if sk.Invalid() {
					view.Invalid = append(view.Invalid, invalidModel{File: sk.File, Reason: sk.Err.Error()})
					continue
				}
				c.log.Warn(cmd.Context(), "model file for unknown domain skipped", logger.String("file", sk.File))
				view.Skipped = append(view.Skipped, sk.File)
			}
			if err := of.write(cmd, view); err != nil {
				return err
			}
			if len(view.Invalid) > 0 {
				return fmt.Errorf("%w: %d invalid model files in %s", predictor.ErrModelFile, len(view.Invalid), dir)
			}
			return nil
		},
	}
	of.register(cmd)
	return cmd
}

func readBatches(paths []string) ([]*batch.Batch, error) {
	out := make([]*batch.Batch, 0, len(paths))
	for _, p := range paths {
		b, err := batch.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
