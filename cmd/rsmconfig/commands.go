package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rsmconfig/domain/configuration"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/container"
	"rsmconfig/internal/errors"
)

// resolveContext picks the --context flag, falling back to RSMCONFIG_CONTEXT
func resolveContext(cmd *cobra.Command, c *container.Container) (schema.Context, error) {
	flag, _ := cmd.Flags().GetString("context")
	if flag == "" {
		return c.Config.Parser.Context, nil
	}
	return schema.ParseContext(flag)
}

func newValidateCmd() *cobra.Command {
	var save bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate one or more configuration files",
		Long: `Validate configuration files concurrently. Each file is normalized and
checked against the schema of the selected context.

Example: rsmconfig validate -c rsmeval eval1.json eval2.json --save --output-dir results`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, err := resolveContext(cmd, c)
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = c.Config.Output.Dir
			}
			return runValidate(cmd, c, ctx, args, save, outputDir)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the normalized configuration to <output-dir>/output")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for saved configurations (default: RSMCONFIG_OUTPUT_DIR or the working directory)")
	return cmd
}

type validateResult struct {
	path  string
	cfg   *configuration.Configuration
	saved string
	err   error
}

// runValidate parses every file concurrently, then saves the valid ones.
// Files that would be saved to the same output path are all reported as
// conflicts and none of them is written.
func runValidate(cmd *cobra.Command, c *container.Container, ctx schema.Context, paths []string, save bool, outputDir string) error {
	results := make([]validateResult, len(paths))

	err := forEach(cmd.Context(), c.Config.Parser.Workers, len(paths), func(i int) {
		results[i] = validateOne(c, ctx, paths[i])
	})
	if err != nil {
		return err
	}

	if save {
		markOutputConflicts(results, outputDir)
		err := forEach(cmd.Context(), c.Config.Parser.Workers, len(results), func(i int) {
			saveOne(c, &results[i], outputDir)
		})
		if err != nil {
			return err
		}
	}

	failed := 0
	out := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.err != nil:
			failed++
			fmt.Fprintf(out, "FAIL %s [%s]: %v\n", r.path, errors.GetCode(r.err), r.err)
		case r.saved != "":
			fmt.Fprintf(out, "OK   %s -> %s\n", r.path, r.saved)
		default:
			fmt.Fprintf(out, "OK   %s\n", r.path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d configuration files failed validation", failed, len(paths))
	}
	return nil
}

// forEach runs fn for 0..n-1 on at most workers goroutines
func forEach(ctx context.Context, workers, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	return g.Wait()
}

func validateOne(c *container.Container, ctx schema.Context, path string) validateResult {
	cfg, err := c.Parser.FromFile(path, ctx)
	if err != nil {
		c.Logger.Debug("validation failed", zap.String("path", path), zap.Error(err))
		return validateResult{path: path, err: err}
	}
	return validateResult{path: path, cfg: cfg}
}

func markOutputConflicts(results []validateResult, outputDir string) {
	targets := make(map[string][]int)
	for i := range results {
		r := &results[i]
		if r.err != nil {
			continue
		}
		target, err := r.cfg.OutputPath(outputDir)
		if err != nil {
			r.err = err
			continue
		}
		targets[target] = append(targets[target], i)
	}

	for target, idx := range targets {
		if len(idx) < 2 {
			continue
		}
		sources := make([]string, len(idx))
		for j, i := range idx {
			sources[j] = results[i].path
		}
		for _, i := range idx {
			results[i].err = errors.Newf(errors.CodeOutputConflict,
				"%s would be written by more than one file: %s", target, strings.Join(sources, ", "))
		}
	}
}

func saveOne(c *container.Container, r *validateResult, outputDir string) {
	if r.err != nil {
		return
	}
	saved, err := r.cfg.Save(outputDir)
	if err != nil {
		r.err = err
		return
	}
	c.Logger.Info("configuration saved", zap.String("path", r.path), zap.String("saved", saved))
	r.saved = saved
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the normalized configuration with defaults filled in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, err := resolveContext(cmd, c)
			if err != nil {
				return err
			}
			cfg, err := c.Parser.FromFile(args[0], ctx)
			if err != nil {
				return err
			}
			if h, err := cfg.Fingerprint(); err == nil {
				c.Logger.Debug("configuration loaded", zap.String("fingerprint", h.Short()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Print a configuration template for a context",
		Long: `Print every field of the selected context. Required fields are null and
must be filled in; optional fields show their defaults.

Example: rsmconfig generate -c rsmsummarize > summary.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, err := resolveContext(cmd, c)
			if err != nil {
				return err
			}
			return writeTemplate(cmd.OutOrStdout(), ctx)
		},
	}
}

func writeTemplate(w io.Writer, ctx schema.Context) error {
	d, err := schema.Lookup(ctx)
	if err != nil {
		return err
	}
	out, err := d.Template().MarshalIndent()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newObjectivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "objectives",
		Short: "List the tuning objectives accepted for learner models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}
			defer c.Close()

			for _, name := range c.Capabilities.Objectives() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
