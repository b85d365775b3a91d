package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CadixDev/Lorenz-sub001/internal/classindex"
	"github.com/CadixDev/Lorenz-sub001/internal/metrics"
	"github.com/CadixDev/Lorenz-sub001/model"
	"github.com/CadixDev/Lorenz-sub001/remap"
)

// ErrBadQuery is returned for queries that name no member.
var ErrBadQuery = errors.New("malformed query")

type remapOptions struct {
	mappings   string
	index      string
	metricsOut string
}

func (a *app) remapCmd() *cobra.Command {
	var opts remapOptions

	cmd := &cobra.Command{
		Use:   "remap --mappings FILE [--index FILE] QUERY...",
		Short: "Look up de-obfuscated names",
		Long: `Look up de-obfuscated names. Member lookups follow the class hierarchy
described by the class index, so inherited mappings are found.

Queries:
  owner                  class name
  owner#name             field
  owner#name:Type        field with descriptor
  owner#name(args)ret    method

Examples:
  lorenz remap --mappings a-b.tsrg ght ght#iu 'ght#trp()V'
  lorenz remap --mappings a-b.tsrg --index classes.yaml 'Derived#helloWorld()V'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runRemap(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mappings, "mappings", "m", "", "mapping file")
	cmd.Flags().StringVarP(&opts.index, "index", "i", "", "class index YAML describing the hierarchy")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")

	_ = cmd.MarkFlagRequired("mappings")

	return cmd
}

func (a *app) runRemap(queries []string, opts remapOptions) error {
	set, err := a.loadSet(opts.mappings)
	if err != nil {
		return err
	}

	var provider model.InheritanceProvider

	if opts.index != "" {
		idx, err := classindex.Load(opts.index)
		if err != nil {
			return err
		}

		set.AddFieldTypeProvider(idx)
		provider = idx
	}

	r := remap.New(set, provider, remap.WithLogger(a.log))

	for _, q := range queries {
		answer, err := answerQuery(r, q)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.stdout, "%s -> %s\n", q, answer)
	}

	if opts.metricsOut != "" {
		stats := r.Stats()

		rec := metrics.NewRecorder()
		rec.RecordRemap(metrics.RemapStats{
			DirectHits:    stats.DirectHits,
			InheritedHits: stats.InheritedHits,
			Misses:        stats.Misses,
			Completions:   stats.Completions,
		})

		if err := rec.WriteTextfile(opts.metricsOut); err != nil {
			return err
		}
	}

	return nil
}

func answerQuery(r *remap.Remapper, q string) (string, error) {
	owner, member, ok := strings.Cut(q, "#")
	if !ok {
		return r.MapClassName(q), nil
	}

	if owner == "" || member == "" {
		return "", fmt.Errorf("%w: %q", ErrBadQuery, q)
	}

	if i := strings.IndexByte(member, '('); i >= 0 {
		name, desc := member[:i], member[i:]
		if name == "" {
			return "", fmt.Errorf("%w: %q", ErrBadQuery, q)
		}

		return r.MapMethodName(owner, name, desc), nil
	}

	name, desc, _ := strings.Cut(member, ":")

	return r.MapFieldName(owner, name, desc), nil
}
