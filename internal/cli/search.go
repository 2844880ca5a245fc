package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	"github.com/kailas-cloud/gallformers/internal/seed"
	searchuc "github.com/kailas-cloud/gallformers/internal/usecase/search"
)

type searchOptions struct {
	file   string
	query  filter.Query
	limit  int
	offset int
	json   bool
}

func newSearchCmd() *cobra.Command {
	opts := searchOptions{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter galls by their characteristics",
		Long: `Runs the gall filter over a YAML dataset. A gall matches when every
given facet matches; facets left empty are ignored. Repeat --location,
--texture and --host to require several values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", DefaultDataFile, "YAML dataset")
	f.StringVar(&opts.query.Color, "color", "", "color")
	f.StringVar(&opts.query.Shape, "shape", "", "shape")
	f.StringVar(&opts.query.Alignment, "alignment", "", "alignment")
	f.StringVar(&opts.query.Walls, "walls", "", "walls")
	f.StringVar(&opts.query.Cells, "cells", "", "cells")
	f.StringVar(&opts.query.Season, "season", "", "season")
	f.StringVar(&opts.query.Form, "form", "", "form")
	f.StringVar(&opts.query.Detachable, "detachable", "", "yes, no or unsure")
	f.StringArrayVar(&opts.query.Locations, "location", nil, fmt.Sprintf("location (%q matches any leaf location)", filter.LeafAnywhere))
	f.StringArrayVar(&opts.query.Textures, "texture", nil, "texture")
	f.StringArrayVar(&opts.query.Hosts, "host", nil, "host species")
	f.BoolVar(&opts.query.Undescribed, "undescribed", false, "only undescribed galls")
	f.IntVarP(&opts.limit, "limit", "n", request.DefaultLimit, "maximum number of results")
	f.IntVar(&opts.offset, "offset", 0, "number of results to skip")
	f.BoolVar(&opts.json, "json", false, "output results as JSON")
	return cmd
}

// datasetGalls serves a dataset's galls as search candidates.
type datasetGalls []gall.Gall

func (d datasetGalls) All(context.Context) ([]gall.Gall, error) { return d, nil }

func runSearch(cmd *cobra.Command, opts searchOptions) error {
	q := opts.query
	q.Detachable = filter.NormalizeDetachable(q.Detachable)

	req, err := request.New(q, opts.limit, opts.offset)
	if err != nil {
		return err
	}

	d, err := seed.LoadFile(opts.file)
	if err != nil {
		return err
	}

	res, err := searchuc.New(datasetGalls(d.Galls)).Search(cmd.Context(), &req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if opts.json {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(res.Galls) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No galls found.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d matching galls:\n", len(res.Galls), res.Total)
	for _, g := range res.Galls {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-32s %s\n", g.ID, g.Name)
		if len(g.Hosts) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-32s hosts: %s\n", "", strings.Join(g.Hosts, ", "))
		}
	}
	return nil
}
