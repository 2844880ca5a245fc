package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/seed"
)

type linkOptions struct {
	glossary string
	samePage bool
	html     bool
	json     bool
}

func newLinkCmd() *cobra.Command {
	opts := linkOptions{}
	cmd := &cobra.Command{
		Use:   "link [text|-]",
		Short: "Link glossary terms in text",
		Long: `Links every glossary term found in the text, matching on word stems.
Reads stdin when the argument is "-" or missing. Output is markdown-style
links by default, or HTML with --html.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.glossary, "glossary", "g", DefaultDataFile, "YAML dataset holding the glossary")
	cmd.Flags().BoolVar(&opts.samePage, "same-page", false, "link to in-page anchors")
	cmd.Flags().BoolVar(&opts.html, "html", false, "render HTML")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print segments as JSON")
	return cmd
}

func runLink(cmd *cobra.Command, args []string, opts linkOptions) error {
	if opts.html && opts.json {
		return fmt.Errorf("--html and --json are mutually exclusive")
	}

	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	d, err := seed.LoadFile(opts.glossary)
	if err != nil {
		return err
	}
	entries := d.Glossary
	glossary.SortByWord(entries)

	segs := linker.Default.LinkText(text, entries, opts.samePage)

	switch {
	case opts.html:
		fmt.Fprintln(cmd.OutOrStdout(), linker.RenderHTML(segs, func(word string) (string, bool) {
			e, ok := glossary.Find(entries, word)
			return e.Definition, ok
		}))
	case opts.json:
		data, err := json.MarshalIndent(segmentsJSON(segs), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), markdown(segs))
	}
	return nil
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func markdown(segs []linker.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.IsLink() {
			fmt.Fprintf(&b, "[%s](%s)", s.Display(), s.Href())
			continue
		}
		b.WriteString(s.Value())
	}
	return b.String()
}

type segmentJSON struct {
	Kind  string   `json:"kind"`
	Value string   `json:"value"`
	Href  string   `json:"href,omitempty"`
	Also  []string `json:"also,omitempty"`
}

func segmentsJSON(segs []linker.Segment) []segmentJSON {
	out := make([]segmentJSON, len(segs))
	for i, s := range segs {
		if !s.IsLink() {
			out[i] = segmentJSON{Kind: "text", Value: s.Value()}
			continue
		}
		out[i] = segmentJSON{Kind: "link", Value: s.Display(), Href: s.Href(), Also: s.Also()}
	}
	return out
}
