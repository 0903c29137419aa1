package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/projector"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

var (
	renderLayout  string
	renderOutDir  string
	renderPDF     bool
	renderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render <cv-data.json>",
	Short: "Render a CV data file to HTML (and optionally PDF)",
	Long: `Validate a CV data JSON file against the schema and project it through
one layout variant, or through all variants when --layout is omitted.
Output files are named <basename>.<layout>.html in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderLayout, "layout", "", "Layout identifier (layout-a, layout-b, layout-c); empty renders all")
	renderCmd.Flags().StringVar(&renderOutDir, "out", ".", "Output directory")
	renderCmd.Flags().BoolVar(&renderPDF, "pdf", false, "Also export each rendered layout to PDF (requires Chrome)")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 30*time.Second, "Per-file PDF export timeout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	dataPath := args[0]

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dataPath, err)
	}
	if err := schemas.ValidateCVData(raw); err != nil {
		return fmt.Errorf("invalid CV data: %w", err)
	}

	var data types.CVData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", dataPath, err)
	}

	targets := projector.Variants()
	if renderLayout != "" {
		v, ok := projector.Lookup(renderLayout)
		if !ok {
			return fmt.Errorf("unknown layout %q", renderLayout)
		}
		targets = []projector.Projector{v}
	}

	if err := os.MkdirAll(renderOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
	title := base

	g, gCtx := errgroup.WithContext(cmd.Context())
	for _, v := range targets {
		g.Go(func() error {
			doc := projector.Project(&data, v.ID())
			page := export.Standalone(title, doc.HTML)

			htmlPath := filepath.Join(renderOutDir, fmt.Sprintf("%s.%s.html", base, v.ID()))
			if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", htmlPath, err)
			}
			fmt.Printf("Wrote %s\n", htmlPath)

			if !renderPDF {
				return nil
			}
			ctx, cancel := context.WithTimeout(gCtx, renderTimeout)
			defer cancel()
			pdf, err := export.ToPDF(ctx, page, export.Options{Timeout: renderTimeout})
			if err != nil {
				return fmt.Errorf("pdf export of %s failed: %w", v.ID(), err)
			}
			pdfPath := filepath.Join(renderOutDir, fmt.Sprintf("%s.%s.pdf", base, v.ID()))
			if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", pdfPath, err)
			}
			fmt.Printf("Wrote %s\n", pdfPath)
			return nil
		})
	}

	return g.Wait()
}
