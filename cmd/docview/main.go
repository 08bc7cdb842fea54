// Package main provides the docview command line tool.
//
// docview opens raster images, SVG files and PDF documents through one
// document abstraction and exposes rendering, transformation and thumbnail
// generation from the shell.
//
// # Basic Usage
//
// Inspect a document:
//
//	docview info photo.jpg
//
// Render with transformations:
//
//	docview render report.pdf -o page3.png --page 2 --rotate 90 --scale 2
//
// Generate page thumbnails incrementally:
//
//	docview thumbs report.pdf
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/docview"
)

func main() {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "docview",
		Short:         "View and transform raster, vector and portable documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			docview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		buildInfoCmd(&configPath),
		buildRenderCmd(&configPath),
		buildThumbsCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docview:", err)
		os.Exit(1)
	}
}
