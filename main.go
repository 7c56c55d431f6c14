package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/loc-audit/internal/scan"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "loc-audit",
		Usage: "crawl a site and score its localization health",
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Usage:  "crawl a site, detect localization defects and export reports",
				Action: scan.ScanAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "path to YAML config file",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "start URL to crawl",
					},
					&cli.StringFlag{
						Name:  "languages",
						Usage: "comma-separated target language codes, e.g. \"es,hi\"",
					},
					&cli.StringFlag{
						Name:  "base-language",
						Usage: "source language of the site (default from config, \"en\")",
					},
					&cli.IntFlag{
						Name:  "max-pages",
						Usage: "page budget for the crawl",
					},
					&cli.StringFlag{
						Name:  "render-mode",
						Usage: "\"browser\" for headless Chrome, \"static\" for plain HTTP",
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "lingo.dev API key; mock suggestions are used when absent",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "directory for report artifacts",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "log debug detail, including unflagged placeholder hits",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "list previous scan runs and their scores",
				Action: scan.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of runs to list",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
