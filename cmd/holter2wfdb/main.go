// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// holter2wfdb converts binary Holter (and XCM) ECG recordings into the
// WFDB-style interchange trio. Each input file is converted independently,
// so multiple conversions can run side by side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/OpenPSG/holter"
	"github.com/OpenPSG/holter/xcm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type config struct {
	outDir  string
	format  string
	jobs    int
	xcmOpts xcm.Options
}

func main() {
	var (
		cfg     config
		bits    int
		verbose bool
	)
	flag.StringVar(&cfg.outDir, "out", ".", "output directory for the interchange files")
	flag.StringVar(&cfg.format, "format", "bin", "input format: bin or xcm")
	flag.IntVar(&cfg.jobs, "jobs", 1, "number of conversions to run concurrently")
	flag.IntVar(&cfg.xcmOpts.HeaderSize, "xcm-header", 0, "XCM header bytes to skip")
	flag.IntVar(&bits, "xcm-bits", 16, "XCM sample width in bits: 8 or 16")
	flag.IntVar(&cfg.xcmOpts.SampleRate, "xcm-rate", xcm.DefaultSampleRate, "XCM sample rate in Hz")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: holter2wfdb [flags] <recording>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	switch bits {
	case 8:
		cfg.xcmOpts.SampleType = xcm.Int8
	case 16:
		cfg.xcmOpts.SampleType = xcm.Int16
	default:
		logger.Fatal().Int("bits", bits).Msg("unsupported XCM sample width")
	}
	if cfg.jobs < 1 {
		cfg.jobs = 1
	}

	ctx := logger.WithContext(context.Background())
	if err := run(ctx, flag.Args(), cfg); err != nil {
		logger.Fatal().Err(err).Msg("conversion failed")
	}
}

func run(ctx context.Context, paths []string, cfg config) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			var err error
			switch cfg.format {
			case "bin":
				_, err = holter.Convert(ctx, path, cfg.outDir)
			case "xcm":
				_, err = xcm.Convert(ctx, path, cfg.outDir, cfg.xcmOpts)
			default:
				err = fmt.Errorf("unknown format %q", cfg.format)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}

	return g.Wait()
}
