// Command regexcheck runs pattern suite files against the compiler and exits
// non-zero when any expectation fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"thompson/internal/config"
	"thompson/internal/suite"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	workers := flag.Int("workers", 0, "parallel checks (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-config file] [-workers n] <suite file>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *workers > 0 {
		cfg.Check.Workers = *workers
	}
	logger := cfg.Logger()

	failed := false
	for _, path := range flag.Args() {
		s, err := suite.ParseFile(path)
		if err != nil {
			logger.Error("cannot load suite", "file", path, "err", err)
			failed = true
			continue
		}
		report := suite.Run(s, cfg.Check.Workers, logger.With("file", path))
		for _, f := range report.Failures {
			fmt.Println(f)
		}
		if !report.OK() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
