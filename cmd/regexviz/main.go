// Command regexviz renders the Thompson NFA of a pattern as a transition
// table, a syntax tree, Graphviz DOT or generated Go source.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"

	"thompson/internal/automaton"
	"thompson/internal/codegen"
	"thompson/internal/config"
	"thompson/regexlib"
)

func main() {
	pattern := flag.String("re", "", "pattern (required)")
	configPath := flag.String("config", "", "path to YAML config file")
	format := flag.String("format", "", "output format: text, tree, dot or go (overrides config)")
	outFile := flag.String("o", "-", "output file, - for stdout")
	pngFlag := flag.Bool("png", false, "render PNG via dot -Tpng (dot format only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *format != "" {
		cfg.Format = *format
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
	}
	logger := cfg.Logger()

	if !isFlagSet("re") {
		fmt.Fprintln(os.Stderr, "usage: regexviz -re <pattern> [-format text|tree|dot|go] [-o file] [-png] [-config file]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	re, err := regexlib.Compile(*pattern, regexlib.WithLogger(logger))
	if err != nil {
		logger.Error("compile failed", "err", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := render(&buf, re, cfg); err != nil {
		logger.Error("render failed", "format", cfg.Format, "err", err)
		os.Exit(1)
	}

	if *pngFlag {
		if cfg.Format != "dot" {
			logger.Error("-png needs the dot format", "format", cfg.Format)
			os.Exit(2)
		}
		if *outFile == "-" {
			*outFile = "graph.png"
		}
		cmd := exec.Command("dot", "-Tpng", "-o", *outFile)
		cmd.Stdin = bytes.NewReader(buf.Bytes())
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Error("dot failed", "err", err)
			os.Exit(1)
		}
		logger.Info("PNG written", "file", *outFile)
		return
	}

	var w io.Writer = os.Stdout
	if *outFile != "-" {
		f, err := os.Create(*outFile)
		if err != nil {
			logger.Error("cannot create output", "file", *outFile, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if _, err := io.Copy(w, &buf); err != nil {
		logger.Error("write failed", "err", err)
		os.Exit(1)
	}
	if *outFile != "-" {
		logger.Info("output written", "file", *outFile, "format", cfg.Format)
	}
}

func render(w io.Writer, re *regexlib.Regex, cfg config.Config) error {
	switch cfg.Format {
	case "text":
		_, err := fmt.Fprintln(w, re.NFA())
		return err
	case "tree":
		_, err := fmt.Fprintf(w, "%T %s\n", re.Tree(), re.Tree())
		return err
	case "go":
		return codegen.Write(w, re.NFA(), codegen.Config{
			Package: cfg.Codegen.Package,
			Name:    cfg.Codegen.Name,
			Pattern: re.String(),
		})
	default:
		return re.WriteDOT(w, automaton.DOTOptions{RankDir: cfg.DOT.RankDir})
	}
}

// isFlagSet distinguishes -re "" (the empty pattern) from a missing -re.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
