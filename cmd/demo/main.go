package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"thompson/internal/config"
	"thompson/regexlib"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	logger := cfg.Logger()

	re := regexlib.MustCompile("a(b|c)*d")
	for _, in := range []string{"abcbcd", "ad", "abbce"} {
		fmt.Printf("%s matches %q: %v\n", re, in, re.Matches(in))
	}

	// interactive: a pattern, then inputs until :q
	if err := repl(os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("read failed", "err", err)
		os.Exit(1)
	}
}

// quit ends the input list at the text prompt and the session at the pattern
// prompt. An empty line is the empty pattern or the empty input.
const quit = ":q"

func repl(r io.Reader, w io.Writer, logger *slog.Logger) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "pattern> ")
		if !sc.Scan() {
			return sc.Err()
		}
		pat := strings.TrimRight(sc.Text(), "\r")
		if pat == quit {
			return nil
		}
		re, err := regexlib.Compile(pat, regexlib.WithLogger(logger))
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			continue
		}
		logger.Debug("pattern ready", "pattern", pat, "states", re.NFA().Len())
		for {
			fmt.Fprint(w, "text> ")
			if !sc.Scan() {
				return sc.Err()
			}
			text := strings.TrimRight(sc.Text(), "\r")
			if text == quit {
				break
			}
			fmt.Fprintln(w, verdict(re.Matches(text)))
		}
	}
}

func verdict(ok bool) string {
	if ok {
		return "accept"
	}
	return "reject"
}
