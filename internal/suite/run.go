package suite

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"

	"thompson/regexlib"
)

// Failure is one expectation the compiler did not meet.
type Failure struct {
	Pos     lexer.Position
	Pattern string
	Input   string
	Want    bool
	Err     error // set when compilation itself went the wrong way
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: pattern %q: %v", f.Pos, f.Pattern, f.Err)
	}
	verb := "reject"
	if f.Want {
		verb = "accept"
	}
	return fmt.Sprintf("%s: pattern %q should %s %q", f.Pos, f.Pattern, verb, f.Input)
}

// Report summarizes a run.
type Report struct {
	Cases    int
	Checks   int
	Failures []Failure
}

func (r Report) OK() bool { return len(r.Failures) == 0 }

type job struct {
	re    *regexlib.Regex
	c     *Case
	check *Check
	input string
}

// Run compiles every case and checks every input with at most workers
// goroutines. Inputs of one case are checked concurrently against the same
// compiled Regex. Failures are reported in suite order. A nil logger
// discards.
func Run(s *Suite, workers int, logger *slog.Logger) Report {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	report := Report{Cases: len(s.Cases)}

	// compile
	compiled := make([]*regexlib.Regex, len(s.Cases))
	caseFailures := make([][]Failure, len(s.Cases))
	forEach(len(s.Cases), workers, func(i int) {
		c := s.Cases[i]
		re, err := regexlib.Compile(c.Pattern, regexlib.WithLogger(logger))
		switch {
		case c.Invalid && err == nil:
			caseFailures[i] = []Failure{{Pos: c.Pos, Pattern: c.Pattern, Err: fmt.Errorf("compiled, want a syntax fault")}}
		case !c.Invalid && err != nil:
			caseFailures[i] = []Failure{{Pos: c.Pos, Pattern: c.Pattern, Err: err}}
		default:
			compiled[i] = re
		}
	})

	// check
	var jobs []job
	for i, c := range s.Cases {
		if compiled[i] == nil {
			continue
		}
		for _, check := range c.Checks {
			for _, in := range check.Inputs {
				jobs = append(jobs, job{re: compiled[i], c: c, check: check, input: in})
			}
		}
	}
	report.Checks = len(jobs)
	missed := make([]bool, len(jobs))
	forEach(len(jobs), workers, func(i int) {
		j := jobs[i]
		missed[i] = j.re.Matches(j.input) != j.check.Want()
	})

	// collect in suite order
	byCase := map[*Case][]Failure{}
	for i, j := range jobs {
		if missed[i] {
			f := Failure{Pos: j.check.Pos, Pattern: j.c.Pattern, Input: j.input, Want: j.check.Want()}
			byCase[j.c] = append(byCase[j.c], f)
		}
	}
	for i, c := range s.Cases {
		report.Failures = append(report.Failures, caseFailures[i]...)
		report.Failures = append(report.Failures, byCase[c]...)
	}
	for _, f := range report.Failures {
		logger.Warn("check failed", "at", f.Pos.String(), "pattern", f.Pattern, "input", f.Input, "want", f.Want, "err", f.Err)
	}
	logger.Info("suite done", "cases", report.Cases, "checks", report.Checks, "failures", len(report.Failures))
	return report
}

// forEach calls fn(0..n-1) from a pool of workers goroutines.
func forEach(n, workers int, fn func(int)) {
	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
}
