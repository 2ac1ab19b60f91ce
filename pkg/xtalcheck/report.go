package xtalcheck

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

// Result is the outcome of checking one clock.
type Result struct {
	Clock Clock
	Err   error
}

// OK reports whether the crystal of the clock is known.
func (r Result) OK() bool { return r.Err == nil }

// Unknown returns the diagnostic for a rejected crystal, or nil.
func (r Result) Unknown() *xtal.UnknownFrequencyError {
	var ufe *xtal.UnknownFrequencyError
	if errors.As(r.Err, &ufe) {
		return ufe
	}
	return nil
}

// Report is the outcome of one check.
type Report struct {
	CheckedAt time.Time
	Results   []Result

	// Aborted is set when FailFast stopped the check early.
	Aborted bool
}

// OK reports whether every checked clock passed.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return false
		}
	}
	return true
}

// Failures returns the results that did not pass.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// WriteTo writes one aligned line per clock.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)

	for _, res := range r.Results {
		x := res.Clock.XTAL()
		status := "ok"
		detail := ""
		if !res.OK() {
			status = "FAIL"
			detail = res.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s Hz\t%s\t%s\n",
			status, res.Clock.Name, xtal.FormatHz(x.Base()), x, detail)
	}
	if r.Aborted {
		fmt.Fprintln(tw, "aborted after first failure")
	}
	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
