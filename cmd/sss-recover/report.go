package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/smallyu/go-sss-recover/internal/protocol/reconstruct"
)

func writeJSON(w io.Writer, report *reconstruct.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeText(w io.Writer, report *reconstruct.Report) error {
	var b strings.Builder

	fmt.Fprintln(&b, "Decoded points:")
	for _, p := range report.Points {
		fmt.Fprintf(&b, "  x = %d, y = %d\n", p.X, p.Y)
	}
	fmt.Fprintf(&b, "Number of points required (k): %d\n", report.K)
	if report.N != len(report.Points) {
		fmt.Fprintf(&b, "Declared share count (n): %d\n", report.N)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Secret candidate per combination:")
	for _, r := range report.Subsets {
		fmt.Fprintf(&b, "  %s", r.Points[0])
		for _, p := range r.Points[1:] {
			fmt.Fprintf(&b, " %s", p)
		}
		switch {
		case r.Skipped():
			fmt.Fprintf(&b, "  skipped: %v\n", r.Err)
		case r.Exact != "":
			fmt.Fprintf(&b, "  c = %d (exact %s)", r.Secret, r.Exact)
			if r.PrecisionLoss {
				fmt.Fprint(&b, " PRECISION LOSS")
			}
			fmt.Fprintln(&b)
		default:
			fmt.Fprintf(&b, "  c = %d\n", r.Secret)
		}
	}
	if report.Skipped > 0 {
		fmt.Fprintf(&b, "Skipped %d of %d combinations.\n", report.Skipped, len(report.Subsets))
	}

	fmt.Fprintln(&b)
	v := report.Verdict
	switch {
	case v.Unique:
		fmt.Fprintf(&b, "All combinations gave the SAME secret c = %d\n", v.Secret)
	case len(v.Values) == 0:
		fmt.Fprintln(&b, "No combination could be solved.")
	default:
		fmt.Fprintf(&b, "Different secret constants found: %v\n", v.Values)
		fmt.Fprintln(&b, "WARNING: shares might be inconsistent or some might be incorrect.")
		if report.Majority != nil {
			fmt.Fprintf(&b, "Majority secret: %d\n", *report.Majority)
		}
		for _, blame := range report.Suspects {
			fmt.Fprintf(&b, "Suspect share x = %d: %s\n", blame.X, blame.Reason)
		}
	}

	if report.Fingerprint != "" {
		fmt.Fprintf(&b, "Fingerprint (%s): %s\n", report.Curve, report.Fingerprint)
		if report.FingerprintMatch != nil {
			if *report.FingerprintMatch {
				fmt.Fprintln(&b, "Fingerprint matches the expected value.")
			} else {
				fmt.Fprintln(&b, "WARNING: fingerprint does NOT match the expected value.")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
