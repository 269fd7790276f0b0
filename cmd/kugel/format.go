package main

import (
	"fmt"

	"github.com/pebblebed/kugel/pkg/core"
	"github.com/pebblebed/kugel/pkg/pebble"
	"github.com/pebblebed/kugel/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.ConfigPath != "" {
		fmt.Printf("    -> %s = %v\n", res.ConfigPath, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printHeights(h core.Heights, simple bool) {
	mode := "full"
	if simple {
		mode = "simplified"
	}
	fmt.Printf("Axial layout (%s core)\n", mode)
	fmt.Println("=========================")
	fmt.Println()

	fmt.Printf("%-18s %12s %12s %12s\n", "Segment", "Lower", "Upper", "Height")
	fmt.Printf("%-18s %12s %12s %12s\n", "------------------", "------------", "------------", "------------")
	for _, s := range h.AxialSegments(simple) {
		printSegment(s)
	}
	fmt.Println()
	if !simple {
		printSegment(h.PebbleShoot)
	}
	printSegment(h.ControlRod)
	printSegment(h.Riser)
	fmt.Println()
	fmt.Printf("  Model: %.3f to %.3f cm\n", h.LowerModel, h.ModelUpper)
}

func printSegment(s core.Segment) {
	fmt.Printf("%-18s %12.3f %12.3f %12.3f\n", s.Name, s.Lower, s.Upper, s.Height())
}

func printTraceHeader(p *pebble.Pebble) {
	fmt.Printf("Tracing %s pebble (pass limit %d)\n", p.Kind, p.PassLimit)
	fmt.Println()
	if p.Fuel != nil {
		fmt.Printf("%-4s %-32s %6s %10s %10s %12s %14s\n", "Step", "Universe", "Passes", "XS", "Fuel XS", "Burnup", "Power days")
		return
	}
	fmt.Printf("%-4s %-32s %6s %10s\n", "Step", "Universe", "Passes", "XS")
}

func printTraceStep(step int, p *pebble.Pebble) {
	if p.Fuel != nil {
		fmt.Printf("%-4d %-32s %6d %10s %10s %12.4f %14.6f\n",
			step, p.Universe, p.Passes, p.XS.Library, p.Fuel.XS.Library, p.Fuel.Burnup, p.Fuel.PowerDays)
		return
	}
	fmt.Printf("%-4d %-32s %6d %10s\n", step, p.Universe, p.Passes, p.XS.Library)
}
