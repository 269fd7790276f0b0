package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/pebblebed/kugel/pkg/validation"
)

// ValidateBuild performs structural checks on an assembled core: the axial
// segments partition the model, blocks cover the full circle, directive
// names are unique, and every referenced surface and cell is defined.
func ValidateBuild(c *Core) *validation.Report {
	r := validation.NewReport()

	if c == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelBuild,
			Message: "core is nil",
		})
		return r
	}

	validateAxialPartition(c, r)
	validateBlockCoverage(c, r)
	validateNames(c, r)

	return r
}

func validateAxialPartition(c *Core, r *validation.Report) {
	segments := c.Heights.AxialSegments(c.Simple)
	if len(segments) == 0 {
		return
	}
	if segments[0].Lower != c.Heights.LowerModel {
		r.AddError(validation.Result{
			Level:       validation.LevelBuild,
			Message:     fmt.Sprintf("%s starts at %.5f, not at the model bottom %.5f", segments[0].Name, segments[0].Lower, c.Heights.LowerModel),
			ConfigPath:  "heights." + segments[0].Name,
			ActualValue: segments[0].Lower,
		})
	}
	for i, s := range segments {
		if s.Upper <= s.Lower {
			r.AddError(validation.Result{
				Level:       validation.LevelBuild,
				Message:     fmt.Sprintf("%s has non-positive height %.5f", s.Name, s.Height()),
				ConfigPath:  "heights." + s.Name,
				ActualValue: s.Height(),
				Expected:    "> 0",
			})
		}
		if i > 0 && s.Lower != segments[i-1].Upper {
			r.AddError(validation.Result{
				Level:       validation.LevelBuild,
				Message:     fmt.Sprintf("gap between %s (upper %.5f) and %s (lower %.5f)", segments[i-1].Name, segments[i-1].Upper, s.Name, s.Lower),
				ConfigPath:  "heights." + s.Name,
				ActualValue: s.Lower,
			})
		}
	}
	last := segments[len(segments)-1]
	if last.Upper != c.Heights.ModelUpper {
		r.AddError(validation.Result{
			Level:       validation.LevelBuild,
			Message:     fmt.Sprintf("%s ends at %.5f, not at the model top %.5f", last.Name, last.Upper, c.Heights.ModelUpper),
			ConfigPath:  "heights." + last.Name,
			ActualValue: last.Upper,
		})
	}
}

func validateBlockCoverage(c *Core, r *validation.Report) {
	if len(c.Blocks) == 0 {
		r.AddError(validation.Result{
			Level:   validation.LevelBuild,
			Message: "core has no blocks",
		})
		return
	}
	const tolerance = 1e-9
	total := 0.0
	for i, b := range c.Blocks {
		total += b.Span
		if i == 0 {
			continue
		}
		prev := c.Blocks[i-1]
		if math.Abs(b.Angle-(prev.Angle+prev.Span)) > tolerance {
			r.AddError(validation.Result{
				Level:       validation.LevelBuild,
				Message:     fmt.Sprintf("block %d starts at %.5f, block %d ends at %.5f", b.ID, b.Angle, prev.ID, prev.Angle+prev.Span),
				ActualValue: b.Angle,
			})
		}
	}
	if math.Abs(total-360) > tolerance {
		r.AddError(validation.Result{
			Level:       validation.LevelBuild,
			Message:     fmt.Sprintf("blocks cover %.5f degrees", total),
			ConfigPath:  "blocks.number_of_blocks",
			ActualValue: total,
			Expected:    "360",
		})
	}
}

// validateNames collects every surf and cell directive, then checks that
// names are unique and that cells only reference defined names.
func validateNames(c *Core, r *validation.Report) {
	var fragments []Fragment
	for _, b := range c.Blocks {
		for _, s := range b.Subregions {
			fragments = append(fragments, s.Fragment)
		}
	}
	for _, reg := range c.Regions {
		fragments = append(fragments, reg.Fragment)
	}

	surfaces := make(map[string]bool)
	cells := make(map[string]bool)
	var cellLines [][]string
	for _, f := range fragments {
		for _, k := range Kinds {
			for _, ln := range strings.Split(f.Text(k), "\n") {
				tokens := strings.Fields(ln)
				if len(tokens) < 2 {
					continue
				}
				switch tokens[0] {
				case "surf":
					checkUnique(r, "surface", tokens[1], surfaces)
				case "cell":
					checkUnique(r, "cell", tokens[1], cells)
					cellLines = append(cellLines, tokens)
				}
			}
		}
	}

	for _, tokens := range cellLines {
		for _, ref := range cellReferences(tokens) {
			switch {
			case strings.HasPrefix(ref, "#"):
				if !cells[ref[1:]] {
					r.AddError(validation.Result{
						Level:       validation.LevelBuild,
						Message:     fmt.Sprintf("cell %s excludes undefined cell %s", tokens[1], ref[1:]),
						ActualValue: ref,
					})
				}
			default:
				name := strings.TrimPrefix(ref, "-")
				if !surfaces[name] {
					r.AddError(validation.Result{
						Level:       validation.LevelBuild,
						Message:     fmt.Sprintf("cell %s references undefined surface %s", tokens[1], name),
						ActualValue: ref,
					})
				}
			}
		}
	}
}

func checkUnique(r *validation.Report, kind, name string, seen map[string]bool) {
	if seen[name] {
		r.AddError(validation.Result{
			Level:       validation.LevelBuild,
			Message:     fmt.Sprintf("duplicate %s %q", kind, name),
			ActualValue: name,
		})
	}
	seen[name] = true
}

// cellReferences returns the surface and cell tokens of a cell directive:
// everything after the material, or after the fill target.
func cellReferences(tokens []string) []string {
	// cell <name> <universe> <material> ... | cell <name> <universe> fill <target> ...
	start := 4
	if len(tokens) > 3 && tokens[3] == "fill" {
		start = 5
	}
	if len(tokens) <= start {
		return nil
	}
	return tokens[start:]
}
