package csg

// Cell describes a cell directive. Exactly one of Material or Fill is used:
// a non-empty Fill renders "fill <target>" in place of the material.
type Cell struct {
	Name     string
	Universe string
	Material string
	Fill     string
	Inside   []string // rendered with negative sense
	Outside  []string // rendered with positive sense
	Exclude  []string // cells rendered as complements
}

// String renders the cell directive. Empty names in the surface and cell
// lists are dropped.
func (c Cell) String() string {
	tokens := []string{"cell", c.Name, c.Universe}
	if c.Fill != "" {
		tokens = append(tokens, "fill", c.Fill)
	} else {
		tokens = append(tokens, c.Material)
	}
	for _, s := range c.Inside {
		if s != "" {
			tokens = append(tokens, "-"+s)
		}
	}
	tokens = append(tokens, c.Outside...)
	for _, s := range c.Exclude {
		if s != "" {
			tokens = append(tokens, "#"+s)
		}
	}
	return line(tokens...)
}

// MaterialCell renders a cell of universe filled with material.
func MaterialCell(name, universe, material string, inside, outside, exclude []string) string {
	return Cell{
		Name:     name,
		Universe: universe,
		Material: material,
		Inside:   inside,
		Outside:  outside,
		Exclude:  exclude,
	}.String()
}

// FilledCell renders a cell of universe filled with another universe or geometry.
func FilledCell(name, universe, fill string, inside, outside, exclude []string) string {
	return Cell{
		Name:     name,
		Universe: universe,
		Fill:     fill,
		Inside:   inside,
		Outside:  outside,
		Exclude:  exclude,
	}.String()
}

// Universe renders the root-level cell that places universe name into the
// model, bounded by the given surfaces.
func Universe(name string, inside, outside, exclude []string) string {
	return FilledCell(name, "0", name, inside, outside, exclude)
}

// PebbleBed renders a pbed directive: a universe name for the explicit
// pebble lattice read from file, with background filling the space between
// pebbles. Power output per pebble is requested.
func PebbleBed(name, background, file string) string {
	return line("pbed", name, background, `"`+file+`"`, "pow")
}
