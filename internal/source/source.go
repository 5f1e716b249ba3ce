package source

import "path/filepath"

// StaticAttributes maps attribute name to its raw scalar value for one
// recording instance. Values keep their textual source form; numeric
// interpretation happens at extraction time.
type StaticAttributes map[string]string

// SerialSeries maps series name to an ordered numeric measurement sequence.
// Series of the same recording are not required to share a length.
type SerialSeries map[string][]float64

// Resolver maps a recording kind to the locations of its static-attribute
// index and its per-recording serial data files.
type Resolver interface {
	// StaticPath returns the location of the kind's static-attribute index.
	StaticPath(kind string) string
	// SerialPath returns the location of one recording's serial data file.
	SerialPath(kind, fileName string) string
}

// DirResolver resolves locations inside a corpus directory laid out by
// process stage:
//
//	<root>/injection_molding/upper_workpiece/{static_data.csv,serial_data/...}
//	<root>/injection_molding/lower_workpiece/{static_data.csv,serial_data/...}
//	<root>/screw_driving/{static_data.csv,serial_data/...}
//
// The two screw positions share one static index and one serial directory;
// rows are told apart by their workpiece_location attribute.
type DirResolver struct {
	Root string
}

// StaticPath implements Resolver.
func (r DirResolver) StaticPath(kind string) string {
	return filepath.Join(r.kindDir(kind), "static_data.csv")
}

// SerialPath implements Resolver.
func (r DirResolver) SerialPath(kind, fileName string) string {
	return filepath.Join(r.kindDir(kind), "serial_data", fileName)
}

// kindDir returns the corpus subdirectory holding the kind's data.
func (r DirResolver) kindDir(kind string) string {
	switch kind {
	case "upper-injection":
		return filepath.Join(r.Root, "injection_molding", "upper_workpiece")
	case "lower-injection":
		return filepath.Join(r.Root, "injection_molding", "lower_workpiece")
	default:
		return filepath.Join(r.Root, "screw_driving")
	}
}
