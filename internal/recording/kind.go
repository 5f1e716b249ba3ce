package recording

import (
	"strconv"

	"procchain/internal/errors"
)

// Kind identifies one of the four process streams a workpiece passes through.
type Kind int

const (
	// UpperInjection is the injection molding run of the upper workpiece half.
	UpperInjection Kind = iota
	// LowerInjection is the injection molding run of the lower workpiece half.
	LowerInjection
	// ScrewLeft is the left screw driving position joining the two halves.
	ScrewLeft
	// ScrewRight is the right screw driving position.
	ScrewRight
)

// AllKinds returns the four kinds in their fixed merge order.
func AllKinds() []Kind {
	return []Kind{UpperInjection, LowerInjection, ScrewLeft, ScrewRight}
}

// String returns the kind name used in configuration documents and column
// prefixes.
func (k Kind) String() string {
	switch k {
	case UpperInjection:
		return "upper-injection"
	case LowerInjection:
		return "lower-injection"
	case ScrewLeft:
		return "screw-left"
	case ScrewRight:
		return "screw-right"
	default:
		return "unknown"
	}
}

// ParseKind parses a configuration kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return UpperInjection, errors.NewConfig("kind", "unknown recording kind %q", s)
}

// Format identifies the native serial data format of a kind.
type Format int

const (
	// FormatCSV is a comma-delimited file with a header row.
	FormatCSV Format = iota
	// FormatTXT is a semicolon-delimited file behind a "-start data-" marker.
	FormatTXT
	// FormatJSON is a tightening-steps document.
	FormatJSON
)

// Schema describes what a kind looks like on disk: the serial format, the
// expected series in output order, the time axis and how to locate the
// workpiece's row in the static index.
type Schema struct {
	Format     Format
	Series     []string
	TimeSeries string
	IDColumn   string
	Location   string
}

// injectionSeries is the series schema shared by both molding kinds, in the
// column order of the lower kind's delimited files.
var injectionSeries = []string{
	"time",
	"injection_pressure_target",
	"injection_pressure_actual",
	"melt_volume",
	"injection_velocity",
}

// screwSeries is the series schema of the screw driving kinds. The step
// series is synthesized by the parser from the tightening step structure.
var screwSeries = []string{
	"time",
	"torque",
	"angle",
	"gradient",
	"torqueRed",
	"angleRed",
	"step",
}

var schemas = map[Kind]Schema{
	UpperInjection: {
		Format:     FormatCSV,
		Series:     injectionSeries,
		TimeSeries: "time",
		IDColumn:   "upper_workpiece_id",
	},
	LowerInjection: {
		Format:     FormatTXT,
		Series:     injectionSeries,
		TimeSeries: "time",
		IDColumn:   "lower_workpiece_id",
	},
	ScrewLeft: {
		Format:     FormatJSON,
		Series:     screwSeries,
		TimeSeries: "time",
		IDColumn:   "upper_workpiece_id",
		Location:   "left",
	},
	ScrewRight: {
		Format:     FormatJSON,
		Series:     screwSeries,
		TimeSeries: "time",
		IDColumn:   "upper_workpiece_id",
		Location:   "right",
	},
}

// Schema returns the kind's on-disk schema.
func (k Kind) Schema() Schema {
	return schemas[k]
}

// matchColumns builds the static index match for one workpiece. The two screw
// positions share a static index and are told apart by workpiece_location.
func (s Schema) matchColumns(workpieceID int) map[string]string {
	match := map[string]string{s.IDColumn: strconv.Itoa(workpieceID)}
	if s.Location != "" {
		match["workpiece_location"] = s.Location
	}
	return match
}
