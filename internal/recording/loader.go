package recording

import (
	"context"
	"log/slog"
	"os"

	"procchain/internal/errors"
	"procchain/internal/source"
)

// staticComma is the delimiter of the static index files.
const staticComma = ';'

// Loader loads recordings of any kind from an at-rest corpus.
type Loader struct {
	resolver source.Resolver
	logger   *slog.Logger
}

// NewLoader creates a loader over the given corpus resolver. A nil logger
// falls back to slog.Default().
func NewLoader(resolver source.Resolver, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{resolver: resolver, logger: logger}
}

// Load loads one workpiece's recording of the given kind.
//
// The workpiece's row is located in the kind's static index and its file_name
// attribute names the serial data file. A missing index, index row or serial
// file is a NotFoundError; a present but malformed file is a ParseError.
// Schema series absent from the parsed file come back present-but-empty.
func (l *Loader) Load(ctx context.Context, workpieceID int, kind Kind) (*Recording, error) {
	schema := kind.Schema()

	staticPath := l.resolver.StaticPath(kind.String())
	static, found, err := source.FindStaticRow(staticPath, staticComma, schema.matchColumns(workpieceID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(kind.String()+" static index", workpieceID)
		}
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFound(kind.String()+" recording", workpieceID)
	}

	fileName := static["file_name"]
	if fileName == "" {
		return nil, errors.NewNotFound(kind.String()+" serial data file", workpieceID)
	}

	serialPath := l.resolver.SerialPath(kind.String(), fileName)
	serial, err := l.parseSerial(serialPath, schema)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(kind.String()+" serial data file", workpieceID)
		}
		return nil, err
	}

	for _, name := range schema.Series {
		if _, ok := serial[name]; !ok {
			serial[name] = []float64{}
		}
	}

	l.logger.DebugContext(ctx, "loaded recording",
		"workpiece_id", workpieceID,
		"kind", kind.String(),
		"file", fileName,
		"series", len(serial))

	return &Recording{
		WorkpieceID: workpieceID,
		Kind:        kind,
		Static:      static,
		Serial:      serial,
	}, nil
}

// parseSerial dispatches to the parser of the schema's format.
func (l *Loader) parseSerial(path string, schema Schema) (source.SerialSeries, error) {
	switch schema.Format {
	case FormatCSV:
		return source.ParseSerialCSV(path)
	case FormatTXT:
		return source.ParseSerialTXT(path, schema.Series)
	case FormatJSON:
		return source.ParseSerialJSON(path)
	default:
		return nil, errors.NewConfig("schema", "unknown serial format %d", schema.Format)
	}
}
