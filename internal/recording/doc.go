// Package recording loads one process stream's static and serial data for a
// workpiece and turns it into feature columns.
//
// The four recording kinds form a closed set; what a kind looks like on disk
// (source format, expected series, static index columns) is data in a per-kind
// schema table rather than code. Loading resolves the static index row for a
// workpiece, follows its file_name attribute to the serial data file and
// parses it with the format the schema names. Extraction walks the configured
// series of the recording's kind, applies preprocessing and the configured
// feature method and assembles a FeatureRow with deterministic column names.
package recording
