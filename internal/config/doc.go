// Package config loads the application configuration and the two pipeline
// configuration documents.
//
// The application configuration (corpus root, output directory, logging,
// concurrency) follows the usual precedence: environment variables with the
// PROCCHAIN prefix override values from an optional YAML file, which override
// defaults.
//
// The pipeline documents are independent of the application configuration and
// are passed by value into every extraction call:
//
//   - the preprocessing document keys (kind, series) to the preprocessing
//     steps applied before feature extraction (negative-value replacement,
//     uniform-time resampling, equal-length alignment), and
//   - the extraction document keys (kind, series) to the feature method and
//     its parameters.
//
// Both documents are validated at parse time; structural problems surface as
// ConfigError before any experiment row is processed. Unknown keys are
// ignored.
package config
