// Package dataset assembles experiments into labeled feature tables.
//
// An Experiment bundles the up-to-four recordings of one workpiece; absence
// of a process stage is normal and queryable. A Dataset is an ordered,
// duplicate-free collection of experiments built either from an explicit id
// list or from a class-label query, and extracts one table row per experiment
// with the class label attached.
package dataset
