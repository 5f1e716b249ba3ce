// Package exporter writes extracted feature tables as delimited text.
//
// CSVWriter is the core writer with header, append and UTF-8 BOM support;
// the BOM keeps the output openable in Excel next to the corpus workbook.
// TableExporter renders a dataset.Table through it, either in one call or
// row-streamed for large datasets.
package exporter
