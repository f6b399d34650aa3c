// Package core provides the business logic for the timber-log pricing tool.
//
// This package is the engine behind the UI, containing all domain logic
// independent of any transport layer: record validation, encoding-resilient
// CSV import, price prediction, and descriptive statistics. It can be used
// by web handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Records: A [Record] is one accepted log entry with its derived price;
//     a [Collection] is the session's working set, kept densely numbered
//     1..N at all times.
//   - Service: The single owner of the live collection. Every mutation runs
//     under its lock and republishes a renumbered snapshot.
//   - Pricing: A [PriceModel] maps (diameter, length, rank) to a price with
//     confidence bounds. Calibration is loadable from a YAML file and
//     overridable via TIMBER_* environment variables.
//   - Import: Uploaded CSV bytes pass through an ordered encoding fallback
//     chain, structural parsing, and per-row validation before merging.
//
// # Import Flow
//
//  1. Client calls [Service.ImportCSV] with the raw upload bytes and a mode.
//  2. [DecodeAndParse] tries utf-8-sig, utf-8, shift_jis, and cp932 in order
//     until one decodes and structurally parses the whole stream.
//  3. Each data row is converted, validated, and priced; rejected rows are
//     collected as [RowError] values with their original line numbers.
//  4. [Merge] combines accepted rows with the existing collection under the
//     append or overwrite policy and renumbers the result.
//
// Validation never short-circuits: every violation in a candidate is
// reported together, and an empty [ValidationResult] is the only acceptance
// signal. Only total failures (no encoding succeeds, required columns
// missing) abort an import.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - IMPORT_ENCODING: no candidate encoding decoded the file
//   - IMPORT_COLUMNS: required columns missing from the header
//   - RECORD_NOT_FOUND, COLLECTION_EMPTY: collection lookups
package core
