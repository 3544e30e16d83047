// Package results persists experiment runs.
//
// A run is stored in its own folder under the repository root: the full
// result table and the filtered table as CSV in the documented column order,
// and one JSON reading trail per row for the plotting tools.
package results
