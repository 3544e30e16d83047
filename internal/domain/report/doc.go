// Package report holds the experiment result table: one Row per
// (drift, threshold, round) with a fixed column order shared with the
// persistence tools, plus the filtering used to pick detector settings.
package report
