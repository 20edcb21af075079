// Package gridpartition partitions the input domain of an index transform
// according to a grid imposed on a subset of its output dimensions.
//
// Given a transform mapping an input index space to an output index space,
// and a grid dividing one or more of that output space's dimensions into
// cells, PrePartition analyzes which regions of the input domain map into
// which grid cells, and Partition (or GetGridCellRanges) walks those
// regions in deterministic, lexicographic cell-index order.
//
// The package never runs a callback with overlapping or duplicated input
// regions: every point of the transform's input domain that maps to a
// covered output dimension appears in exactly one emitted cell.
package gridpartition
