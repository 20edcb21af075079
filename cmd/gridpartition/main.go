// Command gridpartition partitions the input domain of an index transform
// against a grid, either enumerating every intersected cell or coalescing
// them into ranges.
package main

import "io"

func readAll(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

func main() {
	Execute()
}
