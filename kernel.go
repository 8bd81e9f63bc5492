package bmpblur

import (
	"fmt"
	"strings"
)

// Kernel is a 3x3 matrix of integer weights, indexed [row][column] with the
// center at [1][1]. Kernel is a value type: copying it never aliases.
//
// A Kernel carries no normalization factor. Filtering divides each
// weighted sum by the number of in-bounds neighbors, not by the sum of
// weights; see Apply.
type Kernel [3][3]int32

// Predefined kernels.
var (
	// BoxKernel weights all nine neighbors equally.
	BoxKernel = Kernel{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}

	// GaussianKernel is the 1-2-1 binomial approximation of a Gaussian.
	GaussianKernel = Kernel{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}
)

// kernelNames maps the names accepted by KernelByName.
var kernelNames = map[string]Kernel{
	"box":      BoxKernel,
	"gaussian": GaussianKernel,
}

// KernelByName returns a predefined kernel by case-insensitive name.
func KernelByName(name string) (Kernel, error) {
	k, ok := kernelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Kernel{}, fmt.Errorf("%w: unknown kernel %q (want box or gaussian)", ErrArgument, name)
	}
	return k, nil
}

// KernelFromRows builds a Kernel from a row-major slice of rows.
// It fails unless rows is exactly 3x3.
func KernelFromRows(rows [][]int32) (Kernel, error) {
	var k Kernel
	if len(rows) != 3 {
		return k, fmt.Errorf("%w: kernel has %d rows, want 3", ErrArgument, len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			return k, fmt.Errorf("%w: kernel row %d has %d columns, want 3", ErrArgument, i, len(row))
		}
		copy(k[i][:], row)
	}
	return k, nil
}

// Weight returns the weight applied to the neighbor at offset (dx, dy),
// where dx and dy are in [-1, 1].
func (k Kernel) Weight(dx, dy int) int32 {
	return k[dy+1][dx+1]
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() int64 {
	var s int64
	for _, row := range k {
		for _, w := range row {
			s += int64(w)
		}
	}
	return s
}

// String formats the kernel as "[a b c; d e f; g h i]".
func (k Kernel) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, row := range k {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%d %d %d", row[0], row[1], row[2])
	}
	sb.WriteByte(']')
	return sb.String()
}
