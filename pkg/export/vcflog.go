package export

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/ddbj/jvar/pkg/finding"
)

// WriteVCFLog lists the rows of one VCF file that produced findings. Each
// row is printed as it appeared in the file, followed by its findings.
func WriteVCFLog(w io.Writer, file string, set *finding.Set) error {
	byLine := set.ForFile(file)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s: %d rows with findings\n", file, len(byLine))
	for _, line := range slices.Sorted(maps.Keys(byLine)) {
		ff := byLine[line]
		fmt.Fprintf(bw, "%d\t%s\n", line, ff[0].Source.Row)
		for _, f := range ff {
			fmt.Fprintf(bw, "\t%s\n", f)
		}
	}
	return bw.Flush()
}
