package report

import (
	"strconv"
	"strings"

	"github.com/san-kum/dyntree/internal/model"
	"github.com/san-kum/dyntree/internal/spatial"
)

var canonicalAxes = []struct {
	axis  spatial.Vector
	label string
}{
	{spatial.AxisRX, "RX"},
	{spatial.AxisRY, "RY"},
	{spatial.AxisRZ, "RZ"},
	{spatial.AxisTX, "TX"},
	{spatial.AxisTY, "TY"},
	{spatial.AxisTZ, "TZ"},
}

// DOFName labels a joint axis. The six one-hot axes map to RX, RY, RZ, TX,
// TY and TZ; any other axis is printed as custom(a b c d e f) with every
// component in its shortest exact form.
func DOFName(axis spatial.Vector) string {
	for _, c := range canonicalAxes {
		if axis == c.axis {
			return c.label
		}
	}

	parts := make([]string, len(axis))
	for i, v := range axis {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "custom(" + strings.Join(parts, " ") + ")"
}

func jointLabels(j model.Joint) []string {
	labels := make([]string, 0, len(j.Axes))
	for _, axis := range j.Axes {
		labels = append(labels, DOFName(axis))
	}
	return labels
}
