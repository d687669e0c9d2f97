package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeShortTextUnchanged(t *testing.T) {
	text := "Family-run bakery on Main Street."
	assert.Equal(t, text, Describe(text, 2))
}

func TestDescribeCondensesLongText(t *testing.T) {
	text := "We bake bread daily. Our bread uses local flour. Bread and pastries sell out fast. We also stock coffee. Parking is available behind the shop."
	got := Describe(text, 2)
	assert.Less(t, len(got), len(text))
	// two sentences max
	assert.LessOrEqual(t, strings.Count(got, "."), 2)
	assert.NotEmpty(t, got)
}

func TestDescribeKeepsOriginalOrder(t *testing.T) {
	text := "Alpha alpha alpha first. Filler sentence here entirely. Alpha alpha alpha last."
	got := Describe(text, 2)
	first := strings.Index(got, "first")
	last := strings.Index(got, "last")
	assert.Greater(t, first, -1)
	assert.Greater(t, last, first)
}

func TestDescribeEmpty(t *testing.T) {
	assert.Equal(t, "", Describe("", 3))
}
