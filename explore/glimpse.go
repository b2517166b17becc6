// Package explore provides the dataframe-glimpsing, summary-statistics and
// categorical-tabulation helpers. Everything works on gota DataFrames and
// delegates the statistics to gonum.
package explore

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/goeda/dataset"
	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// glimpseValues caps how many leading values a glimpse line shows.
const glimpseValues = 8

// Glimpse writes a transposed preview of df: its dimensions followed by one
// line per column with the column's type, NA count and first values.
func Glimpse(w io.Writer, df dataframe.DataFrame) error {
	if _, err := fmt.Fprintf(w, "Rows: %d\nColumns: %d\n", df.Nrow(), df.Ncol()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for _, name := range df.Names() {
		s := df.Col(name)
		role := dataset.ClassifyColumn(s)

		preview := make([]string, 0, glimpseValues)
		for i := 0; i < s.Len() && i < glimpseValues; i++ {
			e := s.Elem(i)
			if e.IsNA() {
				preview = append(preview, "NA")
				continue
			}
			preview = append(preview, e.String())
		}
		suffix := ""
		if s.Len() > glimpseValues {
			suffix = ", ..."
		}

		_, err := fmt.Fprintf(tw, "$ %s\t<%s/%s>\t(%d NA)\t%s%s\n",
			name, s.Type(), role, dataset.NACount(s), strings.Join(preview, ", "), suffix)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

// GlimpseString renders Glimpse into a string, for logging and tests.
func GlimpseString(df dataframe.DataFrame) (string, error) {
	var sb strings.Builder
	if err := Glimpse(&sb, df); err != nil {
		return "", errors.Wrap(err, "explore.GlimpseString")
	}
	return sb.String(), nil
}
