package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"staffplan/internal/kds"
)

// utf8BOM makes spreadsheet applications detect the encoding of Turkish names.
const utf8BOM = "\ufeff"

// DistrictsCSVFilename is the download name of the district report for a given day.
func DistrictsCSVFilename(now time.Time) string {
	return fmt.Sprintf("Branch_Report_%s.csv", now.Format("2006-01-02"))
}

// WriteDistrictsCSV writes the branch table as ';'-separated CSV with a BOM.
// Text columns are always quoted; numeric columns never are.
func WriteDistrictsCSV(w io.Writer, districts []kds.District) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(utf8BOM)
	bw.WriteString("Branch;Occupancy (%);Performance Score;Status\n")

	for _, d := range districts {
		fmt.Fprintf(bw, "%s;%d;%.1f;%s\n",
			quote(d.Name),
			int(math.Round(d.Occupancy)),
			d.Score,
			quote(kds.ScoreStatus(d.Score)),
		)
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
