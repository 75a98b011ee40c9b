package teaprogram

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/flytaly/scrapconv/pkg/log"
	"github.com/flytaly/scrapconv/pkg/syncer"
	"github.com/gookit/color"
)

// printConversions renders the newest conversions first.
func printConversions(list []syncer.Conversion, limit int, maxWidth int) string {
	var b strings.Builder
	maxWidth = max(maxWidth-30, 20)
	pathSize := maxWidth / 2
	shown := 0
	for i := len(list) - 1; i >= 0 && shown < limit; i-- {
		c := list[i]
		shown++
		if c.Err != nil {
			fmt.Fprintf(&b, " %s %s: %s\n",
				color.Red.Sprint("✗"),
				color.Cyan.Sprint(tail(c.Source, pathSize)),
				color.Red.Sprint(c.Err))
			continue
		}
		fmt.Fprintf(&b, " %s %s -> %s %s\n",
			color.Green.Sprint("✓"),
			color.Cyan.Sprint(tail(c.Source, pathSize)),
			color.Cyan.Sprint(tail(c.Output, pathSize)),
			color.Gray.Sprintf("(%s, %s)", humanize.Bytes(uint64(c.Size)), humanize.Time(c.Time)))
	}
	if left := len(list) - limit; left > 0 {
		fmt.Fprintf(&b, " and %d earlier conversions...\n", left)
	}
	return b.String()
}

func printRecords(records []log.Record, limit int) string {
	var b strings.Builder
	start := max(len(records)-limit, 0)
	for _, r := range records[start:] {
		lvl := r.Level.String()
		switch r.Level {
		case log.LevelError:
			lvl = color.Red.Sprint(lvl)
		case log.LevelWarning:
			lvl = color.Yellow.Sprint(lvl)
		default:
			lvl = color.Gray.Sprint(lvl)
		}
		fmt.Fprintf(&b, " %s %s %s\n", r.Time.Format("15:04:05"), lvl, r.Message)
	}
	return b.String()
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}
