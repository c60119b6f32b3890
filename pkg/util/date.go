package util

import (
	"time"

	"golang.org/x/text/language"
)

// Day-first layouts cover most locales; only a few regions put the month first.
const (
	layoutDayFirst   = "02/01/2006"
	layoutMonthFirst = "01/02/2006"
	layoutISO        = "2006-01-02"
	layoutClock      = "15:04"
)

var monthFirstRegions = map[string]bool{"US": true, "PH": true, "FM": true, "MH": true}

// FormatDate renders t as a short numeric date in the formatter's locale.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format(dateLayout(f.tag))
}

// FormatClock renders the local hour and minute as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(layoutClock)
}

func dateLayout(tag language.Tag) string {
	base, _ := tag.Base()
	region, _ := tag.Region()
	switch {
	case base.String() == "und":
		return layoutISO
	case monthFirstRegions[region.String()]:
		return layoutMonthFirst
	case base.String() == "zh" || base.String() == "ja" || base.String() == "ko":
		return layoutISO
	default:
		return layoutDayFirst
	}
}
