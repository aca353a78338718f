package calls

import (
	"fmt"
	"time"
)

// FormatDuration renders an elapsed time as "m:ss" with seconds
// zero-padded. There is no hour component: a 4000 second call is
// "66:40". Negative spans clamp to "0:00".
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// humanTimestamp renders the display string stored on new records,
// e.g. "Today at 2:15 PM".
func humanTimestamp(t time.Time) string {
	return "Today at " + t.Format("3:04 PM")
}
