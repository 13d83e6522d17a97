package taxicab

import "errors"

// ErrScheduleInvariant indicates a destination ScheduleNode was reached
// while its query was not RIDING — spec.md §7 classifies this as a
// programming error, not a recoverable runtime condition.
var ErrScheduleInvariant = errors.New("taxicab: destination schedule node reached while query not RIDING")
