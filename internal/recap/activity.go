package recap

import (
	"time"

	"github.com/maxbolgarin/devrecap/internal/model"
)

// Peak productivity labels, derived from the busiest hour bucket
const (
	peakMorning   = "Morning"
	peakAfternoon = "Afternoon"
	peakEvening   = "Evening"
	peakNight     = "Night"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// analyzeActivity buckets commit timestamps (UTC) into hour-of-day and
// day-of-week histograms and derives the busiest hour, the busiest day name
// and a coarse peak time label. Ties resolve to the lowest index.
func analyzeActivity(commits []*model.Commit) *model.ActivityPattern {
	pattern := &model.ActivityPattern{}

	for _, commit := range commits {
		ts := commit.Timestamp.UTC()
		pattern.ByHour[ts.Hour()]++
		pattern.ByDay[int(ts.Weekday())]++
	}

	pattern.BusiestHour = maxIndex(pattern.ByHour[:])
	pattern.BusiestDay = dayNames[maxIndex(pattern.ByDay[:])]
	pattern.PeakTime = peakTimeLabel(pattern.BusiestHour)

	return pattern
}

// favoriteHours returns each contributor's busiest hour bucket (UTC),
// first max wins on ties.
func favoriteHours(commits []*model.Commit) map[string]int {
	byAuthor := make(map[string]*[24]int)
	for _, commit := range commits {
		hours, ok := byAuthor[commit.Author]
		if !ok {
			hours = &[24]int{}
			byAuthor[commit.Author] = hours
		}
		hours[commit.Timestamp.UTC().Hour()]++
	}

	favorites := make(map[string]int, len(byAuthor))
	for author, hours := range byAuthor {
		favorites[author] = maxIndex(hours[:])
	}
	return favorites
}

// weekendSplit returns commit counts on weekends and weekdays (UTC)
func weekendSplit(commits []*model.Commit) (weekend, weekday int) {
	for _, commit := range commits {
		switch commit.Timestamp.UTC().Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		default:
			weekday++
		}
	}
	return weekend, weekday
}

func maxIndex(buckets []int) int {
	best := 0
	for i, v := range buckets {
		if v > buckets[best] {
			best = i
		}
	}
	return best
}

func peakTimeLabel(hour int) string {
	switch {
	case hour >= 5 && hour <= 11:
		return peakMorning
	case hour >= 12 && hour <= 16:
		return peakAfternoon
	case hour >= 17 && hour <= 20:
		return peakEvening
	default:
		return peakNight
	}
}
