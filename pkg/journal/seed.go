package journal

import (
	"time"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
)

const day = 24 * time.Hour

// Seed is the illustrative history written on first load: six entries over
// the dates 2023-10-24 to 2023-10-27, oldest first, with instants relative to now.
func Seed(now time.Time) []entry.Entry {
	at := func(d time.Duration) entry.Timestamp {
		return entry.Timestamp{Time: now.Add(d)}
	}
	return []entry.Entry{
		{ID: "1", Date: "2023-10-24", Timestamp: at(-3 * day), Feeling: feeling.Great, FoodNote: "蔬菜沙拉+鸡胸肉"},
		{ID: "2", Date: "2023-10-25", Timestamp: at(-2 * day), Feeling: feeling.Full, FoodNote: "牛肉面（大碗）"},
		{ID: "3", Date: "2023-10-25", Timestamp: at(-2*day + time.Second), Feeling: feeling.Great, FoodNote: "苹果一个"},
		{ID: "4", Date: "2023-10-26", Timestamp: at(-day), Feeling: feeling.Stuffed, FoodNote: "红烧肉+两碗米饭"},
		{ID: "5", Date: "2023-10-26", Timestamp: at(-12 * time.Hour), Feeling: feeling.Stuffed, FoodNote: "火锅+米饭 150g"},
		{ID: "6", Date: "2023-10-27", Timestamp: at(0), Feeling: feeling.Full, FoodNote: "三明治"},
	}
}
