package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/xiaoyuteam/companion/backend/internal/analysis/emotion"
	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

// DefaultHighlightLimit 首页最多展示几条今日亮点。
const DefaultHighlightLimit = 3

// neutralMood is shown when no conversation happened today.
const neutralMood = "平靜"

// Input bundles everything Summarize derives from. The aggregator reads but
// never mutates these slices.
type Input struct {
	Conversations  []companion.Conversation
	Memories       []companion.MemoryEntry
	Reminders      []companion.Reminder
	Reference      time.Time
	Location       *time.Location
	HighlightLimit int
}

var moodDisplay = map[emotion.Label]string{
	emotion.Happy:     "開心",
	emotion.Sad:       "難過",
	emotion.Nostalgic: "懷舊",
	emotion.Anxious:   "不安",
	emotion.Confused:  "困惑",
	emotion.Excited:   "興奮",
	emotion.Grateful:  "感恩",
	emotion.Calm:      "平靜",
	emotion.Neutral:   "平靜",
}

// Summarize derives the dashboard numbers from the current collections. It
// is a pure function: identical inputs produce identical output, and calling
// it has no side effects on the store.
func Summarize(in Input) companion.DashboardSummary {
	loc := in.Location
	if loc == nil {
		loc = in.Reference.Location()
	}
	limit := in.HighlightLimit
	if limit <= 0 {
		limit = DefaultHighlightLimit
	}

	todayConvs := 0
	for _, conv := range in.Conversations {
		if sameDay(conv.CreatedDate, in.Reference, loc) {
			todayConvs++
		}
	}

	todayMemories := 0
	for _, mem := range in.Memories {
		if sameDay(mem.CreatedDate, in.Reference, loc) {
			todayMemories++
		}
	}

	return companion.DashboardSummary{
		TodayConversations: todayConvs,
		TodayMemories:      todayMemories,
		OverallMood:        overallMood(in.Conversations, in.Reference, loc),
		Reminders:          append([]companion.Reminder(nil), in.Reminders...),
		RecentHighlights:   highlights(in.Conversations, in.Memories, in.Reference, loc, limit),
	}
}

// overallMood 取今日对话中出现最多的主情绪；并列时以最近一次出现为准。
func overallMood(conversations []companion.Conversation, ref time.Time, loc *time.Location) string {
	counts := make(map[string]int)
	latest := make(map[string]time.Time)
	for _, conv := range conversations {
		if !sameDay(conv.CreatedDate, ref, loc) {
			continue
		}
		label := conv.EmotionAnalysis.PrimaryEmotion
		if label == "" {
			continue
		}
		counts[label]++
		if conv.CreatedDate.After(latest[label]) {
			latest[label] = conv.CreatedDate
		}
	}

	best := ""
	for label := range counts {
		if best == "" {
			best = label
			continue
		}
		if counts[label] > counts[best] {
			best = label
			continue
		}
		if counts[label] == counts[best] && latest[label].After(latest[best]) {
			best = label
		}
	}

	if best == "" {
		return neutralMood
	}
	if label, ok := emotion.ParseLabel(best); ok {
		if display, ok := moodDisplay[label]; ok {
			return display
		}
	}
	return best
}

type highlightCandidate struct {
	text string
	at   time.Time
}

// highlights 汇总今日的回忆标题与值得一提的对话情绪时刻，按时间倒序。
func highlights(conversations []companion.Conversation, memories []companion.MemoryEntry, ref time.Time, loc *time.Location, limit int) []string {
	var candidates []highlightCandidate

	for _, mem := range memories {
		if !sameDay(mem.CreatedDate, ref, loc) {
			continue
		}
		candidates = append(candidates, highlightCandidate{
			text: fmt.Sprintf("記錄了「%s」", mem.Title),
			at:   mem.CreatedDate,
		})
	}

	for _, conv := range conversations {
		if !sameDay(conv.CreatedDate, ref, loc) {
			continue
		}
		tag := conv.EmotionAnalysis
		if tag.PrimaryEmotion == "" || tag.PrimaryEmotion == string(emotion.Neutral) || tag.Confidence < 0.6 {
			continue
		}
		display := tag.PrimaryEmotion
		if label, ok := emotion.ParseLabel(tag.PrimaryEmotion); ok {
			if zh, ok := moodDisplay[label]; ok {
				display = zh
			}
		}
		candidates = append(candidates, highlightCandidate{
			text: fmt.Sprintf("與小雨聊天時感到%s", display),
			at:   conv.CreatedDate,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].at.After(candidates[j].at)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.text)
	}
	return out
}

func sameDay(t, ref time.Time, loc *time.Location) bool {
	ty, tm, td := t.In(loc).Date()
	ry, rm, rd := ref.In(loc).Date()
	return ty == ry && tm == rm && td == rd
}
