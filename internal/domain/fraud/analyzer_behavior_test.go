package fraud

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messagesAt(n int, at time.Time, content func(i int) string) []Message {
	msgs := make([]Message, n)
	for i := range msgs {
		msgs[i] = Message{
			SenderID:  "user-1",
			Content:   content(i),
			CreatedAt: NewTimestamp(at),
		}
	}
	return msgs
}

func TestAnalyzeBehaviorEmptyHistory(t *testing.T) {
	e := NewEngine(DefaultConfig())

	res := e.AnalyzeBehavior(&UserHistory{}, testNow)

	assert.True(t, res.Score.IsZero())
	assert.Empty(t, res.Indicators)
}

func TestAnalyzeBehaviorExcessMessages(t *testing.T) {
	e := NewEngine(DefaultConfig())
	history := &UserHistory{
		Messages: messagesAt(60, testNow.Add(-30*time.Minute), func(i int) string {
			return fmt.Sprintf("unique message %d", i)
		}),
	}

	res := e.AnalyzeBehavior(history, testNow)

	require.Equal(t, []string{"Excess messages: 60 in 1h"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.40)), "score = %s", res.Score)
}

func TestAnalyzeBehaviorOldMessagesOutsideWindow(t *testing.T) {
	e := NewEngine(DefaultConfig())
	history := &UserHistory{
		Messages: messagesAt(60, testNow.Add(-2*time.Hour), func(i int) string {
			return fmt.Sprintf("unique message %d", i)
		}),
	}

	res := e.AnalyzeBehavior(history, testNow)

	assert.NotContains(t, res.Indicators, "Excess messages: 60 in 1h")
}

func TestAnalyzeBehaviorExcessLikes(t *testing.T) {
	e := NewEngine(DefaultConfig())
	likes := make([]Like, 150)
	for i := range likes {
		likes[i] = Like{UserID: "user-1", CreatedAt: NewTimestamp(testNow.Add(-10 * time.Minute))}
	}

	res := e.AnalyzeBehavior(&UserHistory{Likes: likes}, testNow)

	require.Equal(t, []string{"Excess likes: 150 in 1h"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.30)))
}

func TestAnalyzeBehaviorMultipleReports(t *testing.T) {
	e := NewEngine(DefaultConfig())
	reports := make([]Report, 5)

	res := e.AnalyzeBehavior(&UserHistory{ReportsReceived: reports}, testNow)

	require.Equal(t, []string{"Multiple reports: 5"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.50)))
}

func TestAnalyzeBehaviorTwoReportsBelowThreshold(t *testing.T) {
	e := NewEngine(DefaultConfig())

	res := e.AnalyzeBehavior(&UserHistory{ReportsReceived: make([]Report, 2)}, testNow)

	assert.Empty(t, res.Indicators)
}

func TestAnalyzeBehaviorDuplicateMessages(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// 20 messages with 2 distinct texts: ratio = 1 - 2/20 = 0.9 > 0.7.
	// Spread outside the hour window so only the duplicate rule fires.
	history := &UserHistory{
		Messages: messagesAt(20, testNow.Add(-3*time.Hour), func(i int) string {
			return fmt.Sprintf("copy paste %d", i%2)
		}),
	}

	res := e.AnalyzeBehavior(history, testNow)

	require.Equal(t, []string{"Frequent duplicate messages"}, res.Indicators)
	assert.True(t, res.Score.Equal(decimal.NewFromFloat(0.35)))
}

func TestAnalyzeBehaviorDuplicateRatioUsesTrailingTwenty(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// 30 old duplicates followed by 20 distinct messages in storage order:
	// only the trailing 20 count, so the ratio is 0.
	old := messagesAt(30, testNow.Add(-5*time.Hour), func(int) string { return "same text" })
	fresh := messagesAt(20, testNow.Add(-4*time.Hour), func(i int) string {
		return fmt.Sprintf("distinct %d", i)
	})

	res := e.AnalyzeBehavior(&UserHistory{Messages: append(old, fresh...)}, testNow)

	assert.NotContains(t, res.Indicators, "Frequent duplicate messages")
}

func TestAnalyzeBehaviorScoreClamped(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// All four rules fire: 0.40 + 0.30 + 0.50 + 0.35 = 1.55, clamped to 1
	msgs := messagesAt(60, testNow.Add(-20*time.Minute), func(int) string { return "same" })
	likes := make([]Like, 120)
	for i := range likes {
		likes[i] = Like{CreatedAt: NewTimestamp(testNow.Add(-5 * time.Minute))}
	}

	res := e.AnalyzeBehavior(&UserHistory{
		Messages:        msgs,
		Likes:           likes,
		ReportsReceived: make([]Report, 4),
	}, testNow)

	assert.True(t, res.Score.Equal(decimal.NewFromInt(1)), "score = %s", res.Score)
	assert.Len(t, res.Indicators, 4)
}
