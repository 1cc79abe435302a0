package fraud

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// duplicateWindow is how many trailing messages (in storage order) feed the
// duplicate-content ratio
const duplicateWindow = 20

// AnalyzeBehavior scores activity velocity over the trailing hour and the
// report history. The window is measured from the assessment instant, which
// is injected so repeated runs over the same snapshot are identical.
func (e *Engine) AnalyzeBehavior(history *UserHistory, now time.Time) DimensionResult {
	score := decimal.Zero
	var indicators []string

	cutoff := now.Add(-time.Hour)

	recentMessages := 0
	for _, msg := range history.Messages {
		if msg.CreatedAt.After(cutoff) {
			recentMessages++
		}
	}
	if recentMessages > e.cfg.Thresholds.MaxMessagesPerHour {
		score = score.Add(incExcessMessages)
		indicators = append(indicators, fmt.Sprintf("Excess messages: %d in 1h", recentMessages))
	}

	recentLikes := 0
	for _, like := range history.Likes {
		if like.CreatedAt.After(cutoff) {
			recentLikes++
		}
	}
	if recentLikes > e.cfg.Thresholds.MaxLikesPerHour {
		score = score.Add(incExcessLikes)
		indicators = append(indicators, fmt.Sprintf("Excess likes: %d in 1h", recentLikes))
	}

	if reports := len(history.ReportsReceived); reports >= e.cfg.Thresholds.MaxReports {
		score = score.Add(incMultipleReports)
		indicators = append(indicators, fmt.Sprintf("Multiple reports: %d", reports))
	}

	if len(history.Messages) > 0 && e.duplicateRatio(history.Messages).GreaterThan(e.cfg.Thresholds.DuplicateMessageRatio) {
		score = score.Add(incDuplicateMsgs)
		indicators = append(indicators, "Frequent duplicate messages")
	}

	return DimensionResult{Score: clampScore(score), Indicators: indicators}
}

// duplicateRatio is 1 - distinct/total over the trailing duplicateWindow
// messages, taken in storage order rather than timestamp order
func (e *Engine) duplicateRatio(messages []Message) decimal.Decimal {
	tail := messages
	if len(tail) > duplicateWindow {
		tail = tail[len(tail)-duplicateWindow:]
	}

	distinct := make(map[string]struct{}, len(tail))
	for _, msg := range tail {
		distinct[msg.Content] = struct{}{}
	}

	return decimal.NewFromInt(1).Sub(
		decimal.NewFromInt(int64(len(distinct))).Div(decimal.NewFromInt(int64(len(tail)))),
	)
}
