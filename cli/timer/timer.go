package timer

import (
	"time"
)

type Timer struct {
	startTime time.Time
}

func (t *Timer) Start() {
	t.startTime = time.Now()
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Estimated returns the remaining time for recordCount records once
// processedCount of them are done, or "" when nothing has been processed yet.
func (t *Timer) Estimated(recordCount int, processedCount int) string {
	if processedCount <= 0 || processedCount >= recordCount {
		return ""
	}

	perRecord := t.Elapsed() / time.Duration(processedCount)
	remainCount := recordCount - processedCount
	estimateDuration := perRecord * time.Duration(remainCount)

	return estimateDuration.Round(time.Second).String()
}
