package model

import "fmt"

// TestResultData is the CI test-result document published per platform and
// track. Timestamp passes through untouched; the service never interprets it.
type TestResultData struct {
	Platform  string `json:"platform"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
	URLHTML   string `json:"url_html,omitempty"`
}

// Validate enforces the structural invariant of a test-result payload.
// A violating payload is treated like a failed fetch: never cached and
// never returned.
func (t *TestResultData) Validate() error {
	if t.Passed < 0 || t.Failed < 0 || t.Skipped < 0 || t.Total < 0 {
		return fmt.Errorf("test counts must be non-negative, got passed=%d failed=%d skipped=%d total=%d",
			t.Passed, t.Failed, t.Skipped, t.Total)
	}
	if sum := t.Passed + t.Failed + t.Skipped; t.Total != sum {
		return fmt.Errorf("total %d does not match passed+failed+skipped %d", t.Total, sum)
	}
	return nil
}
