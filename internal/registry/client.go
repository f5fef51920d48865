package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

const userAgent = "localstack-badge-service/1.0"

// fetchJSON GETs url and decodes the body into out. Network errors, 5xx and
// 429 responses retry with exponential backoff inside the request deadline;
// every other failure maps to the error taxonomy immediately.
func fetchJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out interface{}) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decoding %s: %w", url, err))
			}
			return nil
		case resp.StatusCode >= http.StatusInternalServerError,
			resp.StatusCode == http.StatusTooManyRequests:
			return &HTTPError{StatusCode: resp.StatusCode, URL: url}
		default:
			return backoff.Permanent(&HTTPError{StatusCode: resp.StatusCode, URL: url})
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 3 * time.Second

	notify := func(err error, wait time.Duration) {
		util.Logger.Sugar().Warnf("retrying %s in %s: %v", url, wait, err)
	}

	return backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify)
}
