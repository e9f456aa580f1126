// Package httputil provides the retry helper shared by registry clients.
//
// [Retry] re-runs an operation only when it fails with a [RetryableError],
// doubling the delay between attempts. Registry clients wrap network
// failures and 5xx responses in RetryableError and leave 404s and decode
// failures unwrapped, so those fail on the first attempt.
//
// The number of attempts is configured by the caller. verbump defaults to a
// single attempt so that a failing registry surfaces immediately; raise
// registry.retries in the configuration to tolerate flaky mirrors.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(ctx)
//	})
package httputil
