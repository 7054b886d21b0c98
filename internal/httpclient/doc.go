// Package httpclient provides the HTTP client used to talk to the job
// backend.
//
// Built on go-resty/resty over the pooled transport from
// hashicorp/go-retryablehttp, with a golang.org/x/time/rate limiter in
// front of every request. Retries are off: job submission is
// fire-and-forget and must reach the backend at most once.
//
// Example Usage:
//
//	client := httpclient.NewClient(httpclient.Config{})
//	req, err := client.Request(ctx)
//	if err != nil {
//	    return err
//	}
//	resp, err := req.SetMultipartFormData(fields).Post(endpoint)
package httpclient
