// Package jobs holds the job form snapshot and the fire-and-forget
// submission to the backend's /run endpoint.
//
// Fields travel as multipart form data under the names url, target_time,
// button_keywords, chrome_path, user_data_dir and profile_name. Nothing is
// validated here; the backend owns interpretation (target_time is by
// convention TargetTimeLayout, button_keywords is comma separated).
package jobs
