// Command schedpanel is the control panel for the browser automation
// scheduler.
//
// Usage:
//
//	schedpanel [panel]        interactive control panel (default)
//	schedpanel submit         submit one job, optionally --follow the log
//	schedpanel tail           print the backend log stream
//	schedpanel serve          run the local dev backend
//
// Configuration is read from the environment (TARGETURL, STREAM_URL,
// SUBMIT_URL, LOG_LEVEL, ...) and overridden by flags.
package main
