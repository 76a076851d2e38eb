// Package browser implements the crawl automation core: a tab registry that
// owns a single browser session, the action tools the orchestrator invokes
// against it, and the snapshot pipeline that turns raw page markup into
// sanitized, size-bounded fragments.
//
// # Architecture
//
// The package is built around three pieces:
//
//  1. Manager: owns at most one live browser session and its named tabs
//  2. Action tools: one tool per orchestrator operation (launch, click,
//     scroll, navigate, snapshot, ...), each reporting a single outcome line
//  3. Snapshot pipeline: scoped extraction, ordered sanitization rules, and
//     screenshot capture feeding the render sink
//
// # Session lifecycle
//
// launch_browser starts a session with one named tab; any session already
// live is torn down first, so there is never more than one browser process.
// Tabs are addressed by unique names; actions that omit a tab name target the
// oldest registered tab. close_browser (or a process termination signal)
// releases the session and every tab it owns.
//
// # Error reporting
//
// Tools return ordinary Go errors; the dispatcher converts every failure
// into a reported text line, so the orchestrator only ever sees outcome
// strings. Soft conditions (selector matched nothing, zero extraction
// matches) are successful outcomes, not errors.
package browser
