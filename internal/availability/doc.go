// Package availability implements the debounced username availability check
// used by the registration flow.
//
// A Checker receives every edit of the candidate username. Candidates that
// are too short are rejected synchronously. Longer candidates arm a quiet
// period timer; when it elapses without a further edit exactly one lookup is
// issued. Each edit bumps a generation counter and cancels whatever is
// scheduled or in flight, so only the result for the latest candidate can
// ever reach the verdict.
package availability
