// Package practice implements the practice session state machine.
//
// A session moves Loading -> {AwaitingReveal | AwaitingRating | Submitting}
// -> Complete. Every accepted transition except entry into Loading and
// Complete emits a persist effect to the envelope store, so a reload within
// the TTL resumes mid-session; entry into Complete clears the slot. The
// due-count broadcaster only ever receives authoritative values: the
// server's counts, or totalDue - reviewed from a just-resumed session.
package practice
