// Package app is the application root - the only package that wires
// multiple components together. It owns the shared due-count broadcaster,
// the envelope store, and the API client, and hands out controllers to the
// pages that mount them.
package app
