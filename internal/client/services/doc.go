// Package services contains the application services behind the terminal
// client's commands: authentication with a persisted session, forum
// operations, the circuit-broken username lookup used by the availability
// checker and the connectivity watcher that drives online/offline mode.
package services
