// Package match scores concert records against a user's preference profile
// and selects the records worth notifying about.
package match
