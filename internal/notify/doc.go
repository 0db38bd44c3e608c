// Package notify delivers matched concert records to a notification
// channel. The Handler subscribes to the NewRecordsFound occurrence and
// never lets a channel failure propagate back into the workflow.
package notify
