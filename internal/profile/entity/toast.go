package entity

import "time"

// DefaultToastDelay is how long a toast stays visible.
const DefaultToastDelay = 3 * time.Second

const ToastPasswordSaved = "Password saved!"

// Toast is a transient notification. Channel scopes it to one form session.
type Toast struct {
	ID      string
	Channel string
	Body    string
	Delay   time.Duration
}
