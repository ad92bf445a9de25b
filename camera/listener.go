// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

// Listener receives camera change notifications.
//
// CameraChanged is called synchronously from Update, on the goroutine that
// called Update, after the derived matrices have been refreshed.
// Listeners are compared by interface equality, so implementations should
// use pointer receivers.
type Listener interface {
	CameraChanged(c *Camera)
}

// Token identifies a subscription. The zero Token is never issued.
type Token uint64

type subscription struct {
	token    Token
	listener Listener
}

// Subscribe registers l for change notifications and returns its token.
//
// Subscribe is idempotent: subscribing a listener that is already
// subscribed returns the existing token and does not add a second entry,
// so the listener is still notified once per Update.
// A nil listener is ignored and yields the zero Token.
func (c *Camera) Subscribe(l Listener) Token {
	if l == nil {
		return 0
	}
	for _, s := range c.subs {
		if s.listener == l {
			return s.token
		}
	}
	c.nextToken++
	c.subs = append(c.subs, subscription{token: c.nextToken, listener: l})
	return c.nextToken
}

// Unsubscribe removes the subscription identified by tok.
// It reports whether a subscription was removed.
func (c *Camera) Unsubscribe(tok Token) bool {
	for i, s := range c.subs {
		if s.token == tok {
			// Copy on write: a notification in progress keeps iterating
			// over the slice it started with.
			subs := make([]subscription, 0, len(c.subs)-1)
			subs = append(subs, c.subs[:i]...)
			c.subs = append(subs, c.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribed reports whether l is currently subscribed.
func (c *Camera) Subscribed(l Listener) bool {
	for _, s := range c.subs {
		if s.listener == l {
			return true
		}
	}
	return false
}

// Listeners returns the number of active subscriptions.
func (c *Camera) Listeners() int {
	return len(c.subs)
}

func (c *Camera) notify() {
	subs := c.subs
	for _, s := range subs {
		s.listener.CameraChanged(c)
	}
}
