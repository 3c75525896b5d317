package view

import (
	"time"
)

// NotificationDuration is how long a notification stays visible.
const NotificationDuration = 3 * time.Second

type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsError   bool      `json:"isError"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type notifications struct {
	nextID int64
	items  []Notification
}

func (n *notifications) add(message string, isError bool, now time.Time) Notification {
	n.nextID++
	notification := Notification{
		ID:        n.nextID,
		Message:   message,
		IsError:   isError,
		ExpiresAt: now.Add(NotificationDuration),
	}
	n.items = append(n.items, notification)
	return notification
}

// active drops expired notifications and returns a copy of the rest.
func (n *notifications) active(now time.Time) []Notification {
	kept := n.items[:0]
	for _, item := range n.items {
		if now.Before(item.ExpiresAt) {
			kept = append(kept, item)
		}
	}
	n.items = kept
	return append([]Notification{}, kept...)
}
