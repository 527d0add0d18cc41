// Package events fans one event out to several notifiers.
package events

import (
	"context"
	"errors"

	"moving/internal/core/ports"
)

type Notifier struct {
	targets []ports.Notifier
}

func NewNotifier(targets ...ports.Notifier) *Notifier {
	return &Notifier{targets: targets}
}

// Notify tries every target even if some fail and returns their joined errors.
func (n *Notifier) Notify(ctx context.Context, event ports.Event) error {
	var err error
	for _, t := range n.targets {
		if t == nil {
			continue
		}
		err = errors.Join(err, t.Notify(ctx, event))
	}
	return err
}
