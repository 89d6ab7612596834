package notify

import (
	"context"
	"errors"

	"github.com/tnylea/failwhale/pkg/domain/interfaces"
	"github.com/tnylea/failwhale/pkg/domain/model"
)

type multiNotifier struct {
	sinks []interfaces.Notifier
}

// Multi fans a notification out to every sink. All sinks are attempted even
// when one fails; the errors are joined.
func Multi(sinks ...interfaces.Notifier) interfaces.Notifier {
	return &multiNotifier{sinks: sinks}
}

func (n *multiNotifier) Notify(ctx context.Context, notif *model.Notification) error {
	var errs []error
	for _, sink := range n.sinks {
		if err := sink.Notify(ctx, notif); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
