package storage

import (
	"context"
	"errors"
	"time"

	"campus-storefront/changefeed"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

var ErrListenerClosed = errors.New("notification listener closed")

// Listener is the part of *pq.Listener the relay reads from.
type Listener interface {
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// PGListener yields the payloads sent on the row_changes channel.
type PGListener struct {
	Listener     Listener
	PingInterval time.Duration
}

func NewPGListener(dsn string) (*PGListener, error) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed:
			log.Warnf("Listener connection attempt failed: %v", err)
		case pq.ListenerEventDisconnected:
			log.Warnf("Listener disconnected: %v", err)
		case pq.ListenerEventReconnected:
			log.Info("Listener reconnected, changes made while disconnected were not relayed")
		}
	})
	if err := listener.Listen(changefeed.NotifyChannel); err != nil {
		listener.Close()
		return nil, err
	}
	return &PGListener{Listener: listener, PingInterval: 90 * time.Second}, nil
}

func (l *PGListener) Next(ctx context.Context) ([]byte, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case n, ok := <-l.Listener.NotificationChannel():
			if !ok {
				return nil, ErrListenerClosed
			}
			// a nil notification follows a reconnect
			if n == nil {
				continue
			}
			return []byte(n.Extra), nil
		case <-time.After(l.PingInterval):
			go func() {
				if err := l.Listener.Ping(); err != nil {
					log.Warnf("Listener ping failed: %v", err)
				}
			}()
		}
	}
}

func (l *PGListener) Close() error {
	return l.Listener.Close()
}
