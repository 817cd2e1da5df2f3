package tests

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"campus-storefront/changefeed"
	"campus-storefront/storefront-svc/internal/mocks"
	"campus-storefront/storefront-svc/internal/realtime"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func productEvent(id int) changefeed.Event {
	return changefeed.Event{
		EventType:  changefeed.Update,
		Table:      changefeed.TableProducts,
		After:      json.RawMessage(`{"id":` + strconv.Itoa(id) + `,"name":"Bolon","active":true}`),
		CommitTime: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
}

func TestFeed_DispatchByTable(t *testing.T) {
	feed := realtime.NewFeed()
	products := feed.Subscribe(changefeed.TableProducts, 4)
	alsoProducts := feed.Subscribe(changefeed.TableProducts, 4)
	stock := feed.Subscribe(changefeed.TableStock, 4)

	delivered := feed.Dispatch(productEvent(1))

	assert.Equal(t, 2, delivered)
	assert.Equal(t, productEvent(1), <-products.Events())
	assert.Equal(t, productEvent(1), <-alsoProducts.Events())
	assert.Empty(t, stock.Events())
	assert.Equal(t, changefeed.TableStock, stock.Table())
}

func TestFeed_FullBufferDropsEvent(t *testing.T) {
	feed := realtime.NewFeed()
	sub := feed.Subscribe(changefeed.TableProducts, 1)

	assert.Equal(t, 1, feed.Dispatch(productEvent(1)))
	assert.Equal(t, 0, feed.Dispatch(productEvent(2)))

	assert.Equal(t, productEvent(1), <-sub.Events())
	assert.Empty(t, sub.Events())
}

func TestFeed_CloseSubscription(t *testing.T) {
	feed := realtime.NewFeed()
	sub := feed.Subscribe(changefeed.TableInvoices, 1)
	assert.Equal(t, 1, feed.Subscribers(changefeed.TableInvoices))

	sub.Close()
	sub.Close()

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.Equal(t, 0, feed.Subscribers(changefeed.TableInvoices))
	assert.Equal(t, 0, feed.Dispatch(changefeed.Event{Table: changefeed.TableInvoices}))
}

func TestFeed_CloseEndsEverySubscription(t *testing.T) {
	feed := realtime.NewFeed()
	first := feed.Subscribe(changefeed.TableStock, 1)
	second := feed.Subscribe(changefeed.TableProducts, 1)

	feed.Close()
	first.Close()

	_, open := <-first.Events()
	assert.False(t, open)
	_, open = <-second.Events()
	assert.False(t, open)

	late := feed.Subscribe(changefeed.TableStock, 1)
	_, open = <-late.Events()
	assert.False(t, open)
}

func TestKafkaSource_Read(t *testing.T) {
	payload, err := productEvent(3).Encode()
	require.NoError(t, err)

	tests := []struct {
		name          string
		message       kafka.Message
		readErr       error
		wantEvent     bool
		wantTransport bool
	}{
		{
			name:      "decodes relay payload",
			message:   kafka.Message{Topic: "product_changes", Value: payload},
			wantEvent: true,
		},
		{
			name:    "bad payload is not a transport failure",
			message: kafka.Message{Topic: "product_changes", Offset: 9, Value: []byte(`{"table":"users","eventType":"INSERT"}`)},
		},
		{
			name:          "broker failure",
			readErr:       errors.New("connection refused"),
			wantTransport: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			reader := mocks.NewMessageReader(t)
			reader.On("ReadMessage", mock.Anything).Return(testCase.message, testCase.readErr).Once()

			evt, err := realtime.NewKafkaSource(reader).Read(context.Background())

			switch {
			case testCase.wantEvent:
				require.NoError(t, err)
				assert.Equal(t, changefeed.TableProducts, evt.Table)
			case testCase.wantTransport:
				assert.ErrorIs(t, err, realtime.ErrSourceUnavailable)
			default:
				assert.ErrorIs(t, err, changefeed.ErrUnknownTable)
				assert.NotErrorIs(t, err, realtime.ErrSourceUnavailable)
			}
		})
	}
}

func TestFeed_RunPumpsSources(t *testing.T) {
	previous := realtime.RetryDelay
	realtime.RetryDelay = time.Millisecond
	defer func() { realtime.RetryDelay = previous }()

	payload, err := productEvent(4).Encode()
	require.NoError(t, err)

	reader := mocks.NewMessageReader(t)
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{}, errors.New("broker restarting")).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: []byte("not json")}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: payload}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(kafka.Message{}, context.Canceled)

	feed := realtime.NewFeed()
	sub := feed.Subscribe(changefeed.TableProducts, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.Run(ctx, realtime.NewKafkaSource(reader))
		close(done)
	}()

	select {
	case evt := <-sub.Events():
		assert.Equal(t, productEvent(4), evt)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
