// Package changefeed defines the row-change event shared by the relay that
// produces it and the storefront that consumes it.
package changefeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type EventType string

const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
	Delete EventType = "DELETE"
)

type Table string

const (
	TableStock    Table = "daily_stock"
	TableProducts Table = "products"
	TableInvoices Table = "invoices"
)

// NotifyChannel is the Postgres LISTEN/NOTIFY channel the row triggers use.
const NotifyChannel = "row_changes"

var topics = map[Table]string{
	TableStock:    "stock_changes",
	TableProducts: "product_changes",
	TableInvoices: "invoice_changes",
}

var ErrUnknownTable = errors.New("table is not watched")

type Event struct {
	EventType  EventType       `json:"eventType"`
	Table      Table           `json:"table"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	// Truncated rows were cut to fit the notification limit; read the row
	// again for the missing columns.
	Truncated  bool            `json:"truncated,omitempty"`
	CommitTime time.Time       `json:"commitTime"`
}

// Tables lists every watched table.
func Tables() []Table {
	return []Table{TableStock, TableProducts, TableInvoices}
}

func TopicFor(table Table) (string, error) {
	topic, ok := topics[table]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return topic, nil
}

func ParseTable(name string) (Table, error) {
	table := Table(name)
	if _, ok := topics[table]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return table, nil
}

// Decode parses a notification payload and checks that it names a watched
// table and a known event type.
func Decode(payload []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, fmt.Errorf("decode change event: %w", err)
	}
	if _, ok := topics[evt.Table]; !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownTable, evt.Table)
	}
	switch evt.EventType {
	case Insert, Update, Delete:
	default:
		return Event{}, fmt.Errorf("decode change event: unknown event type %q", evt.EventType)
	}
	return evt, nil
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Row returns the image that describes the row after the change, or the
// deleted row for DELETE events.
func (e Event) Row() json.RawMessage {
	if e.EventType == Delete {
		return e.Before
	}
	return e.After
}

// SalesKey names the Redis sorted set of units sold per product on a date.
func SalesKey(date string) string {
	return "sales:daily:" + date
}
