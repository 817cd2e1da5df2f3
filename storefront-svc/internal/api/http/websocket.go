package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"campus-storefront/changefeed"
	"campus-storefront/storefront-svc/internal/domain"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	realtimeBuffer = 32
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Frame is one message on the realtime socket.
type Frame struct {
	Event string           `json:"event"`
	Data  changefeed.Event `json:"data"`
}

func frameName(evt changefeed.Event) string {
	return string(evt.Table) + "." + strings.ToLower(string(evt.EventType))
}

// realtimeStream streams change events until the client goes away. Stock and
// product changes are public; invoice changes need a token and only carry
// the caller's own invoices.
func (h *Handler) realtimeStream(w http.ResponseWriter, r *http.Request) {
	tables, err := parseTables(r.URL.Query().Get("tables"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var identity *domain.Identity
	for _, table := range tables {
		if table != changefeed.TableInvoices {
			continue
		}
		token := r.URL.Query().Get("token")
		if token == "" {
			token = bearerToken(r)
		}
		verified, err := h.Auth.Verify(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}
		identity = &verified
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := make(chan changefeed.Event, realtimeBuffer)
	for _, table := range tables {
		sub := h.Feed.Subscribe(table, realtimeBuffer)
		defer sub.Close()
		go func(events <-chan changefeed.Event) {
			for evt := range events {
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}(sub.Events())
	}

	// the read loop only notices the client closing
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-out:
			if !visibleTo(evt, identity) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(Frame{Event: frameName(evt), Data: evt}); err != nil {
				log.Debugf("realtime client gone: %v", err)
				return
			}
		}
	}
}

func parseTables(raw string) ([]changefeed.Table, error) {
	if raw == "" {
		return []changefeed.Table{changefeed.TableStock, changefeed.TableProducts}, nil
	}
	seen := map[changefeed.Table]bool{}
	var tables []changefeed.Table
	for _, name := range strings.Split(raw, ",") {
		table, err := changefeed.ParseTable(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if !seen[table] {
			seen[table] = true
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func visibleTo(evt changefeed.Event, identity *domain.Identity) bool {
	if evt.Table != changefeed.TableInvoices {
		return true
	}
	if identity == nil {
		return false
	}
	if identity.Role == domain.RoleStaff {
		return true
	}
	row, err := changefeed.DecodeInvoice(evt)
	return err == nil && row.CustomerID == identity.UserID
}
