package cart

import (
	"context"
	"sync"

	"campus-storefront/changefeed"
	"campus-storefront/storefront-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Registry owns one Engine per signed-in user. A cart lives from the user's
// first cart operation until sign-out.
type Registry struct {
	gateway  StockGateway
	calendar domain.Calendar

	mu      sync.Mutex
	engines map[string]*Engine
}

// NewRegistry filters stock pushes to the calendar's today, which must be
// the zone the database resolves CURRENT_DATE in.
func NewRegistry(gateway StockGateway, calendar domain.Calendar) *Registry {
	return &Registry{
		gateway:  gateway,
		calendar: calendar,
		engines:  map[string]*Engine{},
	}
}

func (r *Registry) Get(userID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	engine, found := r.engines[userID]
	if !found {
		engine = NewEngine(r.gateway)
		r.engines[userID] = engine
	}
	return engine
}

// Drop discards the user's cart.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, userID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

// ApplyStock pushes a stock level to every cart holding the product and
// returns how many lines were refreshed.
func (r *Registry) ApplyStock(productID, stock int) int {
	r.mu.Lock()
	engines := make([]*Engine, 0, len(r.engines))
	for _, engine := range r.engines {
		engines = append(engines, engine)
	}
	r.mu.Unlock()

	updated := 0
	for _, engine := range engines {
		if engine.ApplyStock(productID, stock) {
			updated++
		}
	}
	return updated
}

// Follow applies today's daily_stock changes until ctx ends or the channel
// closes.
func (r *Registry) Follow(ctx context.Context, events <-chan changefeed.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-events:
			if !open {
				return
			}
			r.handle(evt)
		}
	}
}

func (r *Registry) handle(evt changefeed.Event) {
	if evt.Table != changefeed.TableStock || evt.Truncated {
		return
	}
	row, err := changefeed.DecodeStock(evt)
	if err != nil {
		log.Warnf("skipping stock event: %v", err)
		return
	}
	if row.StockDate != "" && row.StockDate[:min(len(row.StockDate), 10)] != r.calendar.Today() {
		return
	}

	stock := row.CurrentQuantity
	if evt.EventType == changefeed.Delete {
		stock = 0
	}
	if n := r.ApplyStock(row.ProductID, stock); n > 0 {
		log.WithFields(log.Fields{"product_id": row.ProductID, "stock": stock}).Debugf("refreshed %d cart lines", n)
	}
}
