package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/queue"
	"github.com/iliyamo/game-storefront/internal/service"
	"github.com/iliyamo/game-storefront/internal/testutil"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []queue.CatalogEvent
	ctxs   []context.Context
}

func (r *recorder) Publish(ctx context.Context, ev queue.CatalogEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.ctxs = append(r.ctxs, ctx)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

type fixture struct {
	mem    *testutil.Memory
	svc    *service.CatalogService
	events *recorder
}

func newFixture() *fixture {
	mem := testutil.NewMemory()
	rec := &recorder{}
	svc := service.NewCatalogService(service.Stores{
		Games:      mem.Games(),
		Categories: mem.Categories(),
		Discounts:  mem.Discounts(),
		Images:     mem.Images(),
		Reviews:    mem.Reviews(),
		Library:    mem.Library(),
	}, rec)
	svc.Now = func() time.Time { return now }
	return &fixture{mem: mem, svc: svc, events: rec}
}

func (f *fixture) game(cat model.Category, name, price string) model.Game {
	return f.mem.AddGame(model.Game{CategoryID: cat.ID, Name: name, Developer: "Studio", Rating: "E",
		RegularPrice: decimal.RequireFromString(price)})
}

func cardIDs(v service.IndexView) []int64 {
	out := make([]int64, len(v.Games))
	for i, g := range v.Games {
		out[i] = g.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const day = 24 * time.Hour
