package memory

import (
	"ai-homework-helper-be/pkg/store"
	"time"

	"github.com/patrickmn/go-cache"
)

type FlowRepository struct {
	cache *cache.Cache
}

func NewFlowRepository() *FlowRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &FlowRepository{
		cache: c,
	}
}

func (r *FlowRepository) Save(flow *store.Flow) {
	r.cache.Set(flow.Identity, flow, cache.DefaultExpiration)
}

func (r *FlowRepository) Get(identity string) (*store.Flow, bool) {
	if x, found := r.cache.Get(identity); found {
		return x.(*store.Flow), true
	}
	return nil, false
}

func (r *FlowRepository) Delete(identity string) {
	r.cache.Delete(identity)
}
