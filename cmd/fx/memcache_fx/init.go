package memcache_fx

import (
	"go.uber.org/fx"

	"roamly/internal/infra"
	mem "roamly/pkg/memcache"
)

var Module = fx.Provide(provideLockStore)

// provideLockStore prefers Redis so the checkout idempotency lock holds
// across replicas; without REDIS_URL a process-local store is used.
func provideLockStore() mem.LockStore {
	if client := infra.InitRedis(); client != nil {
		return mem.NewRedisLockStore(client)
	}
	return mem.NewLocalLockStore()
}
