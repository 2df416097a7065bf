package common

import (
	"sync"

	"github.com/burugo/thing"
	"github.com/burugo/thing/drivers/db/sqlite"
)

var (
	thingCacheOnce sync.Once
	thingCacheErr  error
)

// InitThingCache configures thing with its default local cache. thing needs
// a database adapter to be configured, so an in-memory sqlite one is used;
// nothing is stored in it.
func InitThingCache() error {
	thingCacheOnce.Do(func() {
		dbAdapter, err := sqlite.NewSQLiteAdapter(":memory:")
		if err != nil {
			thingCacheErr = err
			return
		}
		thingCacheErr = thing.Configure(dbAdapter, nil)
		if thingCacheErr == nil {
			SysLog("Redis is not enabled, using local cache")
		}
	})
	return thingCacheErr
}
