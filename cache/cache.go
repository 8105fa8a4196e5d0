// Package cache holds objects that are expensive or pointless to load
// twice per process, such as parsed weights files. The shell and the bot
// rebuild engines from config, and those share what is loaded here.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

type LoadFunc func(key string) (any, error)

var globalObjectCache = &cache{objects: make(map[string]any)}

func (c *cache) get(key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load returns the object cached under key, calling loadFunc to create
// it the first time. Failed loads are not cached.
func Load(key string, loadFunc LoadFunc) (any, error) {
	return globalObjectCache.get(key, loadFunc)
}

// Evict drops key so the next Load reads it again.
func Evict(key string) {
	globalObjectCache.Lock()
	defer globalObjectCache.Unlock()
	delete(globalObjectCache.objects, key)
}
