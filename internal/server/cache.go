// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of rendered pages kept in memory.
const DefaultCacheSize = 128

type cachedPage struct {
	modTime time.Time
	size    int64
	body    []byte
}

// pageCache holds rendered pages keyed by path. Entries are stale once the file's
// modification time or size differs from the one recorded at render time.
type pageCache struct {
	lru *lru.Cache[string, cachedPage]
}

func newPageCache(size int) (*pageCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	c, err := lru.New[string, cachedPage](size)
	if err != nil {
		return nil, err
	}

	return &pageCache{lru: c}, nil
}

func (c *pageCache) get(path string, modTime time.Time, size int64) ([]byte, bool) {
	p, ok := c.lru.Get(path)
	if !ok {
		return nil, false
	}

	if !p.modTime.Equal(modTime) || p.size != size {
		c.lru.Remove(path)
		return nil, false
	}

	return p.body, true
}

func (c *pageCache) put(path string, modTime time.Time, size int64, body []byte) {
	c.lru.Add(path, cachedPage{modTime: modTime, size: size, body: body})
}

func (c *pageCache) len() int {
	return c.lru.Len()
}
