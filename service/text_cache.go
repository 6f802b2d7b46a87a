package service

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

// TextCache keeps acquired page text so a re-upload of the same document
// skips OCR. Entries are keyed by content, never by filename.
type TextCache struct {
	cache *gocache.Cache
}

func NewTextCache(ttl, cleanupInterval time.Duration) *TextCache {
	return &TextCache{cache: gocache.New(ttl, cleanupInterval)}
}

func cacheKey(data []byte, password string) string {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *TextCache) Get(data []byte, password string) (dto.DocumentText, bool) {
	v, found := c.cache.Get(cacheKey(data, password))
	if !found {
		return dto.DocumentText{}, false
	}
	doc := v.(dto.DocumentText)
	doc.Pages = append([]string(nil), doc.Pages...)
	doc.Issues = append([]string(nil), doc.Issues...)
	return doc, true
}

func (c *TextCache) Set(data []byte, password string, doc dto.DocumentText) {
	c.cache.SetDefault(cacheKey(data, password), doc)
}

func (c *TextCache) Len() int {
	return c.cache.ItemCount()
}
