package recommend

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// cacheKey digests the canonical JSON encoding of the request. Map keys are
// encoded sorted, so equal requests share a key. ok is false when caching is
// disabled or the request cannot be encoded.
func (e *Engine) cacheKey(req Request) (key string, ok bool) {
	if e.cache == nil {
		return key, ok
	}

	data, err := json.Marshal(req)
	if err != nil {
		e.logger.Debug().Err(err).Msg("request not cacheable")
		return key, ok
	}

	key = "rec:" + strconv.FormatUint(xxhash.Sum64(data), 16)
	ok = true

	return key, ok
}
