package s2k

// Cache stores keys derived with s2k functions from one passphrase
// to avoid recomputation if multiple items are encrypted with
// the same parameters.
type Cache struct {
	derivedKeys map[Params][]byte
}

// NewCache creates a new empty s2k cache for reusing keys.
func NewCache() *Cache {
	return &Cache{
		derivedKeys: make(map[Params][]byte),
	}
}

// GetDerivedKeyOrElseCompute tries to retrieve the key for the given s2k
// parameters from the cache. If there is no hit, it derives the key with the
// s2k function from the passphrase, updates the cache, and returns the key.
func (c *Cache) GetDerivedKeyOrElseCompute(passphrase []byte, params *Params, expectedKeySize int) ([]byte, error) {
	key, found := c.derivedKeys[*params]
	if found && len(key) == expectedKeySize {
		return key, nil
	}
	f, err := params.Function()
	if err != nil {
		return nil, err
	}
	derived := make([]byte, expectedKeySize)
	f(derived, passphrase)
	c.derivedKeys[*params] = derived
	return derived, nil
}

// Reset clears the cache.
func (c *Cache) Reset() {
	c.derivedKeys = make(map[Params][]byte)
}
