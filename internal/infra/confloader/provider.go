package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on the
// override provider. Koanf falls back to Read for map-backed providers.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported, use Read")

// overrideProvider feeds a plain map into koanf. Used for programmatic
// overrides and for tests that want to skip the file and env layers.
type overrideProvider map[string]any

func (p overrideProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read unflattens dotted keys so "thread.stop_timeout" merges into the
// nested thread section that Unmarshal reads, not a literal flat key.
func (p overrideProvider) Read() (map[string]any, error) {
	return maps.Unflatten(p, "."), nil
}
