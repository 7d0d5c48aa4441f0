// AngelaMos | 2026
// json.go

package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carterperez-dev/storefront/internal/core"
)

// GetJSON decodes the value at key into a T. Undecodable values wrap
// core.ErrInvalidRecord so callers can tell corruption from absence.
func GetJSON[T any](ctx context.Context, s Store, key string) (*T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %q: %w: %w", key, core.ErrInvalidRecord, err)
	}

	return &out, nil
}

func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	return s.Set(ctx, key, raw)
}

// UpdateJSON is Update with JSON on both sides. fn receives the zero T when
// the key is absent.
func UpdateJSON[T any](
	ctx context.Context,
	s Store,
	key string,
	fn func(current T, found bool) (T, error),
) error {
	return s.Update(ctx, key, func(raw []byte, found bool) ([]byte, error) {
		var current T
		if found {
			if err := json.Unmarshal(raw, &current); err != nil {
				return nil, fmt.Errorf(
					"decode %q: %w: %w",
					key,
					core.ErrInvalidRecord,
					err,
				)
			}
		}

		next, err := fn(current, found)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", key, err)
		}

		return encoded, nil
	})
}
