package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON decodes the value stored under key into dst. found is false when
// the key has never been saved. A decode error leaves the caller to decide
// on a fallback; dst may be partially written in that case.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (found bool, err error) {
	raw, err := s.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("database: decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON serializes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("database: encode %s: %w", key, err)
	}
	return s.Save(ctx, key, string(data))
}
