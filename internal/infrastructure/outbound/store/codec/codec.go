package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notes-blog-service/internal/custom_errors"
	ports "notes-blog-service/internal/domain/ports/output"
)

const (
	QueryLoad = "store_load"
	QuerySave = "store_save"
)

// ValidateName rejects collection names that could escape the backing namespace.
func ValidateName(collection string) error {
	if collection == "" || strings.HasPrefix(collection, ".") || strings.ContainsAny(collection, `/\`) {
		return fmt.Errorf("%w: invalid collection name %q", custom_errors.ErrStorage, collection)
	}
	return nil
}

func Encode(collection string, src any) ([]byte, error) {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", custom_errors.ErrStorage, collection, err)
	}
	return data, nil
}

// Decode treats blank content as an empty collection.
func Decode(collection string, data []byte, dest any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: corrupt collection %s: %w", custom_errors.ErrStorage, collection, err)
	}
	return nil
}

func Observe(metrics ports.MetricsProvider, queryType string, start time.Time, success bool) {
	metrics.IncrementDatabaseQueries(queryType, success)
	metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}
