package postgres

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// pageCursor marks a page boundary: the (created_at, id) key of the last row
// on the previous page. It travels as an opaque base64 token so callers
// cannot depend on its contents.
type pageCursor struct {
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
	ID        string `json:"id"`
}

func encodeCursor(createdAt time.Time, id string) string {
	b, _ := json.Marshal(pageCursor{
		CreatedAt: createdAt.UnixMilli(),
		ID:        id,
	})
	return base64.StdEncoding.EncodeToString(b)
}

func decodeCursor(s string) (time.Time, string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor: %w", err)
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor: %w", err)
	}
	return time.UnixMilli(c.CreatedAt).UTC(), c.ID, nil
}
