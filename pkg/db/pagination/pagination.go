// Package pagination implements cursor-based pagination for list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidPageToken = errors.New("invalid page token")

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type Cursor struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidPageToken
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrInvalidPageToken
	}
	return c, nil
}

// Apply scopes a query for cursor pagination. It fetches page_size+1 rows so
// the caller can detect whether more pages exist; rows are keyed on
// (created_at, id) descending.
func Apply(page Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.PageToken != "" {
			cursor, err := DecodeCursor(page.PageToken)
			if err == nil {
				if at, terr := time.Parse(time.RFC3339, cursor.CreatedAt); terr == nil {
					db = db.Where("(created_at, id) < (?, ?)", at, cursor.ID)
				}
			}
		}
		if page.PageSize > 0 {
			db = db.Limit(page.PageSize + 1)
		}
		return db
	}
}

// BuildCursorPageInfo inspects an over-fetched result set and produces the
// next-page token. encode renders the cursor for the last row of the page.
func BuildCursorPageInfo[T any](items []*T, pageSize int, encode func(*T) string) *PageInfo {
	if pageSize <= 0 {
		return nil
	}
	info := &PageInfo{}
	if len(items) > pageSize {
		info.HasMore = true
		last := items[pageSize-1]
		info.NextPageToken = encode(last)
	}
	return info
}
