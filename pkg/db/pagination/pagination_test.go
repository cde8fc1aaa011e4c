package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "12345", CreatedAt: "2024-03-01T10:00:00Z"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	require.Equal(t, "12345", cursor.ID)
	require.Equal(t, "2024-03-01T10:00:00Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	require.ErrorIs(t, err, ErrInvalidPageToken)

	_, err = DecodeCursor("bm90IGpzb24")
	require.ErrorIs(t, err, ErrInvalidPageToken)
}

type row struct {
	ID string
}

func makeRows(n int) []*row {
	rows := make([]*row, n)
	for i := range rows {
		rows[i] = &row{ID: strconv.Itoa(i)}
	}
	return rows
}

func TestBuildCursorPageInfo(t *testing.T) {
	encode := func(r *row) string { return "token-" + r.ID }

	info := BuildCursorPageInfo(makeRows(3), 2, encode)
	require.NotNil(t, info)
	require.True(t, info.HasMore)
	require.Equal(t, "token-1", info.NextPageToken)

	info = BuildCursorPageInfo(makeRows(2), 2, encode)
	require.NotNil(t, info)
	require.False(t, info.HasMore)
	require.Empty(t, info.NextPageToken)

	require.Nil(t, BuildCursorPageInfo(makeRows(2), 0, encode))
}
