package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/books?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", query: "", wantLimit: 5, wantOffset: 0},
		{name: "explicit", query: "limit=20&offset=40", wantLimit: 20, wantOffset: 40},
		{name: "upper bound", query: "limit=100", wantLimit: 100},
		{name: "limit zero", query: "limit=0", wantErr: true},
		{name: "limit too large", query: "limit=101", wantErr: true},
		{name: "negative offset", query: "offset=-1", wantErr: true},
		{name: "not a number", query: "limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParsePaginationParams(contextWithQuery(tt.query))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(12, 5, 5, 5)
	assert.True(t, info.HasMore)

	info = NewPaginationInfo(12, 5, 10, 2)
	assert.False(t, info.HasMore)
	assert.Equal(t, int64(12), info.TotalItems)
}

func TestCalendarDaysBetween(t *testing.T) {
	due := time.Date(2026, 1, 11, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, CalendarDaysBetween(due, due.Add(20*time.Minute)))
	assert.Equal(t, 1, CalendarDaysBetween(due, due.Add(31*time.Minute)))
	assert.Equal(t, 3, CalendarDaysBetween(due, time.Date(2026, 1, 14, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, -2, CalendarDaysBetween(due, time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)))

	// Offsets are normalised to UTC before truncation
	ist := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, 0, CalendarDaysBetween(due, time.Date(2026, 1, 12, 4, 0, 0, 0, ist)))
}

func TestNilIfBlank(t *testing.T) {
	blank := "   "
	value := " Turkish "

	assert.Nil(t, NilIfBlank(nil))
	assert.Nil(t, NilIfBlank(&blank))
	require.NotNil(t, NilIfBlank(&value))
	assert.Equal(t, "Turkish", *NilIfBlank(&value))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% Go\_lang`, EscapeLike("100% Go_lang"))
}
