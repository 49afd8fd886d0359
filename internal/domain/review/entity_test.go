package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	assert.Nil(t, AverageRating(nil))

	avg := AverageRating([]int{4, 5})
	require.NotNil(t, avg)
	assert.Equal(t, 4.5, *avg)

	avg = AverageRating([]int{5, 4, 4})
	require.NotNil(t, avg)
	assert.Equal(t, 4.33, *avg)

	avg = AverageRating([]int{1, 2, 2})
	require.NotNil(t, avg)
	assert.Equal(t, 1.67, *avg)
}

func TestNewReview(t *testing.T) {
	r, err := NewReview(1, 2, 5, "很好")
	require.NoError(t, err)
	assert.Equal(t, uint(1), r.OwnerID())
	assert.False(t, r.CreatedAt.IsZero())

	for _, rating := range []int{0, 6, -1} {
		_, err := NewReview(1, 2, rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestReview_Update(t *testing.T) {
	r, err := NewReview(1, 2, 3, "一般")
	require.NoError(t, err)

	comment := "再读一遍后改观"
	require.NoError(t, r.Update(nil, &comment))
	assert.Equal(t, 3, r.Rating)
	assert.Equal(t, comment, r.Comment)

	bad := 9
	assert.ErrorIs(t, r.Update(&bad, nil), ErrInvalidRating)
	assert.Equal(t, 3, r.Rating)
}
