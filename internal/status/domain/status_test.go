package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldPromote(t *testing.T) {
	s1 := Status{ID: "s1", StarsCount: 5}
	s2 := Status{ID: "s2", StarsCount: 2}
	owned := []Status{s1, s2}

	assert.Equal(t, 5, MaxStars(owned))
	assert.True(t, ShouldPromote(s1, owned))
	assert.False(t, ShouldPromote(s2, owned))

	// 同分也算
	s3 := Status{ID: "s3", StarsCount: 5}
	assert.True(t, ShouldPromote(s3, append(owned, s3)))

	// 全部 0 星不升級
	zero := []Status{{ID: "a"}, {ID: "b"}}
	assert.False(t, ShouldPromote(zero[0], zero))
	assert.Equal(t, 0, MaxStars(nil))
}
