package lib

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient(t *testing.T) {
	c := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	got := NewRedisClient(c)

	assert.Equal(t, c, got)
	assert.Equal(t, c, GetRedisClient())
}
