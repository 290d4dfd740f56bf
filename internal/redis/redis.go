package redis

import (
	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

func InitRedis(address, username, password string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}
