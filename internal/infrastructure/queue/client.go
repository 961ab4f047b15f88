package queue

import (
	"github.com/hibiken/asynq"
)

// NewClient tạo asynq client dùng chung Redis với kvstore
func NewClient(redisAddr, password string, db int) *asynq.Client {
	return asynq.NewClient(RedisOpt(redisAddr, password, db))
}

func RedisOpt(redisAddr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	}
}
