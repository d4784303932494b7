package database

import (
	"time"
)

// Connection definition connection setting
type Connection struct {
	ConnectStr string

	RetryCount int
	// RetryInterval 以秒為單位
	RetryInterval time.Duration
}
