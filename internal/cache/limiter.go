package cache

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"paper2plan/internal/config"

	"github.com/gofiber/fiber/v2"
	fiberredis "github.com/gofiber/storage/redis/v3"
)

// limiterDialTimeout bounds the reachability check before the storage is built
const limiterDialTimeout = 2 * time.Second

// NewLimiterStorage returns Redis storage for the HTTP rate limiter so
// several server processes share one request count per client. It returns
// nil and no error when no Redis address is configured.
func NewLimiterStorage(cfg config.CacheConfig) (fiber.Storage, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	host, port, err := splitRedisAddr(cfg.RedisAddr)
	if err != nil {
		return nil, err
	}

	// the storage panics when it cannot connect, so check first
	conn, err := net.DialTimeout("tcp", cfg.RedisAddr, limiterDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("redis not reachable at %s: %w", cfg.RedisAddr, err)
	}
	conn.Close()

	return fiberredis.New(fiberredis.Config{
		Host:     host,
		Port:     port,
		Password: cfg.RedisPassword,
		Database: cfg.RedisDB,
		PoolSize: 10,
	}), nil
}

// LimiterKey is the storage key of a client's request count
func LimiterKey(prefix, ip string) string {
	return prefix + "ratelimit:" + ip
}

func splitRedisAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid redis port %q: %w", portStr, err)
	}
	if host == "" {
		host = "localhost"
	}
	return host, port, nil
}
