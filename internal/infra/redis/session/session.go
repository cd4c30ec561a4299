package infra_session_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Driver keeps session payloads in redis under a shared key prefix. A missing
// session reads back as the empty string, not an error.
type Driver struct {
	client *redis.Client
	prefix string
}

func New(
	client *redis.Client,
	prefix string,
) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

func (d *Driver) Set(key string, value string, ttl time.Duration) error {
	if err := d.client.Set(d.fullKey(key), value, ttl).Err(); err != nil {
		return err
	}

	return nil
}

func (d *Driver) Get(key string) (string, error) {
	val, err := d.client.Get(d.fullKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	return val, nil
}

func (d *Driver) fullKey(key string) string {
	if d.prefix != "" {
		return d.prefix + ":" + key
	}
	return key
}
