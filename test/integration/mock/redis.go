package mock

import (
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a miniredis server and a client connected to it.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts an in-process Redis server.
func NewRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

// Clear removes all keys.
func (r *Redis) Clear() {
	r.Server.FlushAll()
}

// FastForward moves key expiry forward, e.g. past the snapshot TTL.
func (r *Redis) FastForward(d time.Duration) {
	r.Server.FastForward(d)
}

// Keys lists the keys currently stored.
func (r *Redis) Keys() []string {
	return r.Server.Keys()
}

// Close stops the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.Server.Close()
}
