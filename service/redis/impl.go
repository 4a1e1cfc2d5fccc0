package redis

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/auctionhaus/goapi/base/ctx"
	"github.com/auctionhaus/goapi/base/metrics"
	"github.com/auctionhaus/goapi/domain/keys"
)

// Forever is the expire value for keys without a ttl
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")

	// ErrExpireNotExistOrTimeout is returned when EXPIRE hits a missing
	// key or the timeout could not be set
	ErrExpireNotExistOrTimeout = errors.New("key does not exist or the timeout could not be set")
)

// Service abstracts the redis commands used by this repository.
type Service interface {
	Name() string

	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	SetNX(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	GetStruct(c ctx.Ctx, key string, val interface{}) error
	SetStruct(c ctx.Ctx, key string, val interface{}, expire time.Duration) error
	Del(c ctx.Ctx, ks ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	TTL(c ctx.Ctx, key string) (int, error)
	Incrby(c ctx.Ctx, key string, val int) (int64, error)
	Expire(c ctx.Ctx, key string, ttl time.Duration) error
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

func New(name string, met metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   met,
		pools: pools,
	}
}

func (r *redImpl) Name() string {
	return r.name
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap improves redigo's performance,
	// bacause longer an connection is hold and not closed, the
	// pool need to handle more connections at the same time and
	// getConn time might burst.
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) tags(funcName, key string) []string {
	return []string{
		"func", funcName,
		"cluster", r.name,
		"prefix", keys.GetPrefix(key),
	}
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err := r.connDo(context, "SET", key, val)
		if err != nil {
			context.WithField("err", err).Error("set redis failed")
		}
		return err
	}
	r.met.BumpAvg("ttl", expire.Seconds(), tags...)
	_, err := r.connDo(context, "SET", key, val, "PX", int(expire/time.Millisecond))
	if err != nil {
		context.WithField("err", err).Error("set redis failed")
	}
	return err
}

func (r *redImpl) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("setnx", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		_, err = redis.Bytes(r.connDo(context, "SET", key, val, "nx"))
	} else {
		_, err = redis.Bytes(r.connDo(context, "SET", key, val, "nx", "px", int(expire/time.Millisecond)))
	}
	return err
}

func (r *redImpl) GetStruct(context ctx.Ctx, key string, val interface{}) error {
	raw, err := r.Get(context, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, val)
}

func (r *redImpl) SetStruct(context ctx.Ctx, key string, val interface{}, expire time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return r.Set(context, key, raw, expire)
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, nil
	}
	tags := r.tags("del", ks[0])
	defer r.met.BumpTime("time", tags...).End()

	args := make([]interface{}, 0, len(ks))
	for _, k := range ks {
		args = append(args, k)
	}
	return redis.Int(r.connDo(context, "DEL", args...))
}

func (r *redImpl) Exists(context ctx.Ctx, key string) (bool, error) {
	tags := r.tags("exists", key)
	defer r.met.BumpTime("time", tags...).End()

	return redis.Bool(r.connDo(context, "EXISTS", key))
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int, error) {
	tags := r.tags("ttl", key)
	defer r.met.BumpTime("time", tags...).End()

	return redis.Int(r.connDo(context, "TTL", key))
}

func (r *redImpl) Incrby(context ctx.Ctx, key string, val int) (int64, error) {
	tags := r.tags("incrby", key)
	defer r.met.BumpTime("time", tags...).End()

	return redis.Int64(r.connDo(context, "INCRBY", key, val))
}

func (r *redImpl) Expire(context ctx.Ctx, key string, ttl time.Duration) error {
	tags := r.tags("expire", key)
	defer r.met.BumpTime("time", tags...).End()

	if ttl == Forever {
		_, err := r.connDo(context, "PERSIST", key)
		if err != nil {
			context.WithField("err", err).Error("Expire PERSIST redis key failed")
		}
		return err
	}

	reply, err := r.connDo(context, "EXPIRE", key, int(ttl/time.Second))
	if err != nil {
		context.WithField("err", err).Error("Expire redis failed")
		return err
	}
	// Return value will be 0 if key does not exist or the timeout could not be set.
	if reply.(int64) != 1 {
		return ErrExpireNotExistOrTimeout
	}
	return nil
}
