package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore 基于 Redis 的表存储实现。
// 记录保存为哈希（字段值 JSON 编码），每张表维护一个主键集合与一个主键计数器。
// 合并更新与多字段自增通过服务端 Lua 脚本执行，保证单记录内的原子性。
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 表存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "sd"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// updateScript 存在性检查 + 字段合并，记录缺失返回 0
var updateScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
for i = 1, #ARGV, 2 do
	redis.call("HSET", KEYS[1], ARGV[i], ARGV[i + 1])
end
return 1
`)

// incrementScript 多字段 HINCRBYFLOAT 后返回整条记录，记录缺失返回 false
var incrementScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
for i = 1, #ARGV, 2 do
	redis.call("HINCRBYFLOAT", KEYS[1], ARGV[i], ARGV[i + 1])
end
return redis.call("HGETALL", KEYS[1])
`)

// seedScript 将计数器抬高到不低于给定下限
var seedScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
if floor > current then
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// Get 按主键读取记录
func (s *RedisStore) Get(ctx context.Context, table string, id uint) (Record, error) {
	raw, err := s.client.HGetAll(ctx, s.recordKey(table, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: hgetall %s: %v", ErrUnavailable, table, err)
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	return decodeHash(raw)
}

// Put 无条件写入整条记录
func (s *RedisStore) Put(ctx context.Context, table string, id uint, record Record) error {
	pairs, err := encodeFields(record)
	if err != nil {
		return err
	}
	key := s.recordKey(table, id)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, pairs...)
	pipe.SAdd(ctx, s.idSetKey(table), strconv.FormatUint(uint64(id), 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: put %s/%d: %v", ErrUnavailable, table, id, err)
	}
	return nil
}

// Update 合并给定字段到既有记录
func (s *RedisStore) Update(ctx context.Context, table string, id uint, fields Record) (Record, error) {
	pairs, err := encodeFields(fields)
	if err != nil {
		return nil, err
	}
	key := s.recordKey(table, id)
	result, err := updateScript.Run(ctx, s.client, []string{key}, pairs...).Int()
	if err != nil {
		return nil, fmt.Errorf("%w: update %s/%d: %v", ErrUnavailable, table, id, err)
	}
	if result == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, table, id)
}

// Increment 对数值字段执行存储端原子自增
func (s *RedisStore) Increment(ctx context.Context, table string, id uint, deltas map[string]float64) (Record, error) {
	args := make([]interface{}, 0, len(deltas)*2)
	for field, delta := range deltas {
		args = append(args, field, strconv.FormatFloat(delta, 'f', -1, 64))
	}
	key := s.recordKey(table, id)
	result, err := incrementScript.Run(ctx, s.client, []string{key}, args...).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: increment %s/%d: %v", ErrUnavailable, table, id, err)
	}
	flat, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: increment %s/%d: unexpected reply", ErrUnavailable, table, id)
	}
	raw := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		field, _ := flat[i].(string)
		value, _ := flat[i+1].(string)
		raw[field] = value
	}
	return decodeHash(raw)
}

// Delete 删除记录（记录缺失时为空操作）
func (s *RedisStore) Delete(ctx context.Context, table string, id uint) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.recordKey(table, id))
	pipe.SRem(ctx, s.idSetKey(table), strconv.FormatUint(uint64(id), 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: delete %s/%d: %v", ErrUnavailable, table, id, err)
	}
	return nil
}

// NextID 分配该表的下一个主键
func (s *RedisStore) NextID(ctx context.Context, table string) (uint, error) {
	id, err := s.client.Incr(ctx, s.seqKey(table)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: nextid %s: %v", ErrUnavailable, table, err)
	}
	return uint(id), nil
}

// SeedID 抬高主键计数器到不低于 floor
func (s *RedisStore) SeedID(ctx context.Context, table string, floor uint) error {
	if _, err := seedScript.Run(ctx, s.client, []string{s.seqKey(table)}, strconv.FormatUint(uint64(floor), 10)).Result(); err != nil {
		return fmt.Errorf("%w: seedid %s: %v", ErrUnavailable, table, err)
	}
	return nil
}

// List 全表扫描
func (s *RedisStore) List(ctx context.Context, table string) ([]Record, error) {
	ids, err := s.client.SMembers(ctx, s.idSetKey(table)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: smembers %s: %v", ErrUnavailable, table, err)
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		cmds = append(cmds, pipe.HGetAll(ctx, s.recordKey(table, uint(id))))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", ErrUnavailable, table, err)
	}

	records := make([]Record, 0, len(cmds))
	for _, cmd := range cmds {
		raw := cmd.Val()
		if len(raw) == 0 {
			continue
		}
		record, err := decodeHash(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *RedisStore) recordKey(table string, id uint) string {
	return fmt.Sprintf("%s:t:%s:%d", s.prefix, table, id)
}

func (s *RedisStore) idSetKey(table string) string {
	return fmt.Sprintf("%s:t:%s:ids", s.prefix, table)
}

func (s *RedisStore) seqKey(table string) string {
	return fmt.Sprintf("%s:t:%s:seq", s.prefix, table)
}

// encodeFields 将记录字段编码为 HSET 参数对。
// 数值字段编码为纯数字文本，HINCRBYFLOAT 可直接在其上运算。
func encodeFields(record Record) ([]interface{}, error) {
	pairs := make([]interface{}, 0, len(record)*2)
	for field, value := range record {
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", field, err)
		}
		pairs = append(pairs, field, string(payload))
	}
	return pairs, nil
}

func decodeHash(raw map[string]string) (Record, error) {
	record := make(Record, len(raw))
	for field, payload := range raw {
		var value interface{}
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			return nil, fmt.Errorf("decode field %q: %w", field, err)
		}
		record[field] = value
	}
	return record, nil
}
