// Package store 提供无模式键值表存储：按 (表名, 主键) 读写字段化记录，
// 支持部分合并更新、存储端原子数值自增以及按表递增的主键分配。
package store

import (
	"context"
	"errors"
	"strconv"
)

// Record 字段化记录（字段名 -> JSON 兼容值）
type Record map[string]interface{}

// 存储层错误
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("store: record not found")

	// ErrUnavailable 底层存储调用失败
	ErrUnavailable = errors.New("store: backend unavailable")
)

// TableStore 表存储接口
type TableStore interface {
	// Get 按主键读取记录
	Get(ctx context.Context, table string, id uint) (Record, error)

	// Put 无条件写入整条记录（插入或整体覆盖）
	Put(ctx context.Context, table string, id uint, record Record) error

	// Update 合并给定字段到既有记录，记录不存在时返回 ErrNotFound
	Update(ctx context.Context, table string, id uint, fields Record) (Record, error)

	// Increment 对指定数值字段原子加上增量（缺失字段按 0 处理），返回更新后的记录。
	// 同一记录上的并发自增不会丢失更新。
	Increment(ctx context.Context, table string, id uint, deltas map[string]float64) (Record, error)

	// Delete 删除记录，记录不存在时为空操作
	Delete(ctx context.Context, table string, id uint) error

	// NextID 分配该表下一个主键，从 1 开始严格递增，并发调用不重复
	NextID(ctx context.Context, table string) (uint, error)

	// SeedID 抬高该表的主键计数器到不低于 floor（仅用于导入工具）
	SeedID(ctx context.Context, table string, floor uint) error

	// List 全表扫描，返回顺序不保证
	List(ctx context.Context, table string) ([]Record, error)
}

// ID 读取记录主键
func (r Record) ID() uint {
	return r.Uint("id")
}

// Uint 按字段名读取无符号整数（缺失或类型不符返回 0）
func (r Record) Uint(field string) uint {
	switch v := r[field].(type) {
	case float64:
		if v > 0 {
			return uint(v)
		}
	case uint:
		return v
	case int:
		if v > 0 {
			return uint(v)
		}
	case int64:
		if v > 0 {
			return uint(v)
		}
	}
	return 0
}

// Float 按字段名读取浮点数（缺失或无法解析返回 0）。
// Redis 哈希字段以字符串返回，数值字符串同样可读。
func (r Record) Float(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// String 按字段名读取字符串（缺失返回空串）
func (r Record) String(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}
