package store

import (
	"context"
	"sync"
)

// MemoryStore 进程内表存储实现，供测试与未启用 Redis 的部署使用。
// 读写均在互斥锁内完成，自增与主键分配因此满足与 Redis 驱动相同的原子性。
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[uint]Record
	seqs   map[string]uint
}

// NewMemoryStore 创建内存表存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string]map[uint]Record),
		seqs:   make(map[string]uint),
	}
}

// Get 按主键读取记录
func (s *MemoryStore) Get(ctx context.Context, table string, id uint) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.tables[table][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(record), nil
}

// Put 无条件写入整条记录
func (s *MemoryStore) Put(ctx context.Context, table string, id uint, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		rows = make(map[uint]Record)
		s.tables[table] = rows
	}
	rows[id] = cloneRecord(record)
	return nil
}

// Update 合并给定字段到既有记录
func (s *MemoryStore) Update(ctx context.Context, table string, id uint, fields Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tables[table][id]
	if !ok {
		return nil, ErrNotFound
	}
	for field, value := range fields {
		record[field] = cloneValue(value)
	}
	return cloneRecord(record), nil
}

// Increment 对数值字段原子自增（缺失字段按 0 处理）
func (s *MemoryStore) Increment(ctx context.Context, table string, id uint, deltas map[string]float64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.tables[table][id]
	if !ok {
		return nil, ErrNotFound
	}
	for field, delta := range deltas {
		record[field] = record.Float(field) + delta
	}
	return cloneRecord(record), nil
}

// Delete 删除记录（记录缺失时为空操作）
func (s *MemoryStore) Delete(ctx context.Context, table string, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables[table], id)
	return nil
}

// NextID 分配该表的下一个主键
func (s *MemoryStore) NextID(ctx context.Context, table string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[table]++
	return s.seqs[table], nil
}

// SeedID 抬高主键计数器到不低于 floor
func (s *MemoryStore) SeedID(ctx context.Context, table string, floor uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if floor > s.seqs[table] {
		s.seqs[table] = floor
	}
	return nil
}

// List 全表扫描
func (s *MemoryStore) List(ctx context.Context, table string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.tables[table]
	records := make([]Record, 0, len(rows))
	for _, record := range rows {
		records = append(records, cloneRecord(record))
	}
	return records, nil
}

// cloneRecord 深拷贝记录，避免调用方持有内部引用
func cloneRecord(record Record) Record {
	clone := make(Record, len(record))
	for field, value := range record {
		clone[field] = cloneValue(value)
	}
	return clone
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = cloneValue(item)
		}
		return items
	case map[string]interface{}:
		fields := make(map[string]interface{}, len(v))
		for k, item := range v {
			fields[k] = cloneValue(item)
		}
		return fields
	default:
		return v
	}
}
