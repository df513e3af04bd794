package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	record := Record{"id": uint(1), "name": "Acme", "balance": 10.5}
	if err := s.Put(ctx, "customers", 1, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "customers", 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.String("name") != "Acme" {
		t.Errorf("name = %q, want %q", got.String("name"), "Acme")
	}
	if got.Float("balance") != 10.5 {
		t.Errorf("balance = %v, want 10.5", got.Float("balance"))
	}

	// 返回值应为深拷贝，修改不影响存储内容
	got["name"] = "Mutated"
	again, err := s.Get(ctx, "customers", 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.String("name") != "Acme" {
		t.Errorf("stored record mutated through returned copy: name = %q", again.String("name"))
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "customers", 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing record: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "shipments", 1, Record{"id": uint(1), "name": "March Batch", "is_open": true, "total_weight": 100.0}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	updated, err := s.Update(ctx, "shipments", 1, Record{"is_open": false})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.String("name") != "March Batch" {
		t.Errorf("untouched field changed: name = %q", updated.String("name"))
	}
	if updated.Float("total_weight") != 100.0 {
		t.Errorf("untouched field changed: total_weight = %v", updated.Float("total_weight"))
	}
	if open, _ := updated["is_open"].(bool); open {
		t.Errorf("is_open not updated: %v", updated["is_open"])
	}
}

func TestMemoryStoreUpdateNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Update(context.Background(), "shipments", 9, Record{"is_open": false}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing record: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreIncrement(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "shipments", 1, Record{"id": uint(1), "total_weight": 10.0}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// total_volume 缺失时按 0 起加
	after, err := s.Increment(ctx, "shipments", 1, map[string]float64{"total_weight": 2.5, "total_volume": 18})
	if err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if after.Float("total_weight") != 12.5 {
		t.Errorf("total_weight = %v, want 12.5", after.Float("total_weight"))
	}
	if after.Float("total_volume") != 18 {
		t.Errorf("total_volume = %v, want 18", after.Float("total_volume"))
	}
}

func TestMemoryStoreIncrementNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Increment(context.Background(), "shipments", 7, map[string]float64{"total_weight": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Increment missing record: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreConcurrentIncrement(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Put(ctx, "shipments", 1, Record{"id": uint(1), "total_weight": 0.0}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.Increment(ctx, "shipments", 1, map[string]float64{"total_weight": 2}); err != nil {
				t.Errorf("Increment failed: %v", err)
			}
		}()
	}
	wg.Wait()

	record, err := s.Get(ctx, "shipments", 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := record.Float("total_weight"); got != float64(workers*2) {
		t.Errorf("total_weight = %v, want %v", got, workers*2)
	}
}

func TestMemoryStoreDeleteMissingIsNoop(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background(), "customers", 99); err != nil {
		t.Fatalf("Delete missing record: err = %v, want nil", err)
	}
}

func TestMemoryStoreNextIDConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 100
	ids := make(chan uint, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			id, err := s.NextID(ctx, "customers")
			if err != nil {
				t.Errorf("NextID failed: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make([]uint, 0, n)
	for id := range ids {
		seen = append(seen, id)
	}
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	if len(seen) != n {
		t.Fatalf("allocated %d ids, want %d", len(seen), n)
	}
	for i, id := range seen {
		if id != uint(i+1) {
			t.Fatalf("ids not contiguous from 1: position %d has %d", i, id)
		}
	}
}

func TestMemoryStoreNextIDPerTable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < 3; i++ {
		if _, err := s.NextID(ctx, "customers"); err != nil {
			t.Fatalf("NextID failed: %v", err)
		}
	}
	id, err := s.NextID(ctx, "shipments")
	if err != nil {
		t.Fatalf("NextID failed: %v", err)
	}
	if id != 1 {
		t.Errorf("shipments first id = %d, want 1", id)
	}
}

func TestMemoryStoreSeedID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.SeedID(ctx, "customers", 40); err != nil {
		t.Fatalf("SeedID failed: %v", err)
	}
	id, err := s.NextID(ctx, "customers")
	if err != nil {
		t.Fatalf("NextID failed: %v", err)
	}
	if id != 41 {
		t.Errorf("NextID after SeedID(40) = %d, want 41", id)
	}

	// 低于当前计数的 floor 不回退
	if err := s.SeedID(ctx, "customers", 5); err != nil {
		t.Fatalf("SeedID failed: %v", err)
	}
	id, err = s.NextID(ctx, "customers")
	if err != nil {
		t.Fatalf("NextID failed: %v", err)
	}
	if id != 42 {
		t.Errorf("NextID after lower SeedID = %d, want 42", id)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	records, err := s.List(ctx, "customers")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("List on empty table returned %d records", len(records))
	}

	for i := 1; i <= 3; i++ {
		if err := s.Put(ctx, "customers", uint(i), Record{"id": uint(i), "name": fmt.Sprintf("c%d", i)}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	records, err = s.List(ctx, "customers")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List returned %d records, want 3", len(records))
	}
}

func TestRecordHelpers(t *testing.T) {
	record := Record{
		"id":     float64(7),
		"count":  int64(3),
		"weight": "12.5",
		"name":   "Acme",
		"bad":    "not-a-number",
	}

	if record.ID() != 7 {
		t.Errorf("ID() = %d, want 7", record.ID())
	}
	if record.Uint("count") != 3 {
		t.Errorf("Uint(count) = %d, want 3", record.Uint("count"))
	}
	if record.Float("weight") != 12.5 {
		t.Errorf("Float(weight) = %v, want 12.5", record.Float("weight"))
	}
	if record.String("name") != "Acme" {
		t.Errorf("String(name) = %q, want Acme", record.String("name"))
	}
	if record.Float("missing") != 0 {
		t.Errorf("Float(missing) = %v, want 0", record.Float("missing"))
	}
	if record.Float("bad") != 0 {
		t.Errorf("Float(bad) = %v, want 0", record.Float("bad"))
	}
}

func TestEncodeDecodeRecord(t *testing.T) {
	type entity struct {
		ID   uint    `json:"id"`
		Name string  `json:"name"`
		Cost float64 `json:"cost"`
	}

	record, err := EncodeRecord(entity{ID: 3, Name: "box", Cost: 9.9})
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}
	if record.ID() != 3 {
		t.Errorf("encoded id = %d, want 3", record.ID())
	}

	var decoded entity
	if err := DecodeRecord(record, &decoded); err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if decoded.Name != "box" || decoded.Cost != 9.9 {
		t.Errorf("decoded = %+v", decoded)
	}

	entities, err := DecodeRecords[entity]([]Record{record, record})
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}
	if len(entities) != 2 || entities[1].ID != 3 {
		t.Errorf("DecodeRecords = %+v", entities)
	}
}
