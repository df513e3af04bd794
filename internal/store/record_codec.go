package store

import "encoding/json"

// EncodeRecord 将带 json 标签的实体编码为记录
func EncodeRecord(entity interface{}) (Record, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// DecodeRecord 将记录解码到带 json 标签的实体
func DecodeRecord(record Record, entity interface{}) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, entity)
}

// DecodeRecords 批量解码记录
func DecodeRecords[T any](records []Record) ([]T, error) {
	entities := make([]T, 0, len(records))
	for _, record := range records {
		var entity T
		if err := DecodeRecord(record, &entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
