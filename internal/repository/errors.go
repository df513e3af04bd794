package repository

import "errors"

// ErrConflict 引用完整性冲突（仍有下级记录引用目标记录）
var ErrConflict = errors.New("repository: record is still referenced")
