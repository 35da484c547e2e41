package errors

import "errors"

var (
	// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
	ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
	// ErrEmptyUpdate 更新字段集合为空
	ErrEmptyUpdate = errors.New("没有需要更新的字段")
)
