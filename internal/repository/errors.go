package repository

import (
	"errors"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// sqlite 约束违规的基础错误码
const sqliteConstraintCode = 19

// IsDuplicateKey 判断是否为唯一约束冲突
// postgres 驱动在 TranslateError 开启时返回 gorm.ErrDuplicatedKey，
// 纯 Go sqlite 驱动需要按原始错误码识别。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}
