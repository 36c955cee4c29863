package repository

import "gorm.io/gorm"

// paginate 分页 scope，pageSize <= 0 时不分页，页码小于 1 按第一页处理
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}
