package model

import (
	"gorm.io/gorm"
)

// AutoMigrate migrates a single model by key, called lazily by the dao
// the first time a repository touches its table.
// AutoMigrate 按 key 迁移单个模型，由 dao 在仓库首次访问其表时惰性调用。
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Event":
		return db.AutoMigrate(Event{})

	case "Folder":
		return db.AutoMigrate(Folder{})

	case "Asset":
		return db.AutoMigrate(Asset{})

	case "ShareToken":
		return db.AutoMigrate(ShareToken{})

	case "ShareTokenAsset":
		return db.AutoMigrate(ShareTokenAsset{})

	case "ShareAudience":
		return db.AutoMigrate(ShareAudience{})

	case "ShareAccessLog":
		return db.AutoMigrate(ShareAccessLog{})
	}
	return nil
}

// AutoMigrateAll migrates every model, used by tests and fresh installs
// AutoMigrateAll 迁移所有模型，供测试与全新安装使用
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		Event{},
		Folder{},
		Asset{},
		ShareToken{},
		ShareTokenAsset{},
		ShareAudience{},
		ShareAccessLog{},
	)
}
