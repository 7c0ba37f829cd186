package model

import (
	"time"

	"gorm.io/gorm"
)

// Entity is the capability every persisted model shares: a surrogate key and a soft-delete flag.
type Entity interface {
	GetID() uint32
	IsDeleted() bool
}

// GORM이 CreatedAt, UpdatedAt, DeletedAt을 자동으로 관리
// DeletedAt이 설정된 행은 기본 조회에서 제외된다 (soft delete)
type BaseEntity struct {
	ID        uint32         `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (b BaseEntity) GetID() uint32 {
	return b.ID
}

func (b BaseEntity) IsDeleted() bool {
	return b.DeletedAt.Valid
}
