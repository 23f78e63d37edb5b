package postgres

import (
	"log"

	"gorm.io/gorm"
)

// TxManager реализует repository.TxManager поверх gorm
type TxManager struct {
	db *gorm.DB
}

// NewTxManager создает менеджер транзакций
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTransaction выполняет fn в транзакции: ошибка или паника fn
// откатывает транзакцию, успешный возврат - коммитит.
func (m *TxManager) WithinTransaction(fn func(tx *gorm.DB) error) error {
	tx := m.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered inside transaction: %v", r)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
