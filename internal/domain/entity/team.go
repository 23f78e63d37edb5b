package entity

import (
	"time"
)

// Team представляет команду в рамках одного соревнования.
// Состав фиксированный: капитан + до трёх участников (как в исходной системе).
// Инвариант: участник состоит не более чем в одной команде соревнования.
type Team struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CompetitionID uint   `gorm:"not null;index;uniqueIndex:idx_team_name_per_comp" json:"competition_id"`
	Name          string `gorm:"size:100;not null;uniqueIndex:idx_team_name_per_comp" json:"name"`
	CaptainID     uint   `gorm:"not null;index" json:"captain_id"`
	Member1ID     *uint  `gorm:"index" json:"member1_id,omitempty"`
	Member2ID     *uint  `gorm:"index" json:"member2_id,omitempty"`
	Member3ID     *uint  `gorm:"index" json:"member3_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}

// MemberIDs возвращает идентификаторы всех участников команды (включая капитана)
func (t *Team) MemberIDs() []uint {
	ids := []uint{t.CaptainID}
	for _, m := range []*uint{t.Member1ID, t.Member2ID, t.Member3ID} {
		if m != nil {
			ids = append(ids, *m)
		}
	}
	return ids
}

// HasMember проверяет, состоит ли пользователь в команде
func (t *Team) HasMember(userID uint) bool {
	for _, id := range t.MemberIDs() {
		if id == userID {
			return true
		}
	}
	return false
}

// MemberCount возвращает текущее число участников команды
func (t *Team) MemberCount() int {
	return len(t.MemberIDs())
}
