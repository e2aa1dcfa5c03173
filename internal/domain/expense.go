package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SplitTolerance is how far the sum of an expense's splits may drift from
// the expense amount.
var SplitTolerance = decimal.NewFromFloat(0.01)

type Group struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator *User  `json:"-" gorm:"foreignKey:CreatedBy"`
	Members []User `json:"members,omitempty" gorm:"many2many:group_members;constraint:OnDelete:CASCADE"`
}

// HasMember reports whether userID belongs to the group. Members must be loaded.
func (g *Group) HasMember(userID uuid.UUID) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Description string          `json:"description" gorm:"size:200;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Date        datatypes.Date  `json:"date" gorm:"not null"`
	PayerID     uuid.UUID       `json:"payer_id" gorm:"type:uuid;index;not null"`
	GroupID     *uuid.UUID      `json:"group_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Payer  *User          `json:"-" gorm:"foreignKey:PayerID"`
	Group  *Group         `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Splits []ExpenseSplit `json:"splits" gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
}

type ExpenseSplit struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExpenseID uuid.UUID       `json:"expense_id" gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:uuid;index;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	IsSettled bool            `json:"is_settled" gorm:"not null;default:false"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// SplitsBalance reports whether the splits add up to the expense amount.
func (e *Expense) SplitsBalance() bool {
	total := decimal.Zero
	for _, s := range e.Splits {
		total = total.Add(s.Amount)
	}
	return total.Sub(e.Amount).Abs().LessThanOrEqual(SplitTolerance)
}

// Balance is one user's position across a set of expenses.
type Balance struct {
	User       User
	Paid       decimal.Decimal
	Owed       decimal.Decimal
	NetBalance decimal.Decimal
}
