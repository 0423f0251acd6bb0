package domain

import "time"

// Tenant scopes calls and appointments to one calling-platform
// account. TenantID is the platform's model identifier. Account and
// user management live in a separate service; this table is only read
// here to enumerate tenants for sync passes.
type Tenant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TenantID  string    `json:"model_id" gorm:"column:tenant_id;uniqueIndex;not null"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}
