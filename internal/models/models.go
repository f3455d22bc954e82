package models

import "time"

const (
	StagePre  = "Pre"
	StagePost = "Post"
)

type Department struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"not null;unique;column:name" json:"name"`
}

type UserGroup struct {
	ID           uint       `gorm:"primaryKey;column:id" json:"id"`
	Name         string     `gorm:"not null;column:name" json:"name"`
	DepartmentID uint       `gorm:"not null;column:department_id;index" json:"departmentId"`
	RoleKey      *string    `gorm:"column:role_key;uniqueIndex" json:"roleKey,omitempty"`
	Department   Department `gorm:"foreignKey:DepartmentID;references:ID" json:"department"`
}

type SuccessCategory struct {
	ID    uint   `gorm:"primaryKey;column:id" json:"id"`
	Name  string `gorm:"not null;unique;column:name" json:"name"`
	Color string `gorm:"not null;default:'secondary';column:color" json:"color"`
}

type Metric struct {
	ID                uint             `gorm:"primaryKey;column:id" json:"id"`
	Label             string           `gorm:"not null;column:label" json:"label"`
	FieldName         string           `gorm:"not null;column:field_name" json:"fieldName"`
	DepartmentID      uint             `gorm:"not null;column:department_id;index" json:"departmentId"`
	Stage             string           `gorm:"not null;column:stage" json:"stage"`
	MinThreshold      float64          `gorm:"not null;default:1;column:min_threshold" json:"minThreshold"`
	MaxThreshold      float64          `gorm:"not null;default:10;column:max_threshold" json:"maxThreshold"`
	SuccessCategoryID *uint            `gorm:"column:success_category_id" json:"successCategoryId,omitempty"`
	Department        Department       `gorm:"foreignKey:DepartmentID;references:ID" json:"department"`
	SuccessCategory   *SuccessCategory `gorm:"foreignKey:SuccessCategoryID;references:ID" json:"successCategory,omitempty"`
	VisibleToGroups   []UserGroup      `gorm:"many2many:metric_visible_groups;joinForeignKey:MetricID;joinReferences:UserGroupID" json:"visibleToGroups,omitempty"`
	Weights           []MetricWeight   `gorm:"foreignKey:MetricID;references:ID" json:"weights,omitempty"`
}

type MetricWeight struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	MetricID    uint      `gorm:"not null;column:metric_id;uniqueIndex:idx_metric_group" json:"metricId"`
	UserGroupID uint      `gorm:"not null;column:user_group_id;uniqueIndex:idx_metric_group;index" json:"groupId"`
	Factor      int       `gorm:"not null;default:1;column:factor" json:"factor"`
	IsManual    bool      `gorm:"not null;default:false;column:is_manual" json:"isManual"`
	Credit      float64   `gorm:"not null;default:0;column:credit" json:"credit"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updatedAt"`
	UserGroup   UserGroup `gorm:"foreignKey:UserGroupID;references:ID" json:"-"`
}

// MetricVisibility is the legacy metric-to-group link kept alongside weights.
type MetricVisibility struct {
	MetricID    uint `gorm:"primaryKey;column:metric_id"`
	UserGroupID uint `gorm:"primaryKey;column:user_group_id"`
}

func (Department) TableName() string {
	return "departments"
}

func (UserGroup) TableName() string {
	return "user_groups"
}

func (SuccessCategory) TableName() string {
	return "success_categories"
}

func (Metric) TableName() string {
	return "metrics"
}

func (MetricWeight) TableName() string {
	return "metric_weights"
}

func (MetricVisibility) TableName() string {
	return "metric_visible_groups"
}

func (g UserGroup) RoleKeyValue() string {
	if g.RoleKey == nil {
		return ""
	}
	return *g.RoleKey
}
