package models

type RequestCreateMetric struct {
	Label             string  `json:"label" validate:"required,max=255"`
	FieldName         string  `json:"field_name" validate:"required,metricfield"`
	DepartmentID      uint    `json:"department_id" validate:"required"`
	Stage             string  `json:"stage" validate:"required,oneof=Pre Post"`
	MinThreshold      float64 `json:"min_threshold" validate:"gte=0"`
	MaxThreshold      float64 `json:"max_threshold" validate:"gte=0"`
	SuccessCategoryID *uint   `json:"success_category_id"`
	VisibleToGroups   []uint  `json:"visible_to_groups"`
}

func (r *RequestCreateMetric) ToMetric() Metric {
	return Metric{
		Label:             r.Label,
		FieldName:         r.FieldName,
		DepartmentID:      r.DepartmentID,
		Stage:             r.Stage,
		MinThreshold:      r.MinThreshold,
		MaxThreshold:      r.MaxThreshold,
		SuccessCategoryID: r.SuccessCategoryID,
	}
}

type RequestUpdateMetric struct {
	Label             *string  `json:"label" validate:"omitempty,max=255"`
	FieldName         *string  `json:"field_name" validate:"omitempty,metricfield"`
	Stage             *string  `json:"stage" validate:"omitempty,oneof=Pre Post"`
	MinThreshold      *float64 `json:"min_threshold" validate:"omitempty,gte=0"`
	MaxThreshold      *float64 `json:"max_threshold" validate:"omitempty,gte=0"`
	SuccessCategoryID *uint    `json:"success_category_id"`
	VisibleToGroups   []uint   `json:"visible_to_groups"`
}

func (r *RequestUpdateMetric) Apply(m *Metric) {
	if r.Label != nil {
		m.Label = *r.Label
	}
	if r.FieldName != nil {
		m.FieldName = *r.FieldName
	}
	if r.Stage != nil {
		m.Stage = *r.Stage
	}
	if r.MinThreshold != nil {
		m.MinThreshold = *r.MinThreshold
	}
	if r.MaxThreshold != nil {
		m.MaxThreshold = *r.MaxThreshold
	}
	if r.SuccessCategoryID != nil {
		m.SuccessCategoryID = r.SuccessCategoryID
	}
}

type RequestSetWeight struct {
	MetricID uint     `json:"metric_id" validate:"required"`
	GroupID  uint     `json:"group_id" validate:"required"`
	Factor   int      `json:"factor" validate:"min=1,max=10"`
	IsManual bool     `json:"is_manual"`
	Credit   *float64 `json:"credit" validate:"omitempty,gte=0,lte=100"`
}

type RequestSetThresholds struct {
	Overrides map[string]float64 `json:"overrides" validate:"required"`
}

type RequestImportProjects struct {
	Projects []Project `json:"projects" validate:"required,min=1"`
}
