package models

import (
	"sort"
	"time"
)

type Project struct {
	ID          uint       `gorm:"primaryKey;column:id" json:"id"`
	Code        string     `gorm:"not null;uniqueIndex;column:project_code" json:"projectCode"`
	Name        string     `gorm:"column:project_name" json:"projectName"`
	SBU         string     `gorm:"column:sbu;index" json:"sbu"`
	Stage       string     `gorm:"column:stage" json:"stage"`
	Floors      string     `gorm:"column:floors" json:"floors"`
	ProjectType string     `gorm:"column:project_type" json:"projectType"`
	LeadID      string     `gorm:"column:lead_id" json:"leadId"`
	LoginDate   *time.Time `gorm:"column:login_date;type:date" json:"loginDate,omitempty"`
	StartDate   *time.Time `gorm:"column:start_date;type:date" json:"startDate,omitempty"`
	EndDate     *time.Time `gorm:"column:end_date;type:date" json:"endDate,omitempty"`

	SalesHead string `gorm:"column:sales_head" json:"salesHead"`
	SalesLead string `gorm:"column:sales_lead" json:"salesLead"`
	DesignDH  string `gorm:"column:design_dh" json:"designDh"`
	DesignDM  string `gorm:"column:design_dm" json:"designDm"`
	DesignID  string `gorm:"column:design_id" json:"designId"`
	Design3D  string `gorm:"column:design_3d" json:"design3d"`
	OpsHead   string `gorm:"column:ops_head" json:"opsHead"`
	OpsPM     string `gorm:"column:ops_pm" json:"opsPm"`
	OpsOM     string `gorm:"column:ops_om" json:"opsOm"`
	OpsSS     string `gorm:"column:ops_ss" json:"opsSs"`
	OpsMEP    string `gorm:"column:ops_mep" json:"opsMep"`
	OpsCSC    string `gorm:"column:ops_csc" json:"opsCsc"`
	MHead     string `gorm:"column:m_head" json:"mHead"`
	MLead     string `gorm:"column:m_lead" json:"mLead"`
	PHead     string `gorm:"column:p_head" json:"pHead"`
	PMgr      string `gorm:"column:p_mgr" json:"pMgr"`
	PExec     string `gorm:"column:p_exec" json:"pExec"`
	FHead     string `gorm:"column:f_head" json:"fHead"`

	// Sales
	ReqUploaded      float64 `gorm:"not null;default:0;column:req_uploaded" json:"req_uploaded"`
	SiteVisitReport  float64 `gorm:"not null;default:0;column:site_visit_report" json:"site_visit_report"`
	ClientAccess     float64 `gorm:"not null;default:0;column:client_access" json:"client_access"`
	BOQUploaded      float64 `gorm:"not null;default:0;column:boq_uploaded" json:"boq_uploaded"`
	ContractUploaded float64 `gorm:"not null;default:0;column:contract_uploaded" json:"contract_uploaded"`
	BOQ              float64 `gorm:"not null;default:0;column:boq" json:"boq"`
	Contract         float64 `gorm:"not null;default:0;column:contract" json:"contract"`

	// Design
	FurnitureLayouts    float64 `gorm:"not null;default:0;column:furniture_layouts" json:"furniture_layouts"`
	ApprovedLayouts     float64 `gorm:"not null;default:0;column:approved_layouts" json:"approved_layouts"`
	MappedSpaces        float64 `gorm:"not null;default:0;column:mapped_spaces" json:"mapped_spaces"`
	NoPlansForKeySpaces float64 `gorm:"not null;default:0;column:no_plans_for_key_spaces" json:"no_plans_for_key_spaces"`
	Renders             float64 `gorm:"not null;default:0;column:renders" json:"renders"`
	ApprovedRenders     float64 `gorm:"not null;default:0;column:approved_renders" json:"approved_renders"`
	TDElevations        float64 `gorm:"not null;default:0;column:td_elevations" json:"td_elevations"`
	CADFiles            float64 `gorm:"not null;default:0;column:cad_files" json:"cad_files"`
	SlidesDownload      float64 `gorm:"not null;default:0;column:slides_download" json:"slides_download"`
	MaterialDeck        float64 `gorm:"not null;default:0;column:material_deck" json:"material_deck"`
	GFCDownload         float64 `gorm:"not null;default:0;column:gfc_download" json:"gfc_download"`
	ClientVisitDes      float64 `gorm:"not null;default:0;column:client_visit_des" json:"client_visit_des"`
	KeyPlansRatio       float64 `gorm:"not null;default:0;column:key_plans_ratio" json:"key_plans_ratio"`
	OtherLayouts        float64 `gorm:"not null;default:0;column:other_layouts" json:"other_layouts"`

	// Operations
	SiteImages        float64 `gorm:"not null;default:0;column:site_images" json:"site_images"`
	Invoices          float64 `gorm:"not null;default:0;column:invoices" json:"invoices"`
	MEPDrawings       float64 `gorm:"not null;default:0;column:mep_drawings" json:"mep_drawings"`
	HandoverDocs      float64 `gorm:"not null;default:0;column:handover_docs" json:"handover_docs"`
	WPRDownload       float64 `gorm:"not null;default:0;column:wpr_download" json:"wpr_download"`
	WPRShared         float64 `gorm:"not null;default:0;column:wpr_shared" json:"wpr_shared"`
	WeeklyTasks       float64 `gorm:"not null;default:0;column:weekly_tasks" json:"weekly_tasks"`
	DailyTasks        float64 `gorm:"not null;default:0;column:daily_tasks" json:"daily_tasks"`
	GRNCreated        float64 `gorm:"not null;default:0;column:grn_created" json:"grn_created"`
	GRNApproved       float64 `gorm:"not null;default:0;column:grn_approved" json:"grn_approved"`
	WeeksTillDate     float64 `gorm:"not null;default:0;column:weeks_till_date" json:"weeks_till_date"`
	DaysTillDate      float64 `gorm:"not null;default:0;column:days_till_date" json:"days_till_date"`
	WPRDownloadWeeks  float64 `gorm:"not null;default:0;column:wpr_download_weeks" json:"wpr_download_weeks"`
	ManpowerAddedDays float64 `gorm:"not null;default:0;column:manpower_added_days" json:"manpower_added_days"`
	WPRHalfWeek       float64 `gorm:"not null;default:0;column:wpr_half_week" json:"wpr_half_week"`
	ManpowerRatio     float64 `gorm:"not null;default:0;column:manpower_ratio" json:"manpower_ratio"`
	DPRRatio          float64 `gorm:"not null;default:0;column:dpr_ratio" json:"dpr_ratio"`
	WPRRatio          float64 `gorm:"not null;default:0;column:wpr_ratio" json:"wpr_ratio"`
	ManpowerDayRatio  float64 `gorm:"not null;default:0;column:manpower_day_ratio" json:"manpower_day_ratio"`
}

func (Project) TableName() string {
	return "projects"
}

// metricFields maps a metric field name to the project value it reads.
var metricFields = map[string]func(p *Project) *float64{
	"req_uploaded":            func(p *Project) *float64 { return &p.ReqUploaded },
	"site_visit_report":       func(p *Project) *float64 { return &p.SiteVisitReport },
	"client_access":           func(p *Project) *float64 { return &p.ClientAccess },
	"boq_uploaded":            func(p *Project) *float64 { return &p.BOQUploaded },
	"contract_uploaded":       func(p *Project) *float64 { return &p.ContractUploaded },
	"boq":                     func(p *Project) *float64 { return &p.BOQ },
	"contract":                func(p *Project) *float64 { return &p.Contract },
	"furniture_layouts":       func(p *Project) *float64 { return &p.FurnitureLayouts },
	"approved_layouts":        func(p *Project) *float64 { return &p.ApprovedLayouts },
	"mapped_spaces":           func(p *Project) *float64 { return &p.MappedSpaces },
	"no_plans_for_key_spaces": func(p *Project) *float64 { return &p.NoPlansForKeySpaces },
	"renders":                 func(p *Project) *float64 { return &p.Renders },
	"approved_renders":        func(p *Project) *float64 { return &p.ApprovedRenders },
	"td_elevations":           func(p *Project) *float64 { return &p.TDElevations },
	"cad_files":               func(p *Project) *float64 { return &p.CADFiles },
	"slides_download":         func(p *Project) *float64 { return &p.SlidesDownload },
	"material_deck":           func(p *Project) *float64 { return &p.MaterialDeck },
	"gfc_download":            func(p *Project) *float64 { return &p.GFCDownload },
	"client_visit_des":        func(p *Project) *float64 { return &p.ClientVisitDes },
	"key_plans_ratio":         func(p *Project) *float64 { return &p.KeyPlansRatio },
	"other_layouts":           func(p *Project) *float64 { return &p.OtherLayouts },
	"site_images":             func(p *Project) *float64 { return &p.SiteImages },
	"invoices":                func(p *Project) *float64 { return &p.Invoices },
	"mep_drawings":            func(p *Project) *float64 { return &p.MEPDrawings },
	"handover_docs":           func(p *Project) *float64 { return &p.HandoverDocs },
	"wpr_download":            func(p *Project) *float64 { return &p.WPRDownload },
	"wpr_shared":              func(p *Project) *float64 { return &p.WPRShared },
	"weekly_tasks":            func(p *Project) *float64 { return &p.WeeklyTasks },
	"daily_tasks":             func(p *Project) *float64 { return &p.DailyTasks },
	"grn_created":             func(p *Project) *float64 { return &p.GRNCreated },
	"grn_approved":            func(p *Project) *float64 { return &p.GRNApproved },
	"weeks_till_date":         func(p *Project) *float64 { return &p.WeeksTillDate },
	"days_till_date":          func(p *Project) *float64 { return &p.DaysTillDate },
	"wpr_download_weeks":      func(p *Project) *float64 { return &p.WPRDownloadWeeks },
	"manpower_added_days":     func(p *Project) *float64 { return &p.ManpowerAddedDays },
	"wpr_half_week":           func(p *Project) *float64 { return &p.WPRHalfWeek },
	"manpower_ratio":          func(p *Project) *float64 { return &p.ManpowerRatio },
	"dpr_ratio":               func(p *Project) *float64 { return &p.DPRRatio },
	"wpr_ratio":               func(p *Project) *float64 { return &p.WPRRatio },
	"manpower_day_ratio":      func(p *Project) *float64 { return &p.ManpowerDayRatio },
}

var stakeholderFields = map[string]func(p *Project) *string{
	"sales_head": func(p *Project) *string { return &p.SalesHead },
	"sales_lead": func(p *Project) *string { return &p.SalesLead },
	"design_dh":  func(p *Project) *string { return &p.DesignDH },
	"design_dm":  func(p *Project) *string { return &p.DesignDM },
	"design_id":  func(p *Project) *string { return &p.DesignID },
	"design_3d":  func(p *Project) *string { return &p.Design3D },
	"ops_head":   func(p *Project) *string { return &p.OpsHead },
	"ops_pm":     func(p *Project) *string { return &p.OpsPM },
	"ops_om":     func(p *Project) *string { return &p.OpsOM },
	"ops_ss":     func(p *Project) *string { return &p.OpsSS },
	"ops_mep":    func(p *Project) *string { return &p.OpsMEP },
	"ops_csc":    func(p *Project) *string { return &p.OpsCSC },
	"m_head":     func(p *Project) *string { return &p.MHead },
	"m_lead":     func(p *Project) *string { return &p.MLead },
	"p_head":     func(p *Project) *string { return &p.PHead },
	"p_mgr":      func(p *Project) *string { return &p.PMgr },
	"p_exec":     func(p *Project) *string { return &p.PExec },
	"f_head":     func(p *Project) *string { return &p.FHead },
}

// MetricValue returns the named metric field. Unknown fields read as zero.
func (p *Project) MetricValue(field string) (float64, bool) {
	accessor, ok := metricFields[field]
	if !ok || p == nil {
		return 0, false
	}
	return *accessor(p), true
}

func (p *Project) SetMetricValue(field string, value float64) bool {
	accessor, ok := metricFields[field]
	if !ok {
		return false
	}
	*accessor(p) = value
	return true
}

func (p *Project) Stakeholder(field string) string {
	accessor, ok := stakeholderFields[field]
	if !ok || p == nil {
		return ""
	}
	return *accessor(p)
}

func (p *Project) SetStakeholder(field, name string) bool {
	accessor, ok := stakeholderFields[field]
	if !ok {
		return false
	}
	*accessor(p) = name
	return true
}

func IsMetricField(field string) bool {
	_, ok := metricFields[field]
	return ok
}

func IsStakeholderField(field string) bool {
	_, ok := stakeholderFields[field]
	return ok
}

func MetricFieldNames() []string {
	names := make([]string, 0, len(metricFields))
	for name := range metricFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func StakeholderFieldNames() []string {
	names := make([]string, 0, len(stakeholderFields))
	for name := range stakeholderFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DisplayName falls back to the code when the project has no name.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Code
}
