package importer

// metricColumns maps lower-cased export headers to project metric fields.
var metricColumns = map[string]string{
	"requirements":      "req_uploaded",
	"site visit report": "site_visit_report",
	"client access":     "client_access",
	"boq":               "boq_uploaded",
	"contract":          "contract_uploaded",

	"furniture layouts":          "furniture_layouts",
	"approved furniture layouts": "approved_layouts",
	"mapped spaces":              "mapped_spaces",
	"no key plans spaces":        "no_plans_for_key_spaces",
	"renders":                    "renders",
	"approved renders":           "approved_renders",
	"td & elevations":            "td_elevations",
	"cad files":                  "cad_files",
	"design slides download":     "slides_download",
	"material deck download":     "material_deck",
	"gfc download":               "gfc_download",
	"client visit":               "client_visit_des",

	"site progress images":      "site_images",
	"invoices, receipts":        "invoices",
	"mep drawings":              "mep_drawings",
	"handover documents":        "handover_docs",
	"wpr download":              "wpr_download",
	"wpr share to client":       "wpr_shared",
	"total unique weekly tasks": "weekly_tasks",
	"total unique daily tasks":  "daily_tasks",
	"total grn/srn":             "grn_created",
	"total approved grn/srn":    "grn_approved",
	"weeks till date":           "weeks_till_date",
	"days till date":            "days_till_date",
	"wpr download weeks":        "wpr_download_weeks",
	"manpower added days":       "manpower_added_days",

	colKeyPlansRatio:    "key_plans_ratio",
	colOtherLayouts:     "other_layouts",
	colWPRHalfWeek:      "wpr_half_week",
	colManpowerRatio:    "manpower_ratio",
	colDPRRatio:         "dpr_ratio",
	colManpowerDayRatio: "manpower_day_ratio",
	colWPRRatio:         "wpr_ratio",
}

type metaColumn struct {
	field   string
	headers []string
}

// metaColumns lists candidate headers per descriptive field, first match wins.
var metaColumns = []metaColumn{
	{"project_name", []string{"project name", "name"}},
	{"sbu", []string{"sbu", "region"}},
	{"stage", []string{"stage", "status"}},
	{"floors", []string{"floors", "no of floors"}},
	{"project_type", []string{"project type", "type"}},
	{"lead_id", []string{"lead id", "lead"}},

	{"sales_head", []string{"sales head", "s head"}},
	{"sales_lead", []string{"sales lead", "s lead"}},

	{"design_dh", []string{"dh", "design head"}},
	{"design_dm", []string{"dm", "design lead", "design manager"}},
	{"design_id", []string{"id", "design id"}},
	{"design_3d", []string{"3d", "3d visualizer"}},

	{"ops_head", []string{"cluster/bu head", "ops head"}},
	{"ops_pm", []string{"spm/pm", "project manager", "pm"}},
	{"ops_om", []string{"som/om", "ops manager", "om"}},
	{"ops_ss", []string{"ss", "site supervisor"}},
	{"ops_mep", []string{"mep"}},
	{"ops_csc", []string{"csc"}},

	{"p_head", []string{"purchase head"}},
	{"p_mgr", []string{"purchase manager"}},
	{"p_exec", []string{"purchase executive"}},
	{"f_head", []string{"finance head"}},
	{"m_head", []string{"marketing head"}},
	{"m_lead", []string{"marketing lead"}},
}

var dateColumns = map[string]string{
	"project login date": "login_date",
	"project start date": "start_date",
	"project end date":   "end_date",
}

var codeColumns = []string{"project code", "code", "lead id"}
