package importer

import (
	"time"

	"ProjectScoreService/internal/models"
)

func setMeta(p *models.Project, field, value string) {
	switch field {
	case "project_name":
		p.Name = value
	case "sbu":
		p.SBU = value
	case "stage":
		p.Stage = value
	case "floors":
		p.Floors = value
	case "project_type":
		p.ProjectType = value
	case "lead_id":
		p.LeadID = value
	default:
		p.SetStakeholder(field, value)
	}
}

func setDate(p *models.Project, field string, t time.Time) {
	switch field {
	case "login_date":
		p.LoginDate = &t
	case "start_date":
		p.StartDate = &t
	case "end_date":
		p.EndDate = &t
	}
}
