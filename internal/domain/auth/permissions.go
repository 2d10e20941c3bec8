package auth

const (
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

const (
	PermDirectoryRead  = "directory.read"
	PermDirectoryWrite = "directory.write"
	PermTemplateRead   = "template.read"
	PermTemplateWrite  = "template.write"
	PermAppraisalRead  = "appraisal.read"
	PermAppraisalWrite = "appraisal.write"
	PermAppraisalScore = "appraisal.score"
	PermSheetRead      = "sheet.read"
	PermSheetWrite     = "sheet.write"
	PermReportsRead    = "reports.read"
	PermAuditRead      = "audit.read"
)

var DefaultPermissions = []string{
	PermDirectoryRead,
	PermDirectoryWrite,
	PermTemplateRead,
	PermTemplateWrite,
	PermAppraisalRead,
	PermAppraisalWrite,
	PermAppraisalScore,
	PermSheetRead,
	PermSheetWrite,
	PermReportsRead,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleHR: DefaultPermissions,
	RoleManager: {
		PermDirectoryRead,
		PermTemplateRead,
		PermAppraisalRead,
		PermAppraisalWrite,
		PermAppraisalScore,
		PermSheetRead,
		PermSheetWrite,
		PermReportsRead,
	},
	RoleEmployee: {
		PermDirectoryRead,
		PermTemplateRead,
		PermAppraisalRead,
		PermSheetRead,
	},
}
