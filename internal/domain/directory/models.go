package directory

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
}

type Employee struct {
	ID           string `json:"id"`
	UserID       string `json:"userId,omitempty"`
	Name         string `json:"name"`
	BadgeCode    string `json:"badgeCode,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
	Active       bool   `json:"active"`
}

// Badge is a read-only lookup row over active employees that carry a
// badge code. DisplayName follows the "CODE (Name)" convention so the
// dropdown search can match either part.
type Badge struct {
	EmployeeID   string `json:"employeeId"`
	BadgeCode    string `json:"badgeCode"`
	EmployeeName string `json:"employeeName"`
	DisplayName  string `json:"displayName"`
}
