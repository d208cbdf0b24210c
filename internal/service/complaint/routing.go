package complaint

const DefaultDepartment = "IT Department"

var departmentByInquiry = map[string]string{
	"Technical Issue":       "IT Department",
	"Forgotten Password":    "IT Department",
	"Payment Delay":         "Funds Administration",
	"Financial Transaction": "Funds Administration",
	"Repurchase Issue":      "Finance & Accounting",
	"Financial Approval":    "Finance & Accounting",
}

// DepartmentFor maps an inquiry type to the department that handles it.
// Unknown types go to DefaultDepartment.
func DepartmentFor(inquiryType string) string {
	if dept, ok := departmentByInquiry[inquiryType]; ok {
		return dept
	}
	return DefaultDepartment
}
