package complaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepartmentFor(t *testing.T) {
	cases := map[string]string{
		"Technical Issue":       "IT Department",
		"Forgotten Password":    "IT Department",
		"Payment Delay":         "Funds Administration",
		"Financial Transaction": "Funds Administration",
		"Repurchase Issue":      "Finance & Accounting",
		"Financial Approval":    "Finance & Accounting",
		"Something Else":        DefaultDepartment,
		"":                      DefaultDepartment,
		"technical issue":       DefaultDepartment,
	}

	for inquiry, want := range cases {
		assert.Equal(t, want, DepartmentFor(inquiry), inquiry)
	}
}
