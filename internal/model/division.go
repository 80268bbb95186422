package model

// Division is one entry of the fixed portal catalog. The catalog is not
// user-editable at runtime.
type Division struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	WorkflowSteps []string `json:"workflowSteps"`
	SeedTasks     []string `json:"seedTasks"`
}

var divisions = []Division{
	{
		ID:            "LEGAL",
		Name:          "Legal & Compliance",
		Icon:          "scale",
		WorkflowSteps: []string{"Intake", "Drafting", "Review", "Signed"},
		SeedTasks:     []string{"Review vendor contract", "Renew business license"},
	},
	{
		ID:            "FINANCE",
		Name:          "Finance",
		Icon:          "banknote",
		WorkflowSteps: []string{"Submitted", "Verified", "Approved", "Paid"},
		SeedTasks:     []string{"Close monthly ledger", "Chase outstanding invoices"},
	},
	{
		ID:            "MARKETING",
		Name:          "Marketing",
		Icon:          "megaphone",
		WorkflowSteps: []string{"Lead In", "Contacted", "Negotiation", "Won"},
		SeedTasks:     []string{"Follow up webinar leads", "Draft monthly newsletter"},
	},
	{
		ID:            "ADMISSIONS",
		Name:          "Admissions",
		Icon:          "clipboard",
		WorkflowSteps: []string{"Form Received", "Interview", "Decision", "Enrolled"},
		SeedTasks:     []string{"Screen new intake forms"},
	},
	{
		ID:            "OPERATIONS",
		Name:          "Operations",
		Icon:          "settings",
		WorkflowSteps: []string{"Open", "In Progress", "Done"},
		SeedTasks:     []string{"Facility maintenance checklist"},
	},
}

// Divisions returns the catalog. Callers get a copy so the catalog stays fixed.
func Divisions() []Division {
	out := make([]Division, len(divisions))
	copy(out, divisions)
	return out
}

// DivisionByID looks up a catalog entry; ok is false for unknown ids.
func DivisionByID(id string) (Division, bool) {
	for _, d := range divisions {
		if d.ID == id {
			return d, true
		}
	}
	return Division{}, false
}

// ValidDivision reports whether id names a catalog division.
func ValidDivision(id string) bool {
	_, ok := DivisionByID(id)
	return ok
}
