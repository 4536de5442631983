package workforce

import "github.com/google/uuid"

// Dataset is the department list of one district as supplied upstream.
// It is replaced wholesale whenever a different district or period is loaded.
type Dataset struct {
	Version     string       `json:"version"`
	DistrictID  int          `json:"district_id"`
	Departments []Department `json:"departments"`
}

// NewDataset wraps departments in a freshly versioned dataset.
func NewDataset(districtID int, departments []Department) Dataset {
	cp := make([]Department, len(departments))
	copy(cp, departments)
	return Dataset{
		Version:     uuid.New().String(),
		DistrictID:  districtID,
		Departments: cp,
	}
}

// PlaceholderDepartment stands in for an empty dataset so aggregation stays well defined.
func PlaceholderDepartment() Department {
	return Department{Name: "...", RiskLabel: "-"}
}

// IsEmpty reports whether the dataset carries no departments.
func (d Dataset) IsEmpty() bool {
	return len(d.Departments) == 0
}

// SafeDepartments returns the departments, or a single placeholder when there are none.
func (d Dataset) SafeDepartments() []Department {
	if d.IsEmpty() {
		return []Department{PlaceholderDepartment()}
	}
	return d.Departments
}
