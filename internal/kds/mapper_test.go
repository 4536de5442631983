package kds

import (
	"encoding/json"
	"testing"

	"staffplan/internal/workforce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDepartments_FractionalBaselineRoundsUp(t *testing.T) {
	var dtos []departmentDTO
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name":"Mutfak","mevcut":9,"baseOneri":9.4},
		{"name":"Bar","mevcut":4,"baseOneri":4.0},
		{"name":"Spa","mevcut":3}
	]`), &dtos))

	depts := mapDepartments(dtos)
	require.Len(t, depts, 3)
	assert.Equal(t, 10, depts[0].BaselineRecommendation)
	assert.Equal(t, 4, depts[1].BaselineRecommendation)
	assert.Equal(t, 0, depts[2].BaselineRecommendation)

	res, err := workforce.Simulate(depts, workforce.DefaultScenario())
	require.NoError(t, err)
	assert.Equal(t, 10, res[0].RecommendedStaff)
	assert.Equal(t, 1, res[0].Gap)
}
