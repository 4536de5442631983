package kds

import (
	"encoding/json"
	"strconv"
)

// departmentDTO mirrors the upstream KDS payload, which uses Turkish keys.
type departmentDTO struct {
	Name     string      `json:"name"`
	Current  json.Number `json:"mevcut"`
	Baseline json.Number `json:"baseOneri"`
	Normal   json.Number `json:"normal"`
	Overtime json.Number `json:"overtime"`
	Turnover json.Number `json:"turnover"`
	Z        json.Number `json:"z"`
	Risk     string      `json:"risk"`
}

// trendDTO accepts both "period" and the chart-oriented "name" key.
type trendDTO struct {
	Period       string      `json:"period"`
	Name         string      `json:"name"`
	Revenue      json.Number `json:"revenue"`
	Occupancy    json.Number `json:"occupancy"`
	Productivity json.Number `json:"productivity"`
}

type districtDTO struct {
	DistrictID json.Number `json:"districtId"`
	Name       string      `json:"name"`
	Occupancy  json.Number `json:"occupancy"`
	Score      json.Number `json:"score"`
}

func numberOrZero(n json.Number) float64 {
	if n == "" {
		return 0
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0
	}
	return f
}
