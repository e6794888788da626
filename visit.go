package triage

import (
	"encoding/json"
	"time"
)

const visitSQL = "INSERT INTO triage.visits" +
	"(patient_id, name, priority, department, admitted_at, served_at)" +
	"VALUES (?, ?, ?, ?, ?, ?)"

// Visit is the record of a served patient.
type Visit struct {
	PatientID  string    `json:"patient_id"`
	Name       string    `json:"name"`
	Priority   int       `json:"priority"`
	Department string    `json:"department"`
	AdmittedAt time.Time `json:"admitted_at"`
	ServedAt   time.Time `json:"served_at"`
}

func (v Visit) MarshalBinary() (data []byte, err error) {
	return json.Marshal(v)
}

func (v *Visit) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, v)
}

func (v *Visit) SQL() string {
	return visitSQL
}

func (v *Visit) ToExec() []interface{} {
	return []interface{}{
		v.PatientID,
		v.Name,
		v.Priority,
		v.Department,
		v.AdmittedAt,
		v.ServedAt,
	}
}
