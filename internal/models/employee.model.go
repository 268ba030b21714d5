package models

import "time"

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

type Employee struct {
	BaseUUIDModel
	EmployeeID           string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"employeeId"`
	FirstName            string     `gorm:"type:varchar(255);not null"            json:"firstName"`
	LastName             string     `gorm:"type:varchar(255);not null"            json:"lastName"`
	Email                string     `gorm:"type:varchar(255)"                     json:"email"`
	JobTitle             string     `gorm:"type:varchar(255)"                     json:"jobTitle"`
	MainFunction         string     `gorm:"type:varchar(255)"                     json:"mainFunction"`
	SubFunction          string     `gorm:"type:varchar(255)"                     json:"subFunction"`
	LevelIdentification  string     `gorm:"type:varchar(255)"                     json:"levelIdentification"`
	ManagerID            string     `gorm:"type:varchar(64)"                      json:"managerId"`
	SecondLevelManagerID string     `gorm:"type:varchar(64)"                      json:"secondLevelManagerId"`
	Role                 string     `gorm:"type:varchar(255)"                     json:"role"`
	Status               string     `gorm:"type:varchar(20);not null"             json:"status"`
	ImportBatchID        string     `gorm:"type:varchar(64);index"                json:"importBatchId"`
	ImportedAt           *time.Time `gorm:"type:datetime"                         json:"importedAt"`
	LastUpdatedAt        *time.Time `gorm:"type:datetime"                         json:"lastUpdatedAt"`
}

type CreateEmployeeRequest struct {
	EmployeeID           string `json:"employeeId"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	JobTitle             string `json:"jobTitle"`
	MainFunction         string `json:"mainFunction"`
	SubFunction          string `json:"subFunction"`
	LevelIdentification  string `json:"levelIdentification"`
	ManagerID            string `json:"managerId"`
	SecondLevelManagerID string `json:"secondLevelManagerId"`
	Role                 string `json:"role"`
}

// UpdateEmployeeRequest uses pointers so the per-record update API can tell
// "field absent, keep prior value" apart from "field set to empty".
type UpdateEmployeeRequest struct {
	FirstName            *string `json:"firstName"`
	LastName             *string `json:"lastName"`
	Email                *string `json:"email"`
	JobTitle             *string `json:"jobTitle"`
	MainFunction         *string `json:"mainFunction"`
	SubFunction          *string `json:"subFunction"`
	LevelIdentification  *string `json:"levelIdentification"`
	ManagerID            *string `json:"managerId"`
	SecondLevelManagerID *string `json:"secondLevelManagerId"`
	Role                 *string `json:"role"`
	Status               *string `json:"status"`
}
