package models

// Роли пользователей
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

// ReportStatus константы статусов обращений.
// Граф переходов полный: любой статус можно сменить на любой другой,
// resolved не является терминальным.
const (
	ReportStatusOpen       = "open"
	ReportStatusInProgress = "in-progress"
	ReportStatusResolved   = "resolved"
)

// Категории обращений (фиксированный набор)
const (
	CategoryRoads   = "cat1"
	CategoryTransit = "cat2"
	CategoryParks   = "cat3"
	CategorySafety  = "cat4"
	CategoryHousing = "cat5"
	CategoryOther   = "cat6"
)

// ValidReportStatuses список валидных статусов обращений
var ValidReportStatuses = map[string]struct{}{
	ReportStatusOpen:       {},
	ReportStatusInProgress: {},
	ReportStatusResolved:   {},
}

// ValidCategories список валидных категорий обращений
var ValidCategories = map[string]struct{}{
	CategoryRoads:   {},
	CategoryTransit: {},
	CategoryParks:   {},
	CategorySafety:  {},
	CategoryHousing: {},
	CategoryOther:   {},
}

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleResident: {},
	RoleAdmin:    {},
}
