package entity

import "regexp"

// Niveles territoriales del INEI.
const (
	LevelDepartment      = "DEPARTMENT"
	LevelProvince        = "PROVINCE"
	LevelDistrict        = "DISTRICT"
	LevelPopulatedCenter = "POPULATED_CENTER"
)

// LocalityLevels niveles admitidos.
var LocalityLevels = []string{LevelDepartment, LevelProvince, LevelDistrict, LevelPopulatedCenter}

// UbigeoRx código de ubigeo INEI de 6 dígitos.
var UbigeoRx = regexp.MustCompile(`^\d{6}$`)

// Locality localidad del ubigeo nacional. Está protegida contra eliminación
// física mientras alguna ruta activa la use como origen, destino o escala.
type Locality struct {
	Base
	Ubigeo         string `json:"ubigeo"`
	Name           string `json:"name"`
	Level          string `json:"level"`
	DepartmentName string `json:"departmentName,omitempty"`
	ProvinceName   string `json:"provinceName,omitempty"`
	DistrictName   string `json:"districtName,omitempty"`
}
