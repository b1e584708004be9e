package entity

// Document documento sustentatorio anexado a un expediente (escaneo del
// cargo, vigencia de poder, tarjeta de propiedad, etc.). El binario vive en
// el almacén de archivos; aquí solo los metadatos.
type Document struct {
	Base
	ExpedienteID string `json:"expedienteId"`
	Kind         string `json:"kind,omitempty"`
	FileName     string `json:"fileName"`
	ContentType  string `json:"contentType,omitempty"`
	SizeBytes    int64  `json:"sizeBytes,omitempty"`
	StorageKey   string `json:"storageKey,omitempty"`
	Description  string `json:"description,omitempty"`
	UploadedBy   string `json:"uploadedBy,omitempty"`
}

// Terminal infraestructura complementaria de transporte declarada por la
// empresa (terminal terrestre o estación de ruta).
type Terminal struct {
	Base
	Name       string `json:"name"`
	Kind       string `json:"kind,omitempty"` // TERMINAL | ESTACION_DE_RUTA
	CompanyID  string `json:"companyId"`
	LocalityID string `json:"localityId,omitempty"`
	Address    string `json:"address,omitempty"`
	State      string `json:"state,omitempty"`
}

// Oficina sede de registro de la dirección regional (mesa de partes,
// dirección de circulación, fiscalización...). El catálogo OFFICE_SITES
// enumera las sedes válidas.
type Oficina struct {
	Base
	Name    string `json:"name"`
	Site    string `json:"site"`
	Address string `json:"address,omitempty"`
}
