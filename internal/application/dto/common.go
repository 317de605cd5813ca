package dto

// Envelope es la respuesta uniforme de transporte: {success, data, message, meta}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// OK envuelve un resultado exitoso.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMeta envuelve un resultado exitoso con metadatos (paginación, totales).
func OKMeta(data, meta interface{}) Envelope {
	return Envelope{Success: true, Data: data, Meta: meta}
}

// Fail envuelve un error para el caller.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// FailData envuelve un error que lleva un cuerpo estructurado (ej. faltantes de receta).
func FailData(message string, data interface{}) Envelope {
	return Envelope{Success: false, Message: message, Data: data}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
