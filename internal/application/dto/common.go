package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple de una operación.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDsRequest lista ordenada de identificadores seleccionados por el usuario.
type IDsRequest struct {
	IDs []string `json:"ids"`
}
