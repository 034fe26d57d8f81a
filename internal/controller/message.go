package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi"
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Message turns an error into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		he  *posapi.HTTPError
		te  *posapi.TransportError
		ve  *mapper.ValidationError
		tre *domain.ErrTransition
	)
	switch {
	case errors.Is(err, posapi.ErrUnauthenticated):
		return "Sesión no iniciada. Inicia sesión para continuar."
	case errors.As(err, &ve):
		return fmt.Sprintf("Datos no válidos: %v", ve.Err)
	case errors.As(err, &tre):
		return fmt.Sprintf("No se puede pasar de %s a %s.", tre.From.Label(), tre.To.Label())
	case errors.As(err, &he):
		return httpMessage(he)
	case errors.Is(err, context.DeadlineExceeded):
		return "El servidor tardó demasiado en responder."
	case errors.As(err, &te):
		return "No se pudo conectar con el servidor."
	default:
		return fmt.Sprintf("Error inesperado: %v", err)
	}
}

func httpMessage(he *posapi.HTTPError) string {
	detail := he.Message()
	switch {
	case he.StatusCode == http.StatusUnauthorized:
		return "La sesión ha caducado. Inicia sesión de nuevo."
	case he.StatusCode == http.StatusForbidden:
		return "No tienes permiso para esta operación."
	case he.StatusCode == http.StatusNotFound:
		return "No encontrado."
	case he.StatusCode >= 500:
		return fmt.Sprintf("Error del servidor (%d).", he.StatusCode)
	case detail != "":
		return detail
	default:
		return fmt.Sprintf("Petición rechazada (%d %s).", he.StatusCode, http.StatusText(he.StatusCode))
	}
}
