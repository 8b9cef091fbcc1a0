package ports

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/voice"
)

// TranscriptInterpreter puerto de salida hacia un LLM que interpreta dictados.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz.
type TranscriptInterpreter interface {
	// InterpretTranscript convierte el texto dictado en un borrador de producto o venta.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	InterpretTranscript(ctx context.Context, transcript string) (*voice.Draft, error)
}
