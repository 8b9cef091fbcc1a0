package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/ports"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/voice"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

const (
	sourceLLM   = "llm"
	sourceRules = "rules"
)

// VoiceStore operaciones del almacén que el asistente de voz necesita.
type VoiceStore interface {
	AddProduct(ctx context.Context, businessID string, in store.ProductInput) (*entity.Product, error)
	AddSale(ctx context.Context, businessID string, in store.SaleInput) (*entity.Sale, error)
	ListProducts(ctx context.Context, businessID string) ([]*entity.Product, error)
}

// VoiceUseCase interpreta dictados y opcionalmente los registra.
// Usa el LLM si está configurado; si falla o no hay, usa el parser de reglas.
type VoiceUseCase struct {
	llm               ports.TranscriptInterpreter
	store             VoiceStore
	lowStockThreshold int
	log               *logger.Logger
}

// NewVoiceUseCase construye el caso de uso. llm puede ser nil.
func NewVoiceUseCase(llm ports.TranscriptInterpreter, st VoiceStore, lowStockThreshold int, log *logger.Logger) *VoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &VoiceUseCase{llm: llm, store: st, lowStockThreshold: lowStockThreshold, log: log}
}

// Interpret devuelve el borrador y, si req.Commit, el producto o la venta creada.
func (uc *VoiceUseCase) Interpret(ctx context.Context, businessID string, req dto.VoiceRequest) (*dto.VoiceResponse, error) {
	return uc.InterpretGuarded(ctx, businessID, req, nil)
}

// InterpretGuarded como Interpret, pero antes de registrar consulta allow con la intención
// detectada; si devuelve false responde ErrForbidden sin escribir nada.
func (uc *VoiceUseCase) InterpretGuarded(ctx context.Context, businessID string, req dto.VoiceRequest, allow func(voice.Intent) bool) (*dto.VoiceResponse, error) {
	draft, source, err := uc.interpret(ctx, req.Transcript)
	if err != nil {
		return nil, err
	}
	res := &dto.VoiceResponse{Draft: toDraftDTO(draft, source)}
	if !req.Commit {
		return res, nil
	}
	if allow != nil && !allow(draft.Intent) {
		return nil, domain.ErrForbidden
	}

	switch draft.Intent {
	case voice.IntentSale:
		sale, name, err := uc.commitSale(ctx, businessID, draft)
		if err != nil {
			return nil, err
		}
		s := dto.NewSaleResponse(sale, name)
		res.Sale = &s
	default:
		p, err := uc.commitProduct(ctx, businessID, draft)
		if err != nil {
			return nil, err
		}
		pr := dto.NewProductResponse(p, uc.lowStockThreshold)
		res.Product = &pr
	}
	return res, nil
}

func (uc *VoiceUseCase) interpret(ctx context.Context, transcript string) (*voice.Draft, string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, "", domain.Invalid("transcript", "vacío")
	}
	if uc.llm != nil {
		// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
		llmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		d, err := uc.llm.InterpretTranscript(llmCtx, transcript)
		if err == nil && d != nil && strings.TrimSpace(d.Name) != "" {
			return d, sourceLLM, nil
		}
		uc.log.Warn().Err(err).Msg("interpretación LLM fallida, usando reglas")
	}
	d, err := voice.Parse(transcript)
	if err != nil {
		return nil, "", err
	}
	return d, sourceRules, nil
}

func (uc *VoiceUseCase) commitProduct(ctx context.Context, businessID string, d *voice.Draft) (*entity.Product, error) {
	if d.UnitPrice == nil {
		return nil, domain.Invalid("unit_price", "no se detectó el precio en el dictado")
	}
	qty := 0
	if d.Quantity != nil {
		qty = *d.Quantity
	}
	return uc.store.AddProduct(ctx, businessID, store.ProductInput{
		Name:      d.Name,
		UnitPrice: *d.UnitPrice,
		Quantity:  qty,
		Category:  d.Category,
	})
}

func (uc *VoiceUseCase) commitSale(ctx context.Context, businessID string, d *voice.Draft) (*entity.Sale, string, error) {
	if d.Quantity == nil {
		return nil, "", domain.Invalid("quantity", "no se detectó la cantidad en el dictado")
	}
	products, err := uc.store.ListProducts(ctx, businessID)
	if err != nil {
		return nil, "", fmt.Errorf("listar productos: %w", err)
	}
	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(d.Name)) {
			in := store.SaleInput{ProductID: p.ID, Quantity: *d.Quantity}
			if d.UnitPrice != nil {
				in.Amount = d.UnitPrice.Mul(decimal.NewFromInt(int64(*d.Quantity)))
			}
			sale, err := uc.store.AddSale(ctx, businessID, in)
			return sale, p.Name, err
		}
	}
	return nil, "", domain.ErrProductNotFound
}

func toDraftDTO(d *voice.Draft, source string) dto.VoiceDraftDTO {
	return dto.VoiceDraftDTO{
		Intent:    string(d.Intent),
		Name:      d.Name,
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		Currency:  d.Currency,
		Category:  d.Category,
		Source:    source,
	}
}
