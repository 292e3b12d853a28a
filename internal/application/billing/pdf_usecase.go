// Package billing orquesta la generación del documento de factura: renderiza,
// verifica el artefacto transitorio en disco y garantiza su limpieza.
package billing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-bot/internal/domain"
	"github.com/jhoicas/invoice-bot/internal/domain/entity"
	"github.com/jhoicas/invoice-bot/pkg/logger"
)

// MaxPDFBytes tamaño máximo del documento (límite de envío de Telegram).
const MaxPDFBytes = 50 << 20 // 50 MB

// InvoicePDFRenderer puerto hacia el renderizador concreto (Maroto).
type InvoicePDFRenderer interface {
	Render(ctx context.Context, rec *entity.InvoiceRecord) ([]byte, error)
}

// PDFUseCase implementa dialogue.DocumentGenerator: valida el registro,
// renderiza y pasa el resultado por un archivo transitorio que se elimina en
// todos los caminos de salida.
type PDFUseCase struct {
	renderer InvoicePDFRenderer
	tempDir  string
	log      *logger.Logger
}

// NewPDFUseCase construye el caso de uso. tempDir vacío usa os.TempDir().
func NewPDFUseCase(renderer InvoicePDFRenderer, tempDir string, log *logger.Logger) *PDFUseCase {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{renderer: renderer, tempDir: tempDir, log: log}
}

// Generate produce el PDF de un registro completo.
//
// Todos los fallos (registro incompleto, error del renderizador, documento
// demasiado grande, error de disco) se reportan como una única condición
// opaca domain.ErrRenderFailure: el llamador no intenta recuperación parcial.
func (uc *PDFUseCase) Generate(ctx context.Context, rec *entity.InvoiceRecord) ([]byte, string, error) {
	if rec == nil || !rec.IsComplete() {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrRenderFailure, domain.ErrIncompleteRecord)
	}

	pdf, err := uc.renderer.Render(ctx, rec)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRenderFailure, err)
	}
	if len(pdf) == 0 {
		return nil, "", fmt.Errorf("%w: el renderizador devolvió un documento vacío", domain.ErrRenderFailure)
	}
	if len(pdf) > MaxPDFBytes {
		return nil, "", fmt.Errorf("%w: el documento supera los 50 MB", domain.ErrRenderFailure)
	}

	// Artefacto transitorio: existe solo durante la verificación y se elimina
	// siempre, también si la lectura falla.
	spool := filepath.Join(uc.tempDir,
		fmt.Sprintf("%s_%s.pdf", safeFilePart(rec.InvoiceNumber), uuid.NewString()))
	if err := os.WriteFile(spool, pdf, 0o600); err != nil {
		return nil, "", fmt.Errorf("%w: escribir artefacto: %v", domain.ErrRenderFailure, err)
	}
	defer func() {
		if rmErr := os.Remove(spool); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("path", spool).Msg("no se pudo eliminar el PDF transitorio")
		}
	}()

	info, err := os.Stat(spool)
	if err != nil || info.Size() == 0 {
		return nil, "", fmt.Errorf("%w: artefacto no verificable", domain.ErrRenderFailure)
	}

	filename := fmt.Sprintf("%s.pdf", rec.InvoiceNumber)
	uc.log.Debug().Str("invoice", rec.InvoiceNumber).Int("bytes", len(pdf)).Msg("PDF generado")
	return pdf, filename, nil
}

// safeFilePart reduce un número de factura a caracteres seguros para nombre
// de archivo.
func safeFilePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
