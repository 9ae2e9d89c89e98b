package worker

// ticket_worker.go
// Processes ticket jobs from QueueTickets: renders the PDF ticket for a
// completed sale and, when the customer left an email, chains an email job.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Joan074/SellPoint/internal/infra"
	"github.com/Joan074/SellPoint/internal/repository"

	"github.com/rs/zerolog/log"
)

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	VentaID      int    `json:"venta_id"`
	ClienteEmail string `json:"cliente_email,omitempty"`
}

// TicketWorker renders PDF tickets for completed sales.
type TicketWorker struct {
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewTicketWorker(ventaRepo repository.VentaRepository, dispatcher *Dispatcher, pdfStoragePath string) *TicketWorker {
	return &TicketWorker{
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single ticket job:
//  1. Parse TicketJobPayload from the job envelope
//  2. Fetch the Venta (with items and joins) from DB
//  3. Render the PDF ticket
//  4. Optionally enqueue an email job with the PDF attached
func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	venta, err := w.ventaRepo.FindByID(ctx, payload.VentaID)
	if err != nil {
		log.Error().Err(err).Int("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
		return fmt.Errorf("ticket_worker: fetch venta %d: %w", payload.VentaID, err)
	}

	pdfPath, err := infra.GenerateTicketPDF(venta, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Int("venta_id", payload.VentaID).Msg("ticket_worker: PDF generation failed")
		return fmt.Errorf("ticket_worker: generate PDF for venta %d: %w", payload.VentaID, err)
	}
	log.Info().Str("pdf", pdfPath).Int("venta_id", payload.VentaID).Msg("ticket_worker: PDF generated")

	if payload.ClienteEmail != "" {
		numero := fmt.Sprintf("%d", venta.ID)
		if venta.NumeroTicket != nil {
			numero = *venta.NumeroTicket
		}
		emailJob := EmailJobPayload{
			ToEmail: payload.ClienteEmail,
			Subject: fmt.Sprintf("Ticket SellPoint — %s", numero),
			Body:    fmt.Sprintf("Adjunto encontrarás tu ticket de compra.\nTotal: $%s", venta.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.ClienteEmail).Msg("ticket_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", payload.ClienteEmail).Msg("ticket_worker: email job enqueued")
		}
	}
	return nil
}
