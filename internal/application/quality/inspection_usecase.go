package quality

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Calidad-api/internal/application/dto"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

const (
	historyCreated = "created"
	historyUpdated = "updated"
	historyLinked  = "linked"

	notifyTimeout = 15 * time.Second
)

// InspectionUseCase casos de uso sobre registros de inspección.
// Toda mutación publica un ChangeEvent para que la vista agrupada se recalcule.
type InspectionUseCase struct {
	repo      repository.InspectionRepository
	orders    repository.OrderRepository
	storage   ImageStorage
	publisher ChangePublisher
	notifier  Notifier
	log       zerolog.Logger
	now       func() time.Time
}

// NewInspectionUseCase construye el caso de uso. orders, storage, publisher y
// notifier pueden ser nil: se omite la precarga, las imágenes, el evento o el aviso.
func NewInspectionUseCase(
	repo repository.InspectionRepository,
	orders repository.OrderRepository,
	storage ImageStorage,
	publisher ChangePublisher,
	notifier Notifier,
	log zerolog.Logger,
) *InspectionUseCase {
	return &InspectionUseCase{
		repo:      repo,
		orders:    orders,
		storage:   storage,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InspectionUseCase) WithClock(now func() time.Time) *InspectionUseCase {
	uc.now = now
	return uc
}

// Create registra una inspección nueva con id, createdAt y displayId propios.
func (uc *InspectionUseCase) Create(ctx context.Context, actor Actor, in dto.CreateInspectionRequest) (*entity.InspectionRecord, error) {
	now := uc.now().UTC()
	orderNumber := normalizeOrderNumber(in.OrderNumber)

	rec := &entity.InspectionRecord{
		ID:             uuid.New().String(),
		OrderNumber:    orderNumber,
		Phase:          entity.Phase(in.InspectionType),
		CreatedAt:      now,
		UpdatedAt:      now,
		InspectionDate: in.InspectionDate,
		Common:         in.Common,
		Result:         in.Result,
		Urgent:         in.Urgent,
		Inspector:      strings.TrimSpace(in.Inspector),
		DefectType:     strings.TrimSpace(in.DefectType),
		FailureReason:  strings.TrimSpace(in.FailureReason),
		Details:        in.Details,
		History:        []entity.HistoryEntry{{Status: historyCreated, Date: now, User: actor.Name}},
		Comments:       []entity.Comment{},
		ImageURLs:      append([]string{}, in.ImageURLs...),
	}
	if rec.Result == "" {
		rec.Result = entity.ResultPending
	}
	if rec.Inspector == "" {
		rec.Inspector = actor.Name
	}
	if c := strings.TrimSpace(in.Comment); c != "" {
		rec.Comments = append(rec.Comments, entity.Comment{Date: now, Author: actor.Name, Text: c})
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if !rec.IsDraft() {
		if err := uc.prefillFromOrder(ctx, rec); err != nil {
			return nil, err
		}
	}
	if rec.Common.DisplayID == "" {
		id, err := uc.nextDisplayID(ctx, rec.Phase)
		if err != nil {
			return nil, err
		}
		rec.Common.DisplayID = id
	}

	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("crear inspección: %w", err)
	}
	uc.log.Info().
		Str("id", rec.ID).
		Str("order_number", rec.OrderNumber).
		Str("phase", string(rec.Phase)).
		Str("display_id", rec.Common.DisplayID).
		Msg("inspección registrada")

	uc.publish(ctx, ChangeEvent{Kind: ChangeCreated, OrderNumber: rec.OrderNumber, RecordID: rec.ID, At: now})
	if rec.Result == entity.ResultFail || rec.Urgent {
		uc.notifyRecord(ctx, rec)
	}
	return rec, nil
}

// AddToGroup agrega una inspección a un grupo existente, precargando los campos
// vacíos con el snapshot común del grupo.
func (uc *InspectionUseCase) AddToGroup(ctx context.Context, actor Actor, orderNumber string, in dto.CreateInspectionRequest) (*entity.InspectionRecord, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if entity.IsDraftOrderNumber(orderNumber) {
		return nil, domain.ErrSentinelOrder
	}
	g, err := uc.loadGroup(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	in.OrderNumber = orderNumber
	in.Common.FillBlanks(g.Common)
	return uc.Create(ctx, actor, in)
}

// Update edita un registro en sitio. id, createdAt y fase no cambian; el número
// de orden solo puede cambiarse mientras el registro es borrador. Agrega
// exactamente una entrada al historial.
func (uc *InspectionUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateInspectionRequest) (*entity.InspectionRecord, error) {
	rec, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	prevResult, prevUrgent := rec.Result, rec.Urgent
	status := historyUpdated

	if in.InspectionDate != nil {
		d := *in.InspectionDate
		rec.InspectionDate = &d
	}
	if in.Common != nil {
		displayID := rec.Common.DisplayID
		rec.Common = *in.Common
		if rec.Common.DisplayID == "" {
			rec.Common.DisplayID = displayID
		}
	}
	if in.OrderNumber != nil {
		next := normalizeOrderNumber(*in.OrderNumber)
		if next != rec.OrderNumber {
			if !rec.IsDraft() {
				return nil, domain.ErrOrderLocked
			}
			rec.OrderNumber = next
			if !rec.IsDraft() {
				status = historyLinked
				if err := uc.prefillFromOrder(ctx, rec); err != nil {
					return nil, err
				}
			}
		}
	}
	if in.Result != nil {
		rec.Result = *in.Result
		if *in.Result != "" && status == historyUpdated {
			status = *in.Result
		}
	}
	if in.Urgent != nil {
		rec.Urgent = *in.Urgent
	}
	if in.Inspector != nil {
		rec.Inspector = strings.TrimSpace(*in.Inspector)
	}
	if in.DefectType != nil {
		rec.DefectType = strings.TrimSpace(*in.DefectType)
	}
	if in.FailureReason != nil {
		rec.FailureReason = strings.TrimSpace(*in.FailureReason)
	}
	if in.Details != nil {
		rec.Details = *in.Details
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	rec.History = append(rec.History, entity.HistoryEntry{
		Status: status,
		Date:   now,
		User:   actor.Name,
		Reason: strings.TrimSpace(in.Reason),
	})
	rec.UpdatedAt = now

	if err := uc.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("guardar inspección: %w", err)
	}
	uc.log.Info().Str("id", rec.ID).Str("order_number", rec.OrderNumber).Str("status", status).Msg("inspección actualizada")

	uc.publish(ctx, ChangeEvent{Kind: ChangeUpdated, OrderNumber: rec.OrderNumber, RecordID: rec.ID, At: now})
	if (rec.Result == entity.ResultFail && prevResult != entity.ResultFail) || (rec.Urgent && !prevUrgent) {
		uc.notifyRecord(ctx, rec)
	}
	return rec, nil
}

// AddComment agrega un comentario al registro.
func (uc *InspectionUseCase) AddComment(ctx context.Context, actor Actor, id, text string) (*entity.InspectionRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: el comentario está vacío", domain.ErrInvalidInput)
	}
	rec, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	rec.Comments = append(rec.Comments, entity.Comment{Date: now, Author: actor.Name, Text: text})
	rec.UpdatedAt = now
	if err := uc.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("guardar comentario: %w", err)
	}
	uc.publish(ctx, ChangeEvent{Kind: ChangeUpdated, OrderNumber: rec.OrderNumber, RecordID: rec.ID, At: now})
	return rec, nil
}

// AttachImage sube una foto y agrega su URL al registro.
func (uc *InspectionUseCase) AttachImage(ctx context.Context, actor Actor, id, filename, contentType string, r io.Reader) (*entity.InspectionRecord, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("%w: almacenamiento de imágenes no configurado", domain.ErrConflict)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: solo se aceptan imágenes (recibido %q)", domain.ErrInvalidInput, contentType)
	}
	rec, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("inspections", rec.ID, uuid.New().String()+strings.ToLower(path.Ext(filename)))
	url, err := uc.storage.Put(ctx, key, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}

	now := uc.now().UTC()
	rec.ImageURLs = append(rec.ImageURLs, url)
	rec.UpdatedAt = now
	if err := uc.repo.Save(ctx, rec); err != nil {
		if delErr := uc.storage.Delete(ctx, url); delErr != nil {
			uc.log.Warn().Err(delErr).Str("url", url).Msg("imagen huérfana tras fallo al guardar")
		}
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}
	uc.log.Info().Str("id", rec.ID).Str("url", url).Str("user", actor.Name).Msg("imagen adjuntada")
	uc.publish(ctx, ChangeEvent{Kind: ChangeUpdated, OrderNumber: rec.OrderNumber, RecordID: rec.ID, At: now})
	return rec, nil
}

// RemoveImage quita una URL del registro y borra el archivo.
func (uc *InspectionUseCase) RemoveImage(ctx context.Context, actor Actor, id, url string) (*entity.InspectionRecord, error) {
	rec, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, u := range rec.ImageURLs {
		if u == url {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	now := uc.now().UTC()
	rec.ImageURLs = append(rec.ImageURLs[:idx:idx], rec.ImageURLs[idx+1:]...)
	rec.UpdatedAt = now
	if err := uc.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("quitar imagen: %w", err)
	}
	uc.deleteImages(ctx, []string{url})
	uc.log.Info().Str("id", rec.ID).Str("url", url).Str("user", actor.Name).Msg("imagen quitada")
	uc.publish(ctx, ChangeEvent{Kind: ChangeUpdated, OrderNumber: rec.OrderNumber, RecordID: rec.ID, At: now})
	return rec, nil
}

// DeleteGroup borra todos los registros de un número de orden y sus imágenes.
// Los borradores no forman grupo y no pueden borrarse por esta vía.
func (uc *InspectionUseCase) DeleteGroup(ctx context.Context, actor Actor, orderNumber string) (int64, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if entity.IsDraftOrderNumber(orderNumber) {
		return 0, domain.ErrSentinelOrder
	}
	records, err := uc.repo.ListByOrderNumber(ctx, orderNumber)
	if err != nil {
		return 0, fmt.Errorf("listar grupo: %w", err)
	}
	if len(records) == 0 {
		return 0, domain.ErrNotFound
	}
	n, err := uc.repo.DeleteByOrderNumber(ctx, orderNumber)
	if err != nil {
		return 0, fmt.Errorf("borrar grupo: %w", err)
	}

	var urls []string
	for _, r := range records {
		urls = append(urls, r.ImageURLs...)
	}
	uc.deleteImages(ctx, urls)

	uc.log.Warn().Str("order_number", orderNumber).Int64("deleted", n).Str("user", actor.Name).Msg("grupo eliminado")
	uc.publish(ctx, ChangeEvent{Kind: ChangeGroupDeleted, OrderNumber: orderNumber, At: uc.now().UTC()})
	return n, nil
}

// Get obtiene un registro por ID.
func (uc *InspectionUseCase) Get(ctx context.Context, id string) (*entity.InspectionRecord, error) {
	return uc.mustGet(ctx, id)
}

// ListDrafts lista los registros sin orden asignada (no aparecen en la vista agrupada).
func (uc *InspectionUseCase) ListDrafts(ctx context.Context) (*dto.InspectionListResponse, error) {
	list, err := uc.repo.ListDrafts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar borradores: %w", err)
	}
	if list == nil {
		list = []entity.InspectionRecord{}
	}
	return &dto.InspectionListResponse{Items: list, Total: len(list)}, nil
}

// ImportResult resumen de una importación masiva.
type ImportResult struct {
	Imported int      `json:"imported"`
	Rejected []string `json:"rejected"` // "índice: motivo"
}

// Import inserta registros históricos conservando id y createdAt. Los registros
// inválidos se rechazan uno a uno sin abortar el lote.
func (uc *InspectionUseCase) Import(ctx context.Context, records []entity.InspectionRecord) (*ImportResult, error) {
	res := &ImportResult{}
	for i := range records {
		if err := uc.importOne(ctx, i, records[i], res); err != nil {
			return res, err
		}
	}
	return uc.finishImport(ctx, res), nil
}

// ImportLegacy igual que Import pero desde documentos exportados con marcas de
// tiempo en texto. Una marca vacía o mal formada rechaza el documento.
func (uc *InspectionUseCase) ImportLegacy(ctx context.Context, docs []dto.LegacyInspection) (*ImportResult, error) {
	res := &ImportResult{}
	for i := range docs {
		rec, err := docs[i].ToRecord()
		if err != nil {
			res.Rejected = append(res.Rejected, fmt.Sprintf("%d: %v", i, err))
			continue
		}
		if err := uc.importOne(ctx, i, rec, res); err != nil {
			return res, err
		}
	}
	return uc.finishImport(ctx, res), nil
}

// importOne solo devuelve error si ctx se canceló.
func (uc *InspectionUseCase) importOne(ctx context.Context, i int, rec entity.InspectionRecord, res *ImportResult) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.OrderNumber = normalizeOrderNumber(rec.OrderNumber)
	if rec.Result == "" {
		rec.Result = entity.ResultPending
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if rec.History == nil {
		rec.History = []entity.HistoryEntry{}
	}
	if rec.Comments == nil {
		rec.Comments = []entity.Comment{}
	}
	if rec.ImageURLs == nil {
		rec.ImageURLs = []string{}
	}
	if err := rec.Validate(); err != nil {
		res.Rejected = append(res.Rejected, fmt.Sprintf("%d: %v", i, err))
		return nil
	}
	if err := uc.repo.Create(ctx, &rec); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		res.Rejected = append(res.Rejected, fmt.Sprintf("%d: %v", i, err))
		return nil
	}
	res.Imported++
	return nil
}

func (uc *InspectionUseCase) finishImport(ctx context.Context, res *ImportResult) *ImportResult {
	uc.log.Info().Int("imported", res.Imported).Int("rejected", len(res.Rejected)).Msg("importación terminada")
	if res.Imported > 0 {
		uc.publish(ctx, ChangeEvent{Kind: ChangeImported, At: uc.now().UTC()})
	}
	return res
}

func (uc *InspectionUseCase) mustGet(ctx context.Context, id string) (*entity.InspectionRecord, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener inspección: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (uc *InspectionUseCase) loadGroup(ctx context.Context, orderNumber string) (*entity.GroupedInspection, error) {
	records, err := uc.repo.ListByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("listar grupo: %w", err)
	}
	g, ok := quality.FindGroup(quality.Group(records), orderNumber)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (uc *InspectionUseCase) prefillFromOrder(ctx context.Context, rec *entity.InspectionRecord) error {
	if uc.orders == nil {
		return nil
	}
	o, err := uc.orders.GetByOrderNumber(ctx, rec.OrderNumber)
	if err != nil {
		return fmt.Errorf("buscar orden: %w", err)
	}
	if o != nil {
		rec.Common.FillBlanks(o.CommonFields())
	}
	return nil
}

func (uc *InspectionUseCase) nextDisplayID(ctx context.Context, phase entity.Phase) (string, error) {
	seq, err := uc.repo.NextSequence(ctx, "display_"+string(phase))
	if err != nil {
		return "", fmt.Errorf("secuencia de display id: %w", err)
	}
	return FormatDisplayID(phase, seq), nil
}

// FormatDisplayID arma el ID visible: prefijo de fase y secuencia de 5 dígitos.
func FormatDisplayID(phase entity.Phase, seq int64) string {
	return fmt.Sprintf("%s-%05d", phase.DisplayPrefix(), seq)
}

func (uc *InspectionUseCase) deleteImages(ctx context.Context, urls []string) {
	if uc.storage == nil {
		return
	}
	for _, u := range urls {
		if err := uc.storage.Delete(ctx, u); err != nil {
			uc.log.Warn().Err(err).Str("url", u).Msg("no se pudo borrar imagen")
		}
	}
}

func (uc *InspectionUseCase) publish(ctx context.Context, ev ChangeEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishChange(ctx, ev); err != nil {
		uc.log.Error().Err(err).Str("kind", ev.Kind).Str("order_number", ev.OrderNumber).Msg("no se pudo publicar el cambio")
	}
}

// notifyRecord avisa de un rechazo o urgencia sin bloquear la petición.
func (uc *InspectionUseCase) notifyRecord(ctx context.Context, rec *entity.InspectionRecord) {
	if uc.notifier == nil {
		return
	}
	n := RecordNotification(rec)
	id := rec.ID
	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := uc.notifier.Notify(nctx, n); err != nil {
			uc.log.Warn().Err(err).Str("id", id).Msg("notificación fallida")
		}
	}()
}

// RecordNotification arma el aviso de un registro rechazado o urgente.
func RecordNotification(rec *entity.InspectionRecord) Notification {
	title := "Inspección rechazada"
	if rec.Urgent && rec.Result != entity.ResultFail {
		title = "Inspección urgente"
	}
	order := rec.OrderNumber
	if rec.IsDraft() {
		order = "(borrador)"
	}
	body := fmt.Sprintf("%s %s · %s", rec.Common.DisplayID, order, rec.Common.ProductName)
	if rec.DefectType != "" {
		body += " · " + rec.DefectType
	}
	if rec.FailureReason != "" {
		body += ": " + rec.FailureReason
	}
	return Notification{
		Level: LevelAlert,
		Title: title,
		Body:  body,
		Data: map[string]string{
			"record_id":    rec.ID,
			"order_number": rec.OrderNumber,
			"phase":        string(rec.Phase),
			"result":       rec.Result,
		},
	}
}

func normalizeOrderNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.DraftOrderNumber
	}
	return s
}
