package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/internal/domain/entity"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

var _ repository.InspectionRepository = (*InspectionRepo)(nil)

// InspectionRepo implementación de InspectionRepository sobre una colección de MongoDB.
// Los listados se ordenan por _id natural de inserción (created_at, luego _id).
type InspectionRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewInspectionRepository construye el adaptador.
func NewInspectionRepository(db *mongo.Database) *InspectionRepo {
	return &InspectionRepo{
		collection: db.Collection(inspectionsCollection),
		counters:   db.Collection(countersCollection),
	}
}

// Create inserta un registro nuevo.
func (r *InspectionRepo) Create(ctx context.Context, rec *entity.InspectionRecord) error {
	if rec == nil {
		return fmt.Errorf("inspección nil")
	}
	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar inspección: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID; (nil, nil) si no existe.
func (r *InspectionRepo) GetByID(ctx context.Context, id string) (*entity.InspectionRecord, error) {
	var rec entity.InspectionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener inspección: %w", err)
	}
	return &rec, nil
}

// Save reemplaza el documento completo.
func (r *InspectionRepo) Save(ctx context.Context, rec *entity.InspectionRecord) error {
	if rec == nil {
		return fmt.Errorf("inspección nil")
	}
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return fmt.Errorf("guardar inspección: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll devuelve todos los registros en orden de creación.
func (r *InspectionRepo) ListAll(ctx context.Context) ([]entity.InspectionRecord, error) {
	return r.find(ctx, bson.M{})
}

// ListByOrderNumber registros de un número de orden.
func (r *InspectionRepo) ListByOrderNumber(ctx context.Context, orderNumber string) ([]entity.InspectionRecord, error) {
	return r.find(ctx, bson.M{"order_number": orderNumber})
}

// ListDrafts registros con número de orden centinela ("T", vacío o ausente).
func (r *InspectionRepo) ListDrafts(ctx context.Context) ([]entity.InspectionRecord, error) {
	return r.find(ctx, DraftFilter())
}

// DraftFilter filtro de borradores. Los espacios en blanco también cuentan como vacío.
func DraftFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"order_number": entity.DraftOrderNumber},
		bson.M{"order_number": bson.M{"$regex": `^\s*(T)?\s*$`}},
		bson.M{"order_number": bson.M{"$exists": false}},
	}}
}

// DeleteByOrderNumber borra todos los registros del número de orden.
func (r *InspectionRepo) DeleteByOrderNumber(ctx context.Context, orderNumber string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"order_number": orderNumber})
	if err != nil {
		return 0, fmt.Errorf("borrar grupo: %w", err)
	}
	return res.DeletedCount, nil
}

// NextSequence incremento atómico en la colección de contadores (upsert).
func (r *InspectionRepo) NextSequence(ctx context.Context, key string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("secuencia %s: %w", key, err)
	}
	return doc.Seq, nil
}

func (r *InspectionRepo) find(ctx context.Context, filter any) ([]entity.InspectionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listar inspecciones: %w", err)
	}
	defer cursor.Close(ctx)

	result := []entity.InspectionRecord{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decodificar inspecciones: %w", err)
	}
	return result, nil
}
