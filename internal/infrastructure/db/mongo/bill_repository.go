package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/utilibill/billing-system/internal/core/domain"
)

const collectionBills = "bills"

type BillRepository struct {
	col *mongo.Collection
}

func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{col: db.Collection(collectionBills)}
}

type billDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID    string             `bson:"customer_id"`
	UnitsConsumed float64            `bson:"units_consumed"`
	Amount        float64            `bson:"amount"`
	BillDate      time.Time          `bson:"bill_date"`
}

func (d billDoc) toDomain() *domain.Bill {
	return &domain.Bill{
		ID:            d.ID.Hex(),
		CustomerID:    d.CustomerID,
		UnitsConsumed: d.UnitsConsumed,
		Amount:        d.Amount,
		BillDate:      d.BillDate.UTC(),
	}
}

func (r *BillRepository) Create(ctx context.Context, bill *domain.Bill) (*domain.Bill, error) {
	doc := billDoc{
		CustomerID:    bill.CustomerID,
		UnitsConsumed: bill.UnitsConsumed,
		Amount:        bill.Amount,
		BillDate:      bill.BillDate,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert bill: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BillRepository) FindAll(ctx context.Context) ([]*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "bill_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer cur.Close(ctx)

	return decodeBills(ctx, cur)
}

func (r *BillRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"customer_id": customerID}, options.Find().SetSort(bson.D{{Key: "bill_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list customer bills: %w", err)
	}
	defer cur.Close(ctx)

	return decodeBills(ctx, cur)
}

// DeleteByCustomerID removes all bills belonging to a customer. Called only
// from the customer-delete cascade.
func (r *BillRepository) DeleteByCustomerID(ctx context.Context, customerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return 0, fmt.Errorf("delete customer bills: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the owning-customer index.
func (r *BillRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customer_id", Value: 1}},
	})
	return err
}

func decodeBills(ctx context.Context, cur *mongo.Cursor) ([]*domain.Bill, error) {
	var docs []billDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bills: %w", err)
	}
	out := make([]*domain.Bill, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
