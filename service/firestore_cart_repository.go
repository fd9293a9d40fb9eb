package service

import (
	"context"
	"time"

	"savecart/core"
	"savecart/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreCartRepository reads saved carts from a Firestore collection.
// The document id is the cart id.
type FirestoreCartRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreCartRepository constructs a Firestore-backed cart repository
func NewFirestoreCartRepository(client *firestore.Client, collection string) *FirestoreCartRepository {
	if collection == "" {
		collection = "saved_carts"
	}
	return &FirestoreCartRepository{client: client, collection: collection}
}

type firestoreCartDoc struct {
	Shop        string                 `firestore:"shop"`
	CustomerID  string                 `firestore:"customerId"`
	Items       []models.SavedCartItem `firestore:"items"`
	Currency    string                 `firestore:"currency"`
	TotalAmount float64                `firestore:"totalAmount"`
	CreatedAt   time.Time              `firestore:"createdAt"`
	UpdatedAt   time.Time              `firestore:"updatedAt"`
}

// FindByID fetches the document with the given id
func (r *FirestoreCartRepository) FindByID(ctx context.Context, id string) (*models.SavedCart, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	if !snap.Exists() {
		return nil, core.ErrNotFound
	}

	var doc firestoreCartDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, core.NewStoreError("decode saved cart", err)
	}
	return cartFromDoc(snap.Ref.ID, doc), nil
}

func mapFirestoreError(err error) error {
	if status.Code(err) == codes.NotFound {
		return core.ErrNotFound
	}
	return core.NewStoreError("find saved cart", err)
}

func cartFromDoc(id string, doc firestoreCartDoc) *models.SavedCart {
	cart := &models.SavedCart{
		ID:          id,
		Shop:        doc.Shop,
		CustomerID:  doc.CustomerID,
		Currency:    doc.Currency,
		TotalAmount: doc.TotalAmount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	cart.SetItems(doc.Items)
	return cart
}
