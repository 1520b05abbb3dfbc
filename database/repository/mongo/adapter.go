package mongoRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carelink/database/repository"
	"carelink/models"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// Adapter implements repository.Adapter on MongoDB.
type Adapter struct {
	providers    *mongo.Collection
	participants *mongo.Collection
	reviews      *mongo.Collection
	enquiries    *mongo.Collection
	bookings     *mongo.Collection
}

var _ repository.Adapter = (*Adapter)(nil)

// NewAdapter returns an adapter over the collections of db.
func NewAdapter(db *mongo.Database) *Adapter {
	return &Adapter{
		providers:    db.Collection("providers"),
		participants: db.Collection("participants"),
		reviews:      db.Collection("reviews"),
		enquiries:    db.Collection("enquiries"),
		bookings:     db.Collection("bookings"),
	}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// remoteErr classifies a driver error for callers above the adapter.
func remoteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	transient := mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded)
	return &repository.RemoteError{Op: op, Err: err, Transient: transient}
}

func findAll[D any, T any](ctx context.Context, coll *mongo.Collection, op string, decode func(D) T) ([]T, error) {
	ctx, cancel := newContext(ctx, readTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, remoteErr(op, err)
	}
	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, remoteErr(op, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, decode(d))
	}
	return out, nil
}

func (a *Adapter) ListProviders(ctx context.Context) ([]models.Provider, error) {
	return findAll(ctx, a.providers, "list_providers", fromProviderDoc)
}

func (a *Adapter) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	return findAll(ctx, a.participants, "list_participants", fromParticipantDoc)
}

func (a *Adapter) ListReviews(ctx context.Context) ([]models.Review, error) {
	return findAll(ctx, a.reviews, "list_reviews", fromReviewDoc)
}

func (a *Adapter) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	return findAll(ctx, a.enquiries, "list_enquiries", fromEnquiryDoc)
}

func (a *Adapter) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return findAll(ctx, a.bookings, "list_bookings", fromBookingDoc)
}

func (a *Adapter) insert(ctx context.Context, coll *mongo.Collection, op string, doc interface{}) error {
	ctx, cancel := newContext(ctx, writeTimeout)
	defer cancel()
	_, err := coll.InsertOne(ctx, doc)
	return remoteErr(op, err)
}

// updateByID applies update to the document with the given id and reports a
// RemoteError wrapping repository.ErrRecordNotFound when nothing matched.
func (a *Adapter) updateByID(ctx context.Context, coll *mongo.Collection, op, id string, update interface{}) error {
	return a.updateOne(ctx, coll, op, bson.M{"id": id}, update)
}

func (a *Adapter) updateOne(ctx context.Context, coll *mongo.Collection, op string, filter bson.M, update interface{}) error {
	ctx, cancel := newContext(ctx, writeTimeout)
	defer cancel()

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return remoteErr(op, err)
	}
	if result.MatchedCount == 0 {
		return remoteErr(op, repository.ErrRecordNotFound)
	}
	return nil
}

// inTransaction runs fn as one transaction so paired writes land together or
// not at all. Errors already classified by fn pass through unchanged.
func (a *Adapter) inTransaction(ctx context.Context, op string, fn func(sc mongo.SessionContext) error) error {
	client := a.providers.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return remoteErr(op, err)
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err == nil {
		return nil
	}
	var remote *repository.RemoteError
	if errors.As(err, &remote) {
		return err
	}
	return remoteErr(op, err)
}

func (a *Adapter) CreateProvider(ctx context.Context, p models.Provider) error {
	return a.insert(ctx, a.providers, "create_provider", toProviderDoc(p))
}

func (a *Adapter) CreateParticipant(ctx context.Context, p models.Participant) error {
	return a.insert(ctx, a.participants, "create_participant", toParticipantDoc(p))
}

func (a *Adapter) UpdateProvider(ctx context.Context, id string, patch models.ProviderPatch) error {
	set := providerPatchSet(patch)
	if len(set) == 0 {
		return nil
	}
	return a.updateByID(ctx, a.providers, "update_provider", id, bson.M{"$set": set})
}

func (a *Adapter) UpdateParticipant(ctx context.Context, id string, patch models.ParticipantPatch) error {
	set := participantPatchSet(patch)
	if len(set) == 0 {
		return nil
	}
	return a.updateByID(ctx, a.participants, "update_participant", id, bson.M{"$set": set})
}

func (a *Adapter) SetFavourites(ctx context.Context, participantID string, favourites []string) error {
	if favourites == nil {
		favourites = []string{}
	}
	return a.updateByID(ctx, a.participants, "set_favourites", participantID,
		bson.M{"$set": bson.M{"favourite_provider_ids": favourites}})
}

func (a *Adapter) UpdateTier(ctx context.Context, providerID string, tier models.Tier) error {
	return a.updateByID(ctx, a.providers, "update_tier", providerID,
		bson.M{"$set": bson.M{"subscription_tier": string(tier)}})
}

func (a *Adapter) IncrementViews(ctx context.Context, providerID string) error {
	return a.updateByID(ctx, a.providers, "increment_views", providerID,
		bson.M{"$inc": bson.M{"views_this_month": 1}})
}

func (a *Adapter) CreateEnquiry(ctx context.Context, e models.Enquiry) error {
	return a.inTransaction(ctx, "create_enquiry", func(sc mongo.SessionContext) error {
		if err := a.insert(sc, a.enquiries, "create_enquiry", toEnquiryDoc(e)); err != nil {
			return err
		}
		return a.updateByID(sc, a.providers, "create_enquiry", e.ProviderID,
			bson.M{"$inc": bson.M{"enquiries_this_month": 1}})
	})
}

// AppendMessage only matches active threads; a closed thread reports not found.
func (a *Adapter) AppendMessage(ctx context.Context, enquiryID string, m models.Message) error {
	filter := bson.M{"id": enquiryID, "status": string(models.EnquiryActive)}
	update := bson.M{
		"$push": bson.M{"messages": toMessageDoc(m)},
		"$max":  bson.M{"updated_at": m.SentAt},
	}
	return a.updateOne(ctx, a.enquiries, "append_message", filter, update)
}

func (a *Adapter) CloseEnquiry(ctx context.Context, enquiryID string) error {
	return a.updateByID(ctx, a.enquiries, "close_enquiry", enquiryID,
		bson.M{"$set": bson.M{"status": string(models.EnquiryClosed)}})
}

func (a *Adapter) CreateBooking(ctx context.Context, b models.Booking) error {
	b.Status = models.BookingPending
	return a.inTransaction(ctx, "create_booking", func(sc mongo.SessionContext) error {
		if err := a.insert(sc, a.bookings, "create_booking", toBookingDoc(b)); err != nil {
			return err
		}
		return a.updateByID(sc, a.providers, "create_booking", b.ProviderID,
			bson.M{"$inc": bson.M{"bookings_this_month": 1}})
	})
}

func (a *Adapter) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	return a.updateByID(ctx, a.bookings, "update_booking_status", bookingID,
		bson.M{"$set": bson.M{"status": string(status)}})
}

func (a *Adapter) CreateReview(ctx context.Context, r models.Review) error {
	r.Response = nil
	return a.inTransaction(ctx, "create_review", func(sc mongo.SessionContext) error {
		if err := a.insert(sc, a.reviews, "create_review", toReviewDoc(r)); err != nil {
			return err
		}
		return a.updateByID(sc, a.providers, "create_review", r.ProviderID, ratingRefresh(r.Rating))
	})
}

// ratingRefresh folds one new rating into the cached mean and count.
func ratingRefresh(rating int) mongo.Pipeline {
	count := bson.M{"$ifNull": bson.A{"$review_count", 0}}
	mean := bson.M{"$ifNull": bson.A{"$rating", 0}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.M{"$round": bson.A{
				bson.M{"$divide": bson.A{
					bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{mean, count}}, rating}},
					bson.M{"$add": bson.A{count, 1}},
				}},
				1,
			}}},
			{Key: "review_count", Value: bson.M{"$add": bson.A{count, 1}}},
		}}},
	}
}

func (a *Adapter) RespondReview(ctx context.Context, reviewID string, response models.ReviewResponse) error {
	return a.updateByID(ctx, a.reviews, "respond_review", reviewID, bson.M{"$set": bson.M{
		"response_text": response.Text,
		"response_date": response.Date,
	}})
}
