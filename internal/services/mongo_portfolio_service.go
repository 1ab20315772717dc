package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerforge/backend/internal/models"
)

type MongoPortfolioService struct {
	client        *mongo.Client
	portfoliosCol *mongo.Collection
	usersCol      *mongo.Collection
}

func NewMongoPortfolioService(ctx context.Context, db *mongo.Database) (*MongoPortfolioService, error) {
	col := db.Collection("portfolios")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	return &MongoPortfolioService{
		client:        db.Client(),
		portfoliosCol: col,
		usersCol:      db.Collection("users"),
	}, nil
}

func (s *MongoPortfolioService) Create(ctx context.Context, userID string, req *models.GeneratePortfolioRequest, content string) (*models.Portfolio, error) {
	title := req.Title
	if title == "" {
		title = models.DefaultPortfolioTitle
	}
	now := time.Now().UTC()
	portfolio := &models.Portfolio{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Payload:     normalizePayload(req.GenerationPayload),
		StylePrompt: req.StylePrompt,
		Content:     content,
		Status:      models.PortfolioStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.portfoliosCol.InsertOne(ctx, portfolio); err != nil {
		return nil, err
	}

	if _, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"portfolio_ids": portfolio.ID},
	}); err != nil {
		log.Printf("[PortfolioService] back-reference append failed: user=%s portfolio=%s err=%v", userID, portfolio.ID, err)
	}

	return portfolio, nil
}

// GetByID increments the view counter by exactly one per successful
// fetch, persisted before the document is returned.
func (s *MongoPortfolioService) GetByID(ctx context.Context, id, callerID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.portfoliosCol.FindOne(ctx, bson.M{"_id": id}).Decode(&portfolio); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	if portfolio.UserID != callerID {
		return nil, ErrUnauthorized
	}

	res := s.portfoliosCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var counted models.Portfolio
	if err := res.Decode(&counted); err != nil {
		return nil, err
	}
	return &counted, nil
}

func (s *MongoPortfolioService) ListByUser(ctx context.Context, userID string) ([]models.PortfolioSummary, error) {
	cur, err := s.portfoliosCol.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetProjection(bson.M{"_id": 1, "title": 1, "status": 1, "views": 1, "created_at": 1, "updated_at": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.PortfolioSummary, 0)
	for cur.Next(ctx) {
		var summary models.PortfolioSummary
		if err := cur.Decode(&summary); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, cur.Err()
}

func (s *MongoPortfolioService) Update(ctx context.Context, id, callerID string, req *models.UpdatePortfolioRequest) (*models.Portfolio, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.StylePrompt != nil {
		set["style_prompt"] = *req.StylePrompt
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	res := s.portfoliosCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user_id": callerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Portfolio
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish not found vs unauthorized.
			var exists models.Portfolio
			if err2 := s.portfoliosCol.FindOne(ctx, bson.M{"_id": id}).Decode(&exists); err2 == mongo.ErrNoDocuments {
				return nil, ErrPortfolioNotFound
			}
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoPortfolioService) Delete(ctx context.Context, id, callerID string) error {
	var portfolio models.Portfolio
	if err := s.portfoliosCol.FindOne(ctx, bson.M{"_id": id}).Decode(&portfolio); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrPortfolioNotFound
		}
		return err
	}
	if portfolio.UserID != callerID {
		return ErrUnauthorized
	}

	return deleteWithBackref(ctx, s.client, func(txCtx context.Context) error {
		if _, err := s.portfoliosCol.DeleteOne(txCtx, bson.M{"_id": id}); err != nil {
			return err
		}
		_, err := s.usersCol.UpdateOne(txCtx, bson.M{"_id": callerID}, bson.M{
			"$pull": bson.M{"portfolio_ids": id},
		})
		return err
	})
}
