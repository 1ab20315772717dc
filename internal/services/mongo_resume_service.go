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

type MongoResumeService struct {
	client     *mongo.Client
	resumesCol *mongo.Collection
	usersCol   *mongo.Collection
}

func NewMongoResumeService(ctx context.Context, db *mongo.Database) (*MongoResumeService, error) {
	col := db.Collection("resumes")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	return &MongoResumeService{
		client:     db.Client(),
		resumesCol: col,
		usersCol:   db.Collection("users"),
	}, nil
}

func (s *MongoResumeService) Create(ctx context.Context, userID string, req *models.GenerateResumeRequest, letter models.CoverLetter) (*models.Resume, error) {
	title := req.Title
	if title == "" {
		title = models.DefaultResumeTitle
	}
	now := time.Now().UTC()
	resume := &models.Resume{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Payload:     normalizePayload(req.GenerationPayload),
		CoverLetter: letter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.resumesCol.InsertOne(ctx, resume); err != nil {
		return nil, err
	}

	// Back-reference append is best-effort: the resume's own user_id
	// stays authoritative.
	if _, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"resume_ids": resume.ID},
	}); err != nil {
		log.Printf("[ResumeService] back-reference append failed: user=%s resume=%s err=%v", userID, resume.ID, err)
	}

	return resume, nil
}

func (s *MongoResumeService) GetByID(ctx context.Context, id, callerID string) (*models.Resume, error) {
	var resume models.Resume
	if err := s.resumesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&resume); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	if resume.UserID != callerID {
		return nil, ErrUnauthorized
	}
	return &resume, nil
}

func (s *MongoResumeService) ListByUser(ctx context.Context, userID string) ([]models.ResumeSummary, error) {
	cur, err := s.resumesCol.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetProjection(bson.M{"_id": 1, "title": 1, "created_at": 1, "updated_at": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.ResumeSummary, 0)
	for cur.Next(ctx) {
		var summary models.ResumeSummary
		if err := cur.Decode(&summary); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, cur.Err()
}

func (s *MongoResumeService) Update(ctx context.Context, id, callerID string, req *models.UpdateResumeRequest) (*models.Resume, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Strengths != nil {
		set["cover_letter.strengths"] = *req.Strengths
	}
	if req.Growth != nil {
		set["cover_letter.growth"] = *req.Growth
	}
	if req.Personality != nil {
		set["cover_letter.personality"] = *req.Personality
	}
	if req.Motivation != nil {
		set["cover_letter.motivation"] = *req.Motivation
	}

	res := s.resumesCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user_id": callerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Resume
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish not found vs unauthorized.
			var exists models.Resume
			if err2 := s.resumesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&exists); err2 == mongo.ErrNoDocuments {
				return nil, ErrResumeNotFound
			}
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes the document and prunes the owner's back-reference in
// one transaction where the deployment supports sessions; otherwise the
// two writes run sequentially.
func (s *MongoResumeService) Delete(ctx context.Context, id, callerID string) error {
	var resume models.Resume
	if err := s.resumesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&resume); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrResumeNotFound
		}
		return err
	}
	if resume.UserID != callerID {
		return ErrUnauthorized
	}

	return deleteWithBackref(ctx, s.client, func(txCtx context.Context) error {
		if _, err := s.resumesCol.DeleteOne(txCtx, bson.M{"_id": id}); err != nil {
			return err
		}
		_, err := s.usersCol.UpdateOne(txCtx, bson.M{"_id": callerID}, bson.M{
			"$pull": bson.M{"resume_ids": id},
		})
		return err
	})
}

// deleteWithBackref runs fn inside a transaction when possible and falls
// back to a plain sequential run on deployments without session support
// (standalone mongod).
func deleteWithBackref(ctx context.Context, client *mongo.Client, fn func(context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && isTransactionUnsupported(err) {
		log.Printf("[store] transactions unavailable, falling back to sequential writes: %v", err)
		return fn(ctx)
	}
	return err
}

func isTransactionUnsupported(err error) bool {
	if cmdErr, ok := err.(mongo.CommandError); ok {
		// IllegalOperation: txn numbers only allowed on replica set members.
		return cmdErr.Code == 20
	}
	return false
}
