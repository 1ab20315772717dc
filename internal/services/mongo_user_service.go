package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerforge/backend/internal/models"
)

type MongoUserService struct {
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, db *mongo.Database) (*MongoUserService, error) {
	col := db.Collection("users")

	// Best-effort indexes. The unique email index backs the Conflict
	// semantics on register.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoUserService{usersCol: col}, nil
}

func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	count, err := s.usersCol.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:                uuid.New().String(),
		Email:             req.Email,
		PasswordHash:      string(hashed),
		Name:              req.Name,
		ResumeIDs:         []string{},
		PortfolioIDs:      []string{},
		BookmarkedPostIDs: []string{},
		CreatedAt:         time.Now().UTC(),
	}

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		// A concurrent register can slip past the count check; the
		// unique index settles it.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *MongoUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserService) AddResumeRef(ctx context.Context, userID, resumeID string) error {
	return s.pushRef(ctx, userID, "resume_ids", resumeID)
}

func (s *MongoUserService) RemoveResumeRef(ctx context.Context, userID, resumeID string) error {
	return s.pullRef(ctx, userID, "resume_ids", resumeID)
}

func (s *MongoUserService) AddPortfolioRef(ctx context.Context, userID, portfolioID string) error {
	return s.pushRef(ctx, userID, "portfolio_ids", portfolioID)
}

func (s *MongoUserService) RemovePortfolioRef(ctx context.Context, userID, portfolioID string) error {
	return s.pullRef(ctx, userID, "portfolio_ids", portfolioID)
}

// ToggleBookmark flips postID membership in the user's bookmark set and
// reports the state after the write.
func (s *MongoUserService) ToggleBookmark(ctx context.Context, userID, postID string) (*models.ToggleBookmarkResult, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	bookmarked := false
	for _, id := range user.BookmarkedPostIDs {
		if id == postID {
			bookmarked = true
			break
		}
	}

	var update bson.M
	if bookmarked {
		update = bson.M{"$pull": bson.M{"bookmarked_post_ids": postID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"bookmarked_post_ids": postID}}
	}

	if _, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return nil, err
	}

	return &models.ToggleBookmarkResult{IsBookmarked: !bookmarked}, nil
}

func (s *MongoUserService) pushRef(ctx context.Context, userID, field, refID string) error {
	res, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{field: refID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoUserService) pullRef(ctx context.Context, userID, field, refID string) error {
	res, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{field: refID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
