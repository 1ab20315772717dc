package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerforge/backend/internal/models"
)

type MongoCommunityService struct {
	client      *mongo.Client
	postsCol    *mongo.Collection
	commentsCol *mongo.Collection
	usersCol    *mongo.Collection
}

func NewMongoCommunityService(ctx context.Context, db *mongo.Database) (*MongoCommunityService, error) {
	posts := db.Collection("posts")
	comments := db.Collection("comments")

	// Best-effort indexes.
	_, _ = posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	})
	_, _ = comments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})

	return &MongoCommunityService{
		client:      db.Client(),
		postsCol:    posts,
		commentsCol: comments,
		usersCol:    db.Collection("users"),
	}, nil
}

func (s *MongoCommunityService) ListPosts(ctx context.Context) ([]models.Post, error) {
	cur, err := s.postsCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Post, 0)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	s.attachPostAuthors(ctx, out)
	return out, nil
}

func (s *MongoCommunityService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var post models.Post
	if err := res.Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post.Author = s.author(ctx, post.AuthorID)
	return &post, nil
}

func (s *MongoCommunityService) CreatePost(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Title:     req.Title,
		Content:   req.Content,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	post.Author = s.author(ctx, authorID)
	return post, nil
}

func (s *MongoCommunityService) UpdatePost(ctx context.Context, id, callerID string, req *models.UpdatePostRequest) (*models.Post, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}

	// Merged (id, author) filter: a non-owner's attempt is
	// indistinguishable from a missing post.
	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "author_id": callerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	updated.Author = s.author(ctx, updated.AuthorID)
	return &updated, nil
}

// DeletePost removes the post and every comment on it. Cascade and
// delete run in one transaction where sessions are available.
func (s *MongoCommunityService) DeletePost(ctx context.Context, id, callerID string) error {
	count, err := s.postsCol.CountDocuments(ctx, bson.M{"_id": id, "author_id": callerID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}

	return deleteWithBackref(ctx, s.client, func(txCtx context.Context) error {
		if _, err := s.commentsCol.DeleteMany(txCtx, bson.M{"post_id": id}); err != nil {
			return err
		}
		_, err := s.postsCol.DeleteOne(txCtx, bson.M{"_id": id, "author_id": callerID})
		return err
	})
}

func (s *MongoCommunityService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	cur, err := s.commentsCol.Find(
		ctx,
		bson.M{"post_id": postID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Comment, 0)
	for cur.Next(ctx) {
		var comment models.Comment
		if err := cur.Decode(&comment); err != nil {
			return nil, err
		}
		out = append(out, comment)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	s.attachCommentAuthors(ctx, out)
	return out, nil
}

// CreateComment does not verify the post still exists; a comment racing
// a delete becomes unreachable once the cascade runs.
func (s *MongoCommunityService) CreateComment(ctx context.Context, authorID, postID, content string) (*models.Comment, error) {
	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.commentsCol.InsertOne(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = s.author(ctx, authorID)
	return comment, nil
}

func (s *MongoCommunityService) UpdateComment(ctx context.Context, id, callerID, content string) (*models.Comment, error) {
	res := s.commentsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "author_id": callerID},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Comment
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	updated.Author = s.author(ctx, updated.AuthorID)
	return &updated, nil
}

func (s *MongoCommunityService) DeleteComment(ctx context.Context, id, callerID string) error {
	res, err := s.commentsCol.DeleteOne(ctx, bson.M{"_id": id, "author_id": callerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// ToggleLike flips the caller's membership in the post's liker set and
// reports the count from the post-write document.
func (s *MongoCommunityService) ToggleLike(ctx context.Context, postID, userID string) (*models.ToggleLikeResult, error) {
	var post models.Post
	if err := s.postsCol.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	liked := false
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	}

	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return &models.ToggleLikeResult{
		LikesCount: int64(len(updated.Likes)),
		IsLiked:    !liked,
	}, nil
}

func (s *MongoCommunityService) author(ctx context.Context, userID string) *models.PublicAuthor {
	var author models.PublicAuthor
	err := s.usersCol.FindOne(
		ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}),
	).Decode(&author)
	if err != nil {
		return nil
	}
	return &author
}

// attachPostAuthors resolves authors for a page of posts in one query.
func (s *MongoCommunityService) attachPostAuthors(ctx context.Context, posts []models.Post) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	byID := s.authorsByID(ctx, ids)
	for i := range posts {
		if a, ok := byID[posts[i].AuthorID]; ok {
			author := a
			posts[i].Author = &author
		}
	}
}

func (s *MongoCommunityService) attachCommentAuthors(ctx context.Context, comments []models.Comment) {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	byID := s.authorsByID(ctx, ids)
	for i := range comments {
		if a, ok := byID[comments[i].AuthorID]; ok {
			author := a
			comments[i].Author = &author
		}
	}
}

func (s *MongoCommunityService) authorsByID(ctx context.Context, ids []string) map[string]models.PublicAuthor {
	out := make(map[string]models.PublicAuthor)
	if len(ids) == 0 {
		return out
	}

	cur, err := s.usersCol.Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}),
	)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var author models.PublicAuthor
		if err := cur.Decode(&author); err != nil {
			continue
		}
		out[author.ID] = author
	}
	return out
}
