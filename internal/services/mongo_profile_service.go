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

type MongoProfileService struct {
	profilesCol *mongo.Collection
	usersCol    *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, db *mongo.Database) (*MongoProfileService, error) {
	col := db.Collection("profiles")

	// Best-effort indexes. user_id uniqueness enforces one profile per user.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoProfileService{
		profilesCol: col,
		usersCol:    db.Collection("users"),
	}, nil
}

// GetOrCreate returns the user's profile, inserting an empty one on first
// access. Idempotent under concurrent first reads.
func (s *MongoProfileService) GetOrCreate(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof)
	if err == nil {
		return s.joined(ctx, &prof), nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now().UTC()
	prof = models.Profile{
		ID:           uuid.New().String(),
		UserID:       userID,
		Education:    []models.EducationEntry{},
		Experiences:  []models.ExperienceEntry{},
		Certificates: []models.CertificateEntry{},
		Projects:     []models.ProjectEntry{},
		Skills:       []string{},
		Tools:        []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.profilesCol.InsertOne(ctx, prof); err != nil {
		// If a race created it, fetch again.
		var retry models.Profile
		if err2 := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&retry); err2 == nil {
			return s.joined(ctx, &retry), nil
		}
		return nil, err
	}
	return s.joined(ctx, &prof), nil
}

func (s *MongoProfileService) PatchBasic(ctx context.Context, userID string, req *models.PatchProfileRequest) (*models.Profile, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.BirthDate != nil {
		set["birth_date"] = *req.BirthDate
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.AvatarURL != nil {
		set["avatar_url"] = *req.AvatarURL
	}
	if req.Introduction != nil {
		set["introduction"] = *req.Introduction
	}

	if _, err := s.profilesCol.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, entry models.EducationEntry) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	return s.pushEntry(ctx, userID, "education", entry)
}

func (s *MongoProfileService) UpdateEducation(ctx context.Context, userID, entryID string, req *models.UpdateEducationRequest) (*models.Profile, error) {
	set := bson.M{}
	setEntryField(set, "education", "school", req.School)
	setEntryField(set, "education", "major", req.Major)
	setEntryField(set, "education", "degree", req.Degree)
	setEntryField(set, "education", "start_date", req.StartDate)
	setEntryField(set, "education", "end_date", req.EndDate)
	return s.updateEntry(ctx, userID, "education", entryID, set)
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "education", entryID)
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, entry models.ExperienceEntry) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	return s.pushEntry(ctx, userID, "experiences", entry)
}

func (s *MongoProfileService) UpdateExperience(ctx context.Context, userID, entryID string, req *models.UpdateExperienceRequest) (*models.Profile, error) {
	set := bson.M{}
	setEntryField(set, "experiences", "company", req.Company)
	setEntryField(set, "experiences", "position", req.Position)
	setEntryField(set, "experiences", "description", req.Description)
	setEntryField(set, "experiences", "start_date", req.StartDate)
	setEntryField(set, "experiences", "end_date", req.EndDate)
	return s.updateEntry(ctx, userID, "experiences", entryID, set)
}

func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "experiences", entryID)
}

func (s *MongoProfileService) AddCertificate(ctx context.Context, userID string, entry models.CertificateEntry) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	return s.pushEntry(ctx, userID, "certificates", entry)
}

func (s *MongoProfileService) UpdateCertificate(ctx context.Context, userID, entryID string, req *models.UpdateCertificateRequest) (*models.Profile, error) {
	set := bson.M{}
	setEntryField(set, "certificates", "name", req.Name)
	setEntryField(set, "certificates", "issuer", req.Issuer)
	setEntryField(set, "certificates", "issued_at", req.IssuedAt)
	return s.updateEntry(ctx, userID, "certificates", entryID, set)
}

func (s *MongoProfileService) RemoveCertificate(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "certificates", entryID)
}

func (s *MongoProfileService) AddProject(ctx context.Context, userID string, entry models.ProjectEntry) (*models.Profile, error) {
	entry.ID = uuid.New().String()
	if entry.TechStack == nil {
		entry.TechStack = []string{}
	}
	return s.pushEntry(ctx, userID, "projects", entry)
}

func (s *MongoProfileService) UpdateProject(ctx context.Context, userID, entryID string, req *models.UpdateProjectRequest) (*models.Profile, error) {
	set := bson.M{}
	setEntryField(set, "projects", "title", req.Title)
	setEntryField(set, "projects", "description", req.Description)
	setEntryField(set, "projects", "url", req.URL)
	setEntryField(set, "projects", "start_date", req.StartDate)
	setEntryField(set, "projects", "end_date", req.EndDate)
	if req.TechStack != nil {
		set["projects.$.tech_stack"] = *req.TechStack
	}
	return s.updateEntry(ctx, userID, "projects", entryID, set)
}

func (s *MongoProfileService) RemoveProject(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "projects", entryID)
}

func (s *MongoProfileService) AddSkills(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateStringSet(ctx, userID, "skills", addToSetUpdate("skills", values))
}

func (s *MongoProfileService) RemoveSkills(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateStringSet(ctx, userID, "skills", pullAllUpdate("skills", values))
}

func (s *MongoProfileService) ReplaceSkills(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateStringSet(ctx, userID, "skills", replaceListUpdate("skills", values))
}

func (s *MongoProfileService) AddTools(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateStringSet(ctx, userID, "tools", addToSetUpdate("tools", values))
}

func (s *MongoProfileService) RemoveTools(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateStringSet(ctx, userID, "tools", pullAllUpdate("tools", values))
}

func (s *MongoProfileService) ReplaceTools(ctx context.Context, userID string, values []string) (*models.Profile, error) {
	return s.mutateStringSet(ctx, userID, "tools", replaceListUpdate("tools", values))
}

// A nil slice marshals to BSON null, which the array operators reject
// server-side, so every builder normalizes to an empty list first.
func addToSetUpdate(field string, values []string) bson.M {
	if values == nil {
		values = []string{}
	}
	return bson.M{"$addToSet": bson.M{field: bson.M{"$each": values}}}
}

func pullAllUpdate(field string, values []string) bson.M {
	if values == nil {
		values = []string{}
	}
	return bson.M{"$pullAll": bson.M{field: values}}
}

func replaceListUpdate(field string, values []string) bson.M {
	if values == nil {
		values = []string{}
	}
	return bson.M{"$set": bson.M{field: values}}
}

func setEntryField(set bson.M, field, key string, value *string) {
	if value != nil {
		set[field+".$."+key] = *value
	}
}

// entryFilter merges owner and entry id, so a cross-user or missing
// entry reads as NotFound.
func entryFilter(userID, field, entryID string) bson.M {
	return bson.M{"user_id": userID, field + ".id": entryID}
}

func (s *MongoProfileService) pushEntry(ctx context.Context, userID, field string, entry interface{}) (*models.Profile, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	_, err := s.profilesCol.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
		"$push": bson.M{field: entry},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID)
}

// updateEntry patches one sub-document by its entry id. The merged
// (user, entry) filter makes cross-user addressing fail as NotFound.
func (s *MongoProfileService) updateEntry(ctx context.Context, userID, field, entryID string, set bson.M) (*models.Profile, error) {
	set["updated_at"] = time.Now().UTC()
	res, err := s.profilesCol.UpdateOne(
		ctx,
		entryFilter(userID, field, entryID),
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrEntryNotFound
	}
	return s.fetch(ctx, userID)
}

// pullEntry removes one sub-document by its entry id. The filter must
// address the entry itself: the timestamp write alone would modify any
// existing profile, so MatchedCount on the merged filter is the only
// reliable existence signal.
func (s *MongoProfileService) pullEntry(ctx context.Context, userID, field, entryID string) (*models.Profile, error) {
	res, err := s.profilesCol.UpdateOne(ctx, entryFilter(userID, field, entryID), bson.M{
		"$pull": bson.M{field: bson.M{"id": entryID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrEntryNotFound
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) mutateStringSet(ctx context.Context, userID, field string, update bson.M) (*models.Profile, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if set, ok := update["$set"].(bson.M); ok {
		set["updated_at"] = time.Now().UTC()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	}
	if _, err := s.profilesCol.UpdateOne(ctx, bson.M{"user_id": userID}, update); err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID)
}

func (s *MongoProfileService) fetch(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof); err != nil {
		return nil, err
	}
	return s.joined(ctx, &prof), nil
}

// joined attaches the owner's public fields for display. Read-side
// convenience only; never stored.
func (s *MongoProfileService) joined(ctx context.Context, prof *models.Profile) *models.Profile {
	var author models.PublicAuthor
	err := s.usersCol.FindOne(
		ctx,
		bson.M{"_id": prof.UserID},
		options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}),
	).Decode(&author)
	if err == nil {
		prof.User = &author
	}
	return prof
}
