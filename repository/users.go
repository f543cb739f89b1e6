package repository

import (
	"context"
	"errors"

	"notemark/apperr"
	"notemark/model"
	"notemark/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const UsersCollection = "users"

type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{MongoCollection: db.Collection(UsersCollection)}
}

// AddUser inserts user. A taken email surfaces as a Conflict through the unique index.
func (r *UsersRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", UsersCollection)
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		utils.TrackError("database")
		return apperr.ValidationField("email", "Email and password are required")
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("User already exists", err)
		}
		utils.TrackError("database")
		return apperr.Internal("add user", err)
	}
	return nil
}

// FindUserByEmail returns nil without error when no user has that email.
func (r *UsersRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database")
		return nil, apperr.Internal("find user by email", err)
	}
	return &user, nil
}

func (r *UsersRepo) FindUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		utils.TrackError("database")
		return nil, apperr.Internal("find user", err)
	}
	return &user, nil
}

// RecordLogin stores the details of the latest successful login.
func (r *UsersRepo) RecordLogin(ctx context.Context, userID primitive.ObjectID, login model.LoginInfo) error {
	timer := utils.TrackDBOperation("update", UsersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"last_login": login}},
	)
	if err != nil {
		utils.TrackError("database")
		return apperr.Internal("record login", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (r *UsersRepo) DeleteUserByID(ctx context.Context, userID primitive.ObjectID) error {
	timer := utils.TrackDBOperation("delete", UsersCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		utils.TrackError("database")
		return apperr.Internal("delete user", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}
