package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/la-jarre-a-son/tilejar/pkg/errors"
)

const (
	// DefaultDatabase is the database used when the URI names none.
	DefaultDatabase = "tilejar"

	presetsCollection  = "presets"
	settingsCollection = "settings"
	currentSettingID   = "current"
)

// MongoStore keeps presets in a MongoDB collection with a unique index on
// the preset name.
type MongoStore struct {
	client   *mongo.Client
	presets  *mongo.Collection
	settings *mongo.Collection
	owned    bool
	now      func() time.Time
}

// NewMongoStore connects to uri, pings the primary and ensures the name
// index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeExternal, err, "ping mongo")
	}
	s, err := NewMongoStoreFromClient(ctx, client, database)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewMongoStoreFromClient uses an existing client. Close does not
// disconnect it.
func NewMongoStoreFromClient(ctx context.Context, client *mongo.Client, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	db := client.Database(database)
	s := &MongoStore{
		client:   client,
		presets:  db.Collection(presetsCollection),
		settings: db.Collection(settingsCollection),
		now:      time.Now,
	}
	_, err := s.presets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternal, err, "create preset index")
	}
	return s, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetProjection(bson.M{"preset": 0})
	cur, err := s.presets.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternal, err, "list presets")
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternal, err, "decode preset list")
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*Entry, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	e, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		if name == DefaultName {
			return defaultEntry(), nil
		}
		return nil, notFound(name)
	}
	return e, nil
}

func (s *MongoStore) Save(ctx context.Context, e *Entry) (*Entry, error) {
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "entry is nil")
	}
	if err := errors.ValidatePresetName(e.Name); err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, e.Name)
	if err != nil {
		return nil, err
	}
	out, err := prepare(e, existing, s.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, err
	}
	_, err = s.presets.ReplaceOne(ctx, bson.M{"name": out.Name}, out, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternal, err, "save preset %q", out.Name)
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	res, err := s.presets.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeExternal, err, "delete preset %q", name)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

type currentSetting struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func (s *MongoStore) Current(ctx context.Context) (string, error) {
	var doc currentSetting
	err := s.settings.FindOne(ctx, bson.M{"_id": currentSettingID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return DefaultName, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExternal, err, "read current preset")
	}
	if doc.Name == "" {
		return DefaultName, nil
	}
	return doc.Name, nil
}

func (s *MongoStore) SetCurrent(ctx context.Context, name string) error {
	if err := errors.ValidatePresetName(name); err != nil {
		return err
	}
	doc := currentSetting{ID: currentSettingID, Name: name}
	_, err := s.settings.ReplaceOne(ctx, bson.M{"_id": currentSettingID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeExternal, err, "set current preset")
	}
	return nil
}

// Close disconnects the client when the store created it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, name string) (*Entry, error) {
	var e Entry
	err := s.presets.FindOne(ctx, bson.M{"name": name}).Decode(&e)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternal, err, "read preset %q", name)
	}
	return &e, nil
}

var _ Store = (*MongoStore)(nil)
